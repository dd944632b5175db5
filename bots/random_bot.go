package bots

import (
	"context"

	"chessGA/rules"
)

// RandomBot plays a uniformly random legal move.
type RandomBot struct {
	rng Rand
}

func NewRandomBot(rng Rand) *RandomBot {
	if rng == nil {
		rng = newRand(0)
	}
	return &RandomBot{rng: rng}
}

func (b *RandomBot) BestMove(ctx context.Context, pos Position) (rules.Move, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return rules.NoMove, rules.ErrNoLegalMoves
	}
	return moves[b.rng.Intn(len(moves))], nil
}

func (b *RandomBot) Name() string {
	return "Random Bot"
}
