package bots

import (
	"context"

	"chessGA/rules"
)

// NewbornBot always plays the first legal move the rules provider lists.
type NewbornBot struct{}

func NewNewbornBot() *NewbornBot {
	return &NewbornBot{}
}

func (b *NewbornBot) BestMove(ctx context.Context, pos Position) (rules.Move, error) {
	moves := pos.LegalMoves()
	if len(moves) > 0 {
		return moves[0], nil
	}
	return rules.NoMove, rules.ErrNoLegalMoves
}

func (b *NewbornBot) Name() string {
	return "Newborn"
}
