// bot.go
package bots

import (
	"context"

	"chessGA/rules"

	"github.com/notnil/chess"
)

// Position is what a bot needs from the rules provider. *rules.Board
// satisfies it.
type Position interface {
	LegalMoves() []rules.Move
	IsLegal(m rules.Move) bool
	Push(m rules.Move) error
	Pop() error
	PieceAt(sq chess.Square) chess.Piece
}

// ChessBot picks a move for the side to move. Implementations leave pos
// exactly as they found it.
type ChessBot interface {
	BestMove(ctx context.Context, pos Position) (rules.Move, error)
	Name() string
}

// PositionEvaluator scores a position.
type PositionEvaluator interface {
	Score(pos Position) int
}

// Rand is the random source used by the bots. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}
