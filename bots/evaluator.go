package bots

import "github.com/notnil/chess"

var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
	chess.King:   100,
}

const (
	unsafePenalty = 2
	centerBonus   = 1
)

var center = map[chess.Square]bool{
	chess.D4: true,
	chess.E4: true,
	chess.D5: true,
	chess.E5: true,
}

// DefaultEvaluator adds up material, a center bonus and an unsafe-square
// penalty over every occupied square.
//
// The score has no sign: white and black pieces count the same, so it
// measures total material and activity rather than one side's advantage.
// "Unsafe" means some legal move of the side to move lands on the square,
// whoever owns the piece there. Both quirks change search results and are
// kept as they are.
type DefaultEvaluator struct{}

func (e DefaultEvaluator) Score(pos Position) int {
	targets := make(map[chess.Square]bool)
	for _, m := range pos.LegalMoves() {
		targets[m.To] = true
	}

	score := 0
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := pos.PieceAt(sq)
		if piece == chess.NoPiece {
			continue
		}
		score += pieceValues[piece.Type()]
		if targets[sq] {
			score -= unsafePenalty
		}
		if center[sq] {
			score += centerBonus
		}
	}
	return score
}
