package rules

import (
	"fmt"

	"github.com/notnil/chess"
)

// Move is an origin/destination pair with an optional promotion piece.
// Two moves are the same move when all three fields match.
type Move struct {
	From  chess.Square
	To    chess.Square
	Promo chess.PieceType
}

// NoMove is the zero Move; it is never legal.
var NoMove = Move{From: chess.NoSquare, To: chess.NoSquare}

func NewMove(from, to chess.Square) Move {
	return Move{From: from, To: to}
}

func fromLibrary(m *chess.Move) Move {
	return Move{From: m.S1(), To: m.S2(), Promo: m.Promo()}
}

func (m Move) matches(cm *chess.Move) bool {
	return cm.S1() == m.From && cm.S2() == m.To && cm.Promo() == m.Promo
}

// String returns the move in UCI notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.From == chess.NoSquare || m.To == chess.NoSquare {
		return "0000"
	}
	return m.From.String() + m.To.String() + promoSuffix[m.Promo]
}

var promoSuffix = map[chess.PieceType]string{
	chess.NoPieceType: "",
	chess.Queen:       "q",
	chess.Rook:        "r",
	chess.Bishop:      "b",
	chess.Knight:      "n",
}

// ParseMove reads a move in UCI notation. It does not check legality.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("parse move %q: bad length", s)
	}
	from, err := parseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("parse move %q: %w", s, err)
	}
	to, err := parseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("parse move %q: %w", s, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			m.Promo = chess.Queen
		case 'r':
			m.Promo = chess.Rook
		case 'b':
			m.Promo = chess.Bishop
		case 'n':
			m.Promo = chess.Knight
		default:
			return NoMove, fmt.Errorf("parse move %q: bad promotion %q", s, s[4])
		}
	}
	return m, nil
}

func parseSquare(s string) (chess.Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return chess.NoSquare, fmt.Errorf("bad square %q", s)
	}
	return chess.NewSquare(chess.File(s[0]-'a'), chess.Rank(s[1]-'1')), nil
}
