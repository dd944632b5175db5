// Package rules adapts github.com/notnil/chess into a mutable board with
// strictly balanced push/pop, which is what the evaluator and the search
// need. Positions in the library are immutable, so the board is a stack of
// them and undo is a slice truncation.
package rules

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrNoHistory    = errors.New("no move to undo")
	ErrNoLegalMoves = errors.New("no legal moves")
)

type frame struct {
	pos   *chess.Position
	check bool
	moves []Move
}

// Board is a position plus the stack of positions that led to it.
// It is not safe for concurrent use; clone it before handing it to
// another goroutine.
type Board struct {
	frames []frame
}

// NewBoard returns a board set up in the standard starting position.
func NewBoard() *Board {
	return newBoard(chess.NewGame().Position())
}

// FromFEN returns a board set up from a FEN string.
func FromFEN(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("load fen: %w", err)
	}
	return newBoard(chess.NewGame(opt).Position()), nil
}

func newBoard(pos *chess.Position) *Board {
	b := &Board{}
	turn := pos.Turn()
	check := false
	if king := kingSquare(pos.Board(), turn); king != chess.NoSquare {
		check = attacked(pos.Board(), king, turn.Other())
	}
	b.frames = append(b.frames, frame{pos: pos, check: check})
	return b
}

func (b *Board) top() *frame {
	return &b.frames[len(b.frames)-1]
}

// Position returns the library position currently on top of the stack.
func (b *Board) Position() *chess.Position {
	return b.top().pos
}

// Turn returns the side to move.
func (b *Board) Turn() chess.Color {
	return b.top().pos.Turn()
}

// Depth is the number of pushed moves not yet popped.
func (b *Board) Depth() int {
	return len(b.frames) - 1
}

// FEN returns the current position in FEN.
func (b *Board) FEN() string {
	return b.top().pos.String()
}

// LegalMoves returns the legal moves of the side to move. The returned
// slice is shared; callers must not modify it.
func (b *Board) LegalMoves() []Move {
	f := b.top()
	if f.moves == nil {
		valid := f.pos.ValidMoves()
		f.moves = make([]Move, len(valid))
		for i, m := range valid {
			f.moves[i] = fromLibrary(m)
		}
	}
	return f.moves
}

func (b *Board) lookup(m Move) *chess.Move {
	for _, cm := range b.top().pos.ValidMoves() {
		if m.matches(cm) {
			return cm
		}
	}
	return nil
}

// IsLegal reports whether m is in the current legal move set.
func (b *Board) IsLegal(m Move) bool {
	return b.lookup(m) != nil
}

// IsCapture reports whether m is a legal capture, en passant included.
func (b *Board) IsCapture(m Move) bool {
	cm := b.lookup(m)
	return cm != nil && (cm.HasTag(chess.Capture) || cm.HasTag(chess.EnPassant))
}

// Resolve finds the legal move from one square to another. When the pair is
// a promotion the queen promotion is chosen.
func (b *Board) Resolve(from, to chess.Square) (Move, bool) {
	found := NoMove
	for _, m := range b.LegalMoves() {
		if m.From != from || m.To != to {
			continue
		}
		if m.Promo == chess.NoPieceType || m.Promo == chess.Queen {
			return m, true
		}
		found = m
	}
	return found, found != NoMove
}

// Push applies a legal move.
func (b *Board) Push(m Move) error {
	cm := b.lookup(m)
	if cm == nil {
		return fmt.Errorf("push %s: %w", m, ErrIllegalMove)
	}
	b.frames = append(b.frames, frame{
		pos:   b.top().pos.Update(cm),
		check: cm.HasTag(chess.Check),
	})
	return nil
}

// Pop undoes the last pushed move.
func (b *Board) Pop() error {
	if len(b.frames) == 1 {
		return ErrNoHistory
	}
	b.frames[len(b.frames)-1] = frame{}
	b.frames = b.frames[:len(b.frames)-1]
	return nil
}

// IsCheck reports whether the side to move is in check.
func (b *Board) IsCheck() bool {
	return b.top().check
}

func (b *Board) IsCheckmate() bool {
	return b.IsCheck() && len(b.LegalMoves()) == 0
}

func (b *Board) IsStalemate() bool {
	return !b.IsCheck() && len(b.LegalMoves()) == 0
}

// KingSquare returns the square of the given side's king, or chess.NoSquare.
func (b *Board) KingSquare(c chess.Color) chess.Square {
	return kingSquare(b.top().pos.Board(), c)
}

// PieceAt returns the piece on sq, chess.NoPiece when empty.
func (b *Board) PieceAt(sq chess.Square) chess.Piece {
	return b.top().pos.Board().Piece(sq)
}

// Clone returns an independent board with the same history.
func (b *Board) Clone() *Board {
	c := &Board{frames: make([]frame, len(b.frames))}
	copy(c.frames, b.frames)
	return c
}

func kingSquare(board *chess.Board, c chess.Color) chess.Square {
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		if p.Type() == chess.King && p.Color() == c {
			return sq
		}
	}
	return chess.NoSquare
}
