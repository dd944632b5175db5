package rules

import (
	"errors"
	"testing"

	"github.com/notnil/chess"
)

func mustFEN(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return b
}

func TestPushPopRestoresPosition(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
	}
	for _, fen := range fens {
		b := mustFEN(t, fen)
		before := b.FEN()
		for _, m := range b.LegalMoves() {
			if err := b.Push(m); err != nil {
				t.Fatalf("%s: push %s: %v", fen, m, err)
			}
			if b.Depth() != 1 {
				t.Fatalf("depth after push = %d, want 1", b.Depth())
			}
			if err := b.Pop(); err != nil {
				t.Fatalf("%s: pop after %s: %v", fen, m, err)
			}
			if got := b.FEN(); got != before {
				t.Fatalf("%s: after %s push/pop got %s", fen, m, got)
			}
		}
	}
}

func TestPushIllegal(t *testing.T) {
	b := NewBoard()
	err := b.Push(NewMove(chess.E2, chess.E5))
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("Push e2e5 error = %v, want ErrIllegalMove", err)
	}
	if b.Depth() != 0 {
		t.Errorf("illegal push changed depth to %d", b.Depth())
	}
}

func TestPopRoot(t *testing.T) {
	if err := NewBoard().Pop(); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("Pop on root = %v, want ErrNoHistory", err)
	}
}

func TestStartingMoves(t *testing.T) {
	b := NewBoard()
	if n := len(b.LegalMoves()); n != 20 {
		t.Fatalf("starting position has %d moves, want 20", n)
	}
	if !b.IsLegal(NewMove(chess.G1, chess.F3)) {
		t.Error("g1f3 should be legal")
	}
	if b.IsCheck() || b.IsCheckmate() || b.IsStalemate() {
		t.Error("starting position reports a terminal or check state")
	}
}

func TestCheckAfterPush(t *testing.T) {
	// 1.e4 f5 2.Qh5+
	b := NewBoard()
	for _, s := range []string{"e2e4", "f7f5", "d1h5"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		if err := b.Push(m); err != nil {
			t.Fatal(err)
		}
	}
	if !b.IsCheck() {
		t.Fatal("black should be in check after Qh5+")
	}
	if got := b.KingSquare(chess.Black); got != chess.E8 {
		t.Errorf("black king on %s, want e8", got)
	}
	if err := b.Pop(); err != nil {
		t.Fatal(err)
	}
	if b.IsCheck() {
		t.Error("check state not restored by pop")
	}
}

func TestTerminalFromFEN(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		check     bool
		checkmate bool
		stalemate bool
	}{
		{"back rank mate", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 1 1", true, true, false},
		{"queen stalemate", "k7/8/1Q6/8/8/8/8/7K b - - 1 1", false, false, true},
		{"rook check", "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1", true, false, false},
		{"knight check", "4k3/8/3N4/8/8/8/8/6K1 b - - 0 1", true, false, false},
		{"pawn check", "4k3/3P4/8/8/8/8/8/6K1 b - - 0 1", true, false, false},
		{"blocked rook", "4k3/4p3/8/8/8/8/8/4R1K1 b - - 0 1", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFEN(t, tt.fen)
			if b.IsCheck() != tt.check {
				t.Errorf("IsCheck = %v, want %v", b.IsCheck(), tt.check)
			}
			if b.IsCheckmate() != tt.checkmate {
				t.Errorf("IsCheckmate = %v, want %v", b.IsCheckmate(), tt.checkmate)
			}
			if b.IsStalemate() != tt.stalemate {
				t.Errorf("IsStalemate = %v, want %v", b.IsStalemate(), tt.stalemate)
			}
		})
	}
}

func TestResolvePromotionPrefersQueen(t *testing.T) {
	b := mustFEN(t, "8/4P3/8/8/8/8/k7/4K3 w - - 0 1")
	m, ok := b.Resolve(chess.E7, chess.E8)
	if !ok {
		t.Fatal("e7e8 not resolved")
	}
	if m.Promo != chess.Queen {
		t.Errorf("promotion = %v, want queen", m.Promo)
	}
	if _, ok := b.Resolve(chess.E7, chess.E6); ok {
		t.Error("e7e6 resolved but is not legal")
	}
}

func TestIsCapture(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	if !b.IsCapture(NewMove(chess.E5, chess.D6)) {
		t.Error("en passant e5d6 should count as capture")
	}
	if b.IsCapture(NewMove(chess.E5, chess.E6)) {
		t.Error("e5e6 is not a capture")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	c := b.Clone()
	if err := c.Push(NewMove(chess.E2, chess.E4)); err != nil {
		t.Fatal(err)
	}
	if b.Depth() != 0 || b.PieceAt(chess.E4) != chess.NoPiece {
		t.Error("push on clone changed the original")
	}
	if c.PieceAt(chess.E4) != chess.WhitePawn {
		t.Error("clone missing pushed pawn")
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
		err  bool
	}{
		{"e2e4", NewMove(chess.E2, chess.E4), false},
		{"a7a8n", Move{From: chess.A7, To: chess.A8, Promo: chess.Knight}, false},
		{"e2", NoMove, true},
		{"i2e4", NoMove, true},
		{"e7e8k", NoMove, true},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseMove(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.err && got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}
