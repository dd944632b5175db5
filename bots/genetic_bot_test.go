package bots

import (
	"context"
	"errors"
	"io"
	"log"
	"math/rand"
	"testing"
	"time"

	"chessGA/rules"

	"github.com/notnil/chess"
)

func quietBot(p Params, seed int64) *GeneticBot {
	b := NewGeneticBot(p, rand.New(rand.NewSource(seed)))
	b.Logger = log.New(io.Discard, "", 0)
	return b
}

func board(t *testing.T, fen string) *rules.Board {
	t.Helper()
	if fen == "" {
		return rules.NewBoard()
	}
	b, err := rules.FromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestFitnessRestoresPosition(t *testing.T) {
	b := rules.NewBoard()
	before := b.FEN()
	bot := quietBot(DefaultParams(), 1)
	legal := b.LegalMoves()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		seq := make(Sequence, 4)
		for j := range seq {
			seq[j] = legal[rng.Intn(len(legal))]
		}
		bot.Fitness(b, seq)
		if b.FEN() != before || b.Depth() != 0 {
			t.Fatalf("fitness of %v left %s at depth %d", seq, b.FEN(), b.Depth())
		}
	}
}

func TestFitnessStopsAtIllegalMove(t *testing.T) {
	b := rules.NewBoard()
	e4 := rules.NewMove(chess.E2, chess.E4)
	bot := quietBot(DefaultParams(), 1)

	// after 1.e4 it is black to move, so e2e4 again is illegal.
	got := bot.Fitness(b, Sequence{e4, e4, rules.NewMove(chess.E7, chess.E5)})
	if got != 279 {
		t.Errorf("fitness = %d, want 279 (score after e4 only)", got)
	}
	if b.Depth() != 0 || b.PieceAt(chess.E2) != chess.WhitePawn {
		t.Error("position not restored")
	}
}

func TestFitnessNoLegalPrefix(t *testing.T) {
	b := rules.NewBoard()
	bot := quietBot(DefaultParams(), 1)
	if got := bot.Fitness(b, Sequence{rules.NewMove(chess.E7, chess.E5)}); got != 0 {
		t.Errorf("fitness = %d, want 0", got)
	}
}

func TestFitnessAccumulates(t *testing.T) {
	b := rules.NewBoard()
	bot := quietBot(DefaultParams(), 1)
	seq := Sequence{rules.NewMove(chess.E2, chess.E4), rules.NewMove(chess.E7, chess.E5)}

	want := 0
	for _, m := range seq {
		if err := b.Push(m); err != nil {
			t.Fatal(err)
		}
		want += DefaultEvaluator{}.Score(b)
	}
	for range seq {
		if err := b.Pop(); err != nil {
			t.Fatal(err)
		}
	}
	if got := bot.Fitness(b, seq); got != want {
		t.Errorf("fitness = %d, want %d", got, want)
	}
}

func TestSelectMoveSingleLegalMove(t *testing.T) {
	// black king h8, white rook g1: only Kh7.
	b := board(t, "7k/8/8/8/8/8/8/K5R1 b - - 0 1")
	want := rules.NewMove(chess.H8, chess.H7)
	for _, p := range []Params{
		{Generations: 0, PopulationSize: 2, MutationRate: 0, SequenceLength: 1},
		{Generations: 5, PopulationSize: 6, MutationRate: 1, SequenceLength: 4},
		DefaultParams(),
	} {
		got, err := quietBot(p, 3).SelectMove(context.Background(), b, p)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%+v: got %s, want %s", p, got, want)
		}
	}
}

func TestSelectMoveIsLegal(t *testing.T) {
	fens := []string{
		"",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		b := board(t, fen)
		before := b.FEN()
		for seed := int64(1); seed <= 5; seed++ {
			p := Params{Generations: 6, PopulationSize: 8, MutationRate: 0.5, SequenceLength: 3}
			m, err := quietBot(p, seed).SelectMove(context.Background(), b, p)
			if err != nil {
				t.Fatal(err)
			}
			if !b.IsLegal(m) {
				t.Errorf("%q seed %d: %s is not legal", fen, seed, m)
			}
			if b.FEN() != before {
				t.Fatalf("search changed the position to %s", b.FEN())
			}
		}
	}
}

func TestSelectMoveDeterministic(t *testing.T) {
	b := rules.NewBoard()
	p := DefaultParams()
	first, err := quietBot(p, 42).SelectMove(context.Background(), b, p)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := quietBot(p, 42).SelectMove(context.Background(), b, p)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("seed 42 gave %s then %s", first, again)
		}
	}
}

func TestSelectMoveNoLegalMoves(t *testing.T) {
	b := board(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 1 1")
	_, err := quietBot(DefaultParams(), 1).SelectMove(context.Background(), b, DefaultParams())
	if !errors.Is(err, rules.ErrNoLegalMoves) {
		t.Fatalf("err = %v, want ErrNoLegalMoves", err)
	}
}

func TestSelectMoveCancelled(t *testing.T) {
	b := rules.NewBoard()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := Params{Generations: 1000, PopulationSize: 10, MutationRate: 0.2, SequenceLength: 3}
	m, err := quietBot(p, 1).SelectMove(ctx, b, p)
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsLegal(m) {
		t.Errorf("cancelled search returned illegal %s", m)
	}
}

func TestParamsValidate(t *testing.T) {
	bad := []Params{
		{Generations: -1, PopulationSize: 10, MutationRate: 0.2, SequenceLength: 3},
		{Generations: 1, PopulationSize: 1, MutationRate: 0.2, SequenceLength: 3},
		{Generations: 1, PopulationSize: 10, MutationRate: 1.5, SequenceLength: 3},
		{Generations: 1, PopulationSize: 10, MutationRate: -0.1, SequenceLength: 3},
		{Generations: 1, PopulationSize: 10, MutationRate: 0.2, SequenceLength: 0},
		{Generations: 1, PopulationSize: 10, MutationRate: 0.2, SequenceLength: 3, ThinkTime: -time.Second},
	}
	for _, p := range bad {
		if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidParams", p, err)
		}
	}
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("default params invalid: %v", err)
	}
}

func TestPopulationShapeIsStable(t *testing.T) {
	b := rules.NewBoard()
	for _, p := range []Params{
		{PopulationSize: 10, MutationRate: 0.2, SequenceLength: 3},
		{PopulationSize: 7, MutationRate: 1, SequenceLength: 1},
		{PopulationSize: 2, MutationRate: 0.5, SequenceLength: 5},
	} {
		bot := quietBot(p, 9)
		legal := b.LegalMoves()
		population := bot.seed(legal, p)
		for gen := 0; gen < 15; gen++ {
			population = bot.nextGeneration(b, population, legal, p)
			if len(population) != p.PopulationSize {
				t.Fatalf("%+v gen %d: population %d", p, gen, len(population))
			}
			for _, seq := range population {
				if len(seq) != p.SequenceLength {
					t.Fatalf("%+v gen %d: sequence length %d", p, gen, len(seq))
				}
				if !b.IsLegal(seq[0]) {
					t.Fatalf("%+v gen %d: first move %s illegal", p, gen, seq[0])
				}
			}
		}
	}
}

func TestNextGenerationKeepsElite(t *testing.T) {
	b := rules.NewBoard()
	p := Params{PopulationSize: 4, MutationRate: 1, SequenceLength: 2}
	bot := quietBot(p, 5)
	legal := b.LegalMoves()
	population := bot.seed(legal, p)

	best, bestScore := bot.fittest(b, population)
	next := bot.nextGeneration(b, population, legal, p)
	if bot.Fitness(b, next[0]) != bestScore {
		t.Errorf("elite[0] fitness %d, want %d", bot.Fitness(b, next[0]), bestScore)
	}
	if &next[0][0] != &best[0] {
		t.Error("fittest sequence is not first in the next generation")
	}
}

func TestCrossover(t *testing.T) {
	a := Sequence{rules.NewMove(chess.A2, chess.A3), rules.NewMove(chess.B2, chess.B3), rules.NewMove(chess.C2, chess.C3)}
	z := Sequence{rules.NewMove(chess.H2, chess.H3), rules.NewMove(chess.G2, chess.G3), rules.NewMove(chess.F2, chess.F3)}
	bot := quietBot(DefaultParams(), 11)
	for i := 0; i < 50; i++ {
		child := bot.crossover(a, z)
		if len(child) != 3 {
			t.Fatalf("child length %d", len(child))
		}
		if child[0] != a[0] {
			t.Fatalf("child %v does not start with parent 1", child)
		}
		if child[2] != z[2] {
			t.Fatalf("child %v does not end with parent 2", child)
		}
	}
	if child := bot.crossover(a[:1], z[:1]); len(child) != 1 || child[0] != a[0] {
		t.Errorf("length-1 crossover = %v", child)
	}
}
