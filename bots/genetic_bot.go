package bots

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"time"

	"chessGA/rules"
)

var ErrInvalidParams = errors.New("invalid search parameters")

// Params configures the genetic search.
type Params struct {
	Generations    int
	PopulationSize int
	MutationRate   float64
	SequenceLength int
	// ThinkTime bounds the search when positive. It is only checked between
	// generations.
	ThinkTime time.Duration
}

func DefaultParams() Params {
	return Params{
		Generations:    20,
		PopulationSize: 10,
		MutationRate:   0.2,
		SequenceLength: 3,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Generations < 0:
		return fmt.Errorf("%w: generations %d < 0", ErrInvalidParams, p.Generations)
	case p.PopulationSize < 2:
		return fmt.Errorf("%w: population %d < 2", ErrInvalidParams, p.PopulationSize)
	case p.SequenceLength < 1:
		return fmt.Errorf("%w: sequence length %d < 1", ErrInvalidParams, p.SequenceLength)
	case p.MutationRate < 0 || p.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate %v outside [0,1]", ErrInvalidParams, p.MutationRate)
	case p.ThinkTime < 0:
		return fmt.Errorf("%w: think time %v < 0", ErrInvalidParams, p.ThinkTime)
	}
	return nil
}

// Sequence is a candidate line of play. Moves after the first are not
// guaranteed to be legal once the earlier ones are applied.
type Sequence []rules.Move

// GeneticBot evolves short move sequences and plays the first move of the
// fittest one.
type GeneticBot struct {
	Params    Params
	Evaluator PositionEvaluator
	Logger    *log.Logger
	rng       Rand
}

// NewGeneticBot returns a bot using the default evaluator. A nil rng gets a
// time-seeded source.
func NewGeneticBot(p Params, rng Rand) *GeneticBot {
	if rng == nil {
		rng = newRand(0)
	}
	return &GeneticBot{
		Params:    p,
		Evaluator: DefaultEvaluator{},
		Logger:    log.Default(),
		rng:       rng,
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (b *GeneticBot) Name() string {
	return fmt.Sprintf("Genetic Bot (%d gen x %d)", b.Params.Generations, b.Params.PopulationSize)
}

func (b *GeneticBot) BestMove(ctx context.Context, pos Position) (rules.Move, error) {
	return b.SelectMove(ctx, pos, b.Params)
}

// SelectMove runs the search on pos with the given parameters. pos is
// restored before SelectMove returns. Cancelling ctx ends the search after
// the current generation and the best sequence found so far is used.
func (b *GeneticBot) SelectMove(ctx context.Context, pos Position, p Params) (rules.Move, error) {
	if err := p.Validate(); err != nil {
		return rules.NoMove, err
	}
	legal := pos.LegalMoves()
	if len(legal) == 0 {
		return rules.NoMove, rules.ErrNoLegalMoves
	}
	if p.ThinkTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.ThinkTime)
		defer cancel()
	}

	start := time.Now()
	population := b.seed(legal, p)
	generation := 0
	for ; generation < p.Generations; generation++ {
		if ctx.Err() != nil {
			break
		}
		population = b.nextGeneration(pos, population, legal, p)
	}

	best, fitness := b.fittest(pos, population)
	b.logf("genetic: %s fitness=%d generations=%d/%d elapsed=%s",
		best[0], fitness, generation, p.Generations, time.Since(start))
	return best[0], nil
}

// Fitness sums the evaluator score after each move of seq, stopping at the
// first move that is not legal where it would be played. Every pushed move
// is popped again on the way out.
func (b *GeneticBot) Fitness(pos Position, seq Sequence) int {
	pushed := 0
	defer func() {
		for ; pushed > 0; pushed-- {
			// cannot fail: every counted push is still on the stack
			_ = pos.Pop()
		}
	}()

	total := 0
	for _, m := range seq {
		if !pos.IsLegal(m) {
			break
		}
		if err := pos.Push(m); err != nil {
			break
		}
		pushed++
		total += b.Evaluator.Score(pos)
	}
	return total
}

func (b *GeneticBot) seed(legal []rules.Move, p Params) []Sequence {
	population := make([]Sequence, p.PopulationSize)
	for i := range population {
		seq := make(Sequence, p.SequenceLength)
		for j := range seq {
			seq[j] = legal[b.rng.Intn(len(legal))]
		}
		population[i] = seq
	}
	return population
}

// nextGeneration keeps the fitter half and refills the population with
// mutated crossovers of it.
func (b *GeneticBot) nextGeneration(pos Position, population []Sequence, legal []rules.Move, p Params) []Sequence {
	scores := make([]int, len(population))
	for i, seq := range population {
		scores[i] = b.Fitness(pos, seq)
	}
	order := make([]int, len(population))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	keep := p.PopulationSize / 2
	elite := make([]Sequence, keep)
	for i := range elite {
		elite[i] = population[order[i]]
	}

	children := make([]Sequence, p.PopulationSize-keep)
	for i := range children {
		children[i] = b.crossover(elite[b.rng.Intn(keep)], elite[b.rng.Intn(keep)])
	}
	// Mutations draw from the root legal moves and are not checked against
	// the moves before them in the child.
	for _, child := range children {
		if b.rng.Float64() < p.MutationRate {
			child[b.rng.Intn(len(child))] = legal[b.rng.Intn(len(legal))]
		}
	}

	return append(elite, children...)
}

func (b *GeneticBot) crossover(p1, p2 Sequence) Sequence {
	child := make(Sequence, 0, len(p1))
	if len(p1) < 2 {
		return append(child, p1...)
	}
	cut := 1 + b.rng.Intn(len(p1)-1)
	child = append(child, p1[:cut]...)
	return append(child, p2[cut:]...)
}

// fittest rescores the population and returns the first sequence with the
// highest fitness.
func (b *GeneticBot) fittest(pos Position, population []Sequence) (Sequence, int) {
	best, bestScore := population[0], b.Fitness(pos, population[0])
	for _, seq := range population[1:] {
		if s := b.Fitness(pos, seq); s > bestScore {
			best, bestScore = seq, s
		}
	}
	return best, bestScore
}

func (b *GeneticBot) logf(format string, args ...any) {
	if b.Logger != nil {
		b.Logger.Printf(format, args...)
	}
}
