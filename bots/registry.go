package bots

import (
	"fmt"
	"sort"
)

// Bot names accepted by New.
const (
	Genetic = "genetic"
	Random  = "random"
	Newborn = "newborn"
)

// New builds a bot by name. rng may be nil.
func New(name string, p Params, rng Rand) (ChessBot, error) {
	switch name {
	case Genetic:
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return NewGeneticBot(p, rng), nil
	case Random:
		return NewRandomBot(rng), nil
	case Newborn:
		return NewNewbornBot(), nil
	}
	return nil, fmt.Errorf("unknown bot %q (have %v)", name, Names())
}

func Names() []string {
	names := []string{Genetic, Random, Newborn}
	sort.Strings(names)
	return names
}

// NewRand returns a seeded random source; seed 0 means seed from the clock.
func NewRand(seed int64) Rand {
	return newRand(seed)
}
