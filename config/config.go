// Package config merges command-line flags with saved preferences.
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"chessGA/bots"
	"chessGA/rules"
	"chessGA/storage"

	"github.com/notnil/chess"
)

// Settings is everything a front end needs to start a game.
type Settings struct {
	Color   string
	Bot     string
	Params  bots.Params
	Seed    int64
	FEN     string
	DataDir string
	LogPath string
}

// Register adds the shared flags to fs and returns the settings they fill.
func Register(fs *flag.FlagSet) *Settings {
	s := &Settings{}
	d := bots.DefaultParams()
	fs.StringVar(&s.Color, "color", "white", "side the human plays: white or black")
	fs.StringVar(&s.Bot, "bot", bots.Genetic, fmt.Sprintf("automated opponent: %s, or none", strings.Join(bots.Names(), ", ")))
	fs.IntVar(&s.Params.Generations, "generations", d.Generations, "genetic search generations")
	fs.IntVar(&s.Params.PopulationSize, "population", d.PopulationSize, "genetic search population size")
	fs.Float64Var(&s.Params.MutationRate, "mutation", d.MutationRate, "genetic search mutation rate")
	fs.IntVar(&s.Params.SequenceLength, "length", d.SequenceLength, "genetic search sequence length")
	fs.DurationVar(&s.Params.ThinkTime, "think", 0, "genetic search time limit (0 = none)")
	fs.Int64Var(&s.Seed, "seed", 0, "random seed (0 = clock)")
	fs.StringVar(&s.FEN, "fen", "", "start position in FEN (default: standard)")
	fs.StringVar(&s.DataDir, "data", "", "storage directory (default: platform data dir)")
	fs.StringVar(&s.LogPath, "log", "", "write log output to this file")
	return s
}

// Merge fills every flag the user did not set from p, then copies the
// result back into p so it can be saved.
func (s *Settings) Merge(fs *flag.FlagSet, p *storage.Preferences) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["color"] && p.HumanColor != "" {
		s.Color = p.HumanColor
	}
	if !set["bot"] && p.Bot != "" {
		s.Bot = p.Bot
	}
	if !set["generations"] && p.Generations > 0 {
		s.Params.Generations = p.Generations
	}
	if !set["population"] && p.PopulationSize > 0 {
		s.Params.PopulationSize = p.PopulationSize
	}
	if !set["mutation"] {
		s.Params.MutationRate = p.MutationRate
	}
	if !set["length"] && p.SequenceLength > 0 {
		s.Params.SequenceLength = p.SequenceLength
	}
	if !set["think"] {
		s.Params.ThinkTime = p.ThinkTime
	}

	p.HumanColor = s.Color
	p.Bot = s.Bot
	p.Generations = s.Params.Generations
	p.PopulationSize = s.Params.PopulationSize
	p.MutationRate = s.Params.MutationRate
	p.SequenceLength = s.Params.SequenceLength
	p.ThinkTime = s.Params.ThinkTime
}

// IsSet reports whether the flag name was given on the command line.
func IsSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// Sync merges the saved preferences into s and saves the result. Nothing
// is saved when the merged settings do not validate, so a bad flag never
// outlives the run it was given to.
func (s *Settings) Sync(fs *flag.FlagSet, store *storage.Storage) error {
	prefs, err := store.LoadPreferences()
	if err != nil {
		return err
	}
	s.Merge(fs, prefs)
	if err := s.Validate(); err != nil {
		return err
	}
	return store.SavePreferences(prefs)
}

// Human parses the color setting.
func (s *Settings) Human() (chess.Color, error) {
	switch strings.ToLower(s.Color) {
	case "white", "w":
		return chess.White, nil
	case "black", "b":
		return chess.Black, nil
	}
	return chess.NoColor, fmt.Errorf("bad color %q", s.Color)
}

// NewBoard returns the configured start position.
func (s *Settings) NewBoard() (*rules.Board, error) {
	if s.FEN == "" {
		return rules.NewBoard(), nil
	}
	return rules.FromFEN(s.FEN)
}

// NewBot builds the configured opponent; "none" yields a nil bot.
func (s *Settings) NewBot() (bots.ChessBot, error) {
	if s.Bot == "none" {
		return nil, nil
	}
	return bots.New(s.Bot, s.Params, bots.NewRand(s.Seed))
}

// Validate checks everything that can be checked without side effects.
func (s *Settings) Validate() error {
	if _, err := s.Human(); err != nil {
		return err
	}
	if !s.knownBot() {
		return fmt.Errorf("unknown bot %q (want %s or none)", s.Bot, strings.Join(bots.Names(), ", "))
	}
	if err := s.Params.Validate(); err != nil {
		return err
	}
	if s.Params.ThinkTime > time.Minute {
		return fmt.Errorf("think time %v is longer than a minute", s.Params.ThinkTime)
	}
	return nil
}

func (s *Settings) knownBot() bool {
	if s.Bot == "none" {
		return true
	}
	for _, name := range bots.Names() {
		if name == s.Bot {
			return true
		}
	}
	return false
}
