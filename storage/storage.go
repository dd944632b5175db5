package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// Preferences are the settings remembered between sessions.
type Preferences struct {
	HumanColor     string        `json:"human_color"`
	Bot            string        `json:"bot"`
	Generations    int           `json:"generations"`
	PopulationSize int           `json:"population_size"`
	MutationRate   float64       `json:"mutation_rate"`
	SequenceLength int           `json:"sequence_length"`
	ThinkTime      time.Duration `json:"think_time"`
	LastPlayed     time.Time     `json:"last_played"`
}

// DefaultPreferences mirrors the built-in search parameters.
func DefaultPreferences() *Preferences {
	return &Preferences{
		HumanColor:     "white",
		Bot:            "genetic",
		Generations:    20,
		PopulationSize: 10,
		MutationRate:   0.2,
		SequenceLength: 3,
	}
}

// Stats counts finished games from the human's point of view.
type Stats struct {
	GamesPlayed int            `json:"games_played"`
	Wins        int            `json:"wins"`
	Losses      int            `json:"losses"`
	Draws       int            `json:"draws"`
	ByBot       map[string]int `json:"games_by_bot"`
}

func NewStats() *Stats {
	return &Stats{ByBot: make(map[string]int)}
}

// WinRate returns the win rate as a percentage (0-100).
func (s *Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// Result is one finished game.
type Result struct {
	Won  bool
	Draw bool
	Bot  string
}

// Storage wraps a BadgerDB handle.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that is discarded on Close.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes key into v, leaving v untouched when the key is missing.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

func (s *Storage) SavePreferences(p *Preferences) error {
	p.LastPlayed = time.Now()
	return s.put(keyPreferences, p)
}

// LoadPreferences returns the saved preferences, or defaults.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	p := DefaultPreferences()
	if err := s.get(keyPreferences, p); err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return p, nil
}

// LoadStats returns the saved statistics, or empty ones.
func (s *Storage) LoadStats() (*Stats, error) {
	st := NewStats()
	if err := s.get(keyStats, st); err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	if st.ByBot == nil {
		st.ByBot = make(map[string]int)
	}
	return st, nil
}

// RecordResult adds a finished game to the statistics.
func (s *Storage) RecordResult(r Result) error {
	st, err := s.LoadStats()
	if err != nil {
		return err
	}
	st.GamesPlayed++
	st.ByBot[r.Bot]++
	switch {
	case r.Draw:
		st.Draws++
	case r.Won:
		st.Wins++
	default:
		st.Losses++
	}
	return s.put(keyStats, st)
}
