// Package rating maintains persistent ELO ratings for named players.
package rating

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Classic ELO tuning.
const (
	DefaultRating = 1000.0
	KFactor       = 32.0
)

// Scores feed Update from the first player's point of view.
const (
	ScoreWin  = 1.0
	ScoreDraw = 0.5
	ScoreLoss = 0.0
)

// Table is an in-memory rating ledger with flat-file JSON persistence. It
// is keyed by player name, so names double as identities across runs.
type Table struct {
	path    string
	ratings map[string]float64
}

// Load reads the table at path, or starts an empty one when the file does
// not exist yet. A corrupt file is logged and treated as empty; ratings are
// bookkeeping and must never abort a tournament.
func Load(path string) *Table {
	t := &Table{path: path, ratings: map[string]float64{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("cannot read ratings, starting fresh")
		}
		return t
	}
	if err := json.Unmarshal(data, &t.ratings); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("corrupt ratings file, starting fresh")
		t.ratings = map[string]float64{}
	}
	return t
}

// Rating returns the current rating, DefaultRating for unknown names.
func (t *Table) Rating(name string) float64 {
	if r, ok := t.ratings[name]; ok {
		return r
	}
	return DefaultRating
}

// Known reports whether the name has ever been rated.
func (t *Table) Known(name string) bool {
	_, ok := t.ratings[name]
	return ok
}

// Expected is the probability that the first rating beats the second under
// the logistic ELO model.
func Expected(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/400))
}

// Update applies one game between a and b. score is from a's point of view:
// ScoreWin, ScoreDraw or ScoreLoss. The returned deltas are equal and
// opposite; rating points only move between the two players.
func (t *Table) Update(a, b string, score float64) (deltaA, deltaB float64) {
	ra, rb := t.Rating(a), t.Rating(b)
	deltaA = KFactor * (score - Expected(ra, rb))
	deltaB = -deltaA
	t.ratings[a] = ra + deltaA
	t.ratings[b] = rb + deltaB
	return deltaA, deltaB
}

// Save writes the table back to its file.
func (t *Table) Save() error {
	data, err := json.MarshalIndent(t.ratings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ratings: %w", err)
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("writing ratings: %w", err)
	}
	return nil
}

// Entry is one leaderboard line.
type Entry struct {
	Name   string
	Rating float64
}

// Leaderboard returns every rated player from strongest to weakest, names
// breaking ties.
func (t *Table) Leaderboard() []Entry {
	entries := make([]Entry, 0, len(t.ratings))
	for name, r := range t.ratings {
		entries = append(entries, Entry{Name: name, Rating: r})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Rating != b.Rating {
			if a.Rating > b.Rating {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return entries
}
