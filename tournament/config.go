package tournament

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultGamesPerMatchup applies when the config omits games_per_matchup.
const DefaultGamesPerMatchup = 10

// Participant is one tournament entry. Type is a player spec understood
// by the player registry; the legacy "custom" type pairs with File and
// maps to an external command.
type Participant struct {
	Name string `json:"name"`
	Type string `json:"type"`
	File string `json:"file,omitempty"`
}

// Spec returns the registry spec string for the participant.
func (p Participant) Spec() string {
	if strings.EqualFold(p.Type, "custom") {
		return "exec:cmd=" + p.File
	}
	return p.Type
}

// Config describes a round-robin tournament.
type Config struct {
	Participants    []Participant `json:"participants"`
	GamesPerMatchup int           `json:"games_per_matchup"`
}

// LoadConfig reads and validates a tournament config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read tournament config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse tournament config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the participant list. Names must be present and
// unique because standings and ratings key on them.
func (c Config) Validate() error {
	if len(c.Participants) < 2 {
		return fmt.Errorf("tournament: need at least 2 participants, got %d", len(c.Participants))
	}
	seen := make(map[string]bool, len(c.Participants))
	for i, p := range c.Participants {
		if p.Name == "" {
			return fmt.Errorf("tournament: participant %d missing name", i)
		}
		if p.Type == "" {
			return fmt.Errorf("tournament: participant %q missing type", p.Name)
		}
		if strings.EqualFold(p.Type, "custom") && p.File == "" {
			return fmt.Errorf("tournament: participant %q has type custom but no file", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("tournament: duplicate participant name %q", p.Name)
		}
		seen[p.Name] = true
	}
	if c.GamesPerMatchup < 0 {
		return fmt.Errorf("tournament: games_per_matchup must not be negative, got %d", c.GamesPerMatchup)
	}
	return nil
}
