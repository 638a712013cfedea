// Package config provides YAML-based configuration loading for the party:
// play-area geometry, session timing, and the tuning of each mini-game.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration written in YAML as a Go duration string
// ("500ms", "30s").
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("config: duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// PartyConfig contains the whole party configuration.
type PartyConfig struct {
	Area     AreaConfig     `yaml:"area"`
	Session  SessionConfig  `yaml:"session"`
	Memory   MemoryConfig   `yaml:"memory"`
	Balloons BalloonsConfig `yaml:"balloons"`
	Feeding  FeedingConfig  `yaml:"feeding"`
	Audio    AudioConfig    `yaml:"audio"`
}

// AreaConfig is the logical play-area size in pixels. Terminal cells are
// mapped onto it, so gameplay constants do not depend on the window size.
type AreaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SessionConfig holds settings shared by every round.
type SessionConfig struct {
	HandoffDelay Duration `yaml:"handoff_delay"` // Over -> next stage
	FadeWindow   Duration `yaml:"fade_window"`   // Resolved entity lifetime
	Stages       []string `yaml:"stages"`        // Game order of the party
	RankingSize  int      `yaml:"ranking_size"`
}

// MemoryConfig tunes the card matching game.
type MemoryConfig struct {
	Duration      Duration     `yaml:"duration"`
	Preview       Duration     `yaml:"preview"`
	MatchDelay    Duration     `yaml:"match_delay"`
	MismatchDelay Duration     `yaml:"mismatch_delay"`
	MatchPoints   int          `yaml:"match_points"`
	Columns       int          `yaml:"columns"`
	Characters    []CardConfig `yaml:"characters"`
}

// CardConfig is one character of the memory deck; each appears twice.
type CardConfig struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// BalloonsConfig tunes the balloon popping game.
type BalloonsConfig struct {
	Duration   Duration `yaml:"duration"`
	SpawnEvery Duration `yaml:"spawn_every"`
	MinSize    float64  `yaml:"min_size"`
	MaxSize    float64  `yaml:"max_size"`
	MinSpeed   float64  `yaml:"min_speed"` // Pixels per frame
	MaxSpeed   float64  `yaml:"max_speed"`
	Points     int      `yaml:"points"`
	Colors     []string `yaml:"colors"`
}

// FeedingConfig tunes the catch-the-food game.
type FeedingConfig struct {
	Duration     Duration     `yaml:"duration"`
	SpawnEvery   Duration     `yaml:"spawn_every"`
	SpawnY       float64      `yaml:"spawn_y"`
	FoodSize     float64      `yaml:"food_size"`
	MinFallSpeed float64      `yaml:"min_fall_speed"`
	MaxFallSpeed float64      `yaml:"max_fall_speed"`
	Actor        ActorConfig  `yaml:"actor"`
	Foods        []FoodConfig `yaml:"foods"`
}

// ActorConfig describes the player-controlled catcher.
type ActorConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // Percent of width per frame
	Start  float64 `yaml:"start"` // Initial center, percent
}

// FoodConfig is one entry of the food catalog.
type FoodConfig struct {
	Name   string `yaml:"name"`
	Glyph  string `yaml:"glyph"`
	Color  string `yaml:"color"`
	Bad    bool   `yaml:"bad"`
	Weight int    `yaml:"weight"`
}

// AudioConfig controls the background music.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Muted   bool    `yaml:"muted"` // Initial mute state
	Volume  float64 `yaml:"volume"`
	Tempo   int     `yaml:"tempo"` // Beats per minute of the loop
}

// Validate reports the first setting that cannot produce a playable party.
func (c PartyConfig) Validate() error {
	switch {
	case c.Area.Width <= 0 || c.Area.Height <= 0:
		return fmt.Errorf("config: area must be positive, got %vx%v", c.Area.Width, c.Area.Height)
	case len(c.Session.Stages) == 0:
		return fmt.Errorf("config: session.stages is empty")
	case c.Memory.Duration <= 0 || c.Balloons.Duration <= 0 || c.Feeding.Duration <= 0:
		return fmt.Errorf("config: every game needs a positive duration")
	case len(c.Memory.Characters) == 0:
		return fmt.Errorf("config: memory.characters is empty")
	case c.Balloons.SpawnEvery <= 0 || c.Feeding.SpawnEvery <= 0:
		return fmt.Errorf("config: spawn_every must be positive")
	case c.Balloons.MinSize <= 0 || c.Balloons.MaxSize < c.Balloons.MinSize:
		return fmt.Errorf("config: balloons size range [%v, %v] is invalid", c.Balloons.MinSize, c.Balloons.MaxSize)
	case len(c.Balloons.Colors) == 0:
		return fmt.Errorf("config: balloons.colors is empty")
	case len(c.Feeding.Foods) == 0:
		return fmt.Errorf("config: feeding.foods is empty")
	}
	return nil
}
