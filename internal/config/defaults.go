package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/party.yaml
var defaultPartyYAML []byte

// DefaultPartyYAML returns the embedded default configuration file.
func DefaultPartyYAML() []byte {
	return defaultPartyYAML
}

// DefaultPartyConfig returns the hard-coded defaults, used when the embedded
// file cannot be parsed.
func DefaultPartyConfig() PartyConfig {
	return PartyConfig{
		Area: AreaConfig{
			Width:  800,
			Height: 480,
		},
		Session: SessionConfig{
			HandoffDelay: Duration(3 * time.Second),
			FadeWindow:   Duration(500 * time.Millisecond),
			Stages:       []string{"memory", "balloons", "feeding"},
			RankingSize:  10,
		},
		Memory: MemoryConfig{
			Duration:      Duration(30 * time.Second),
			Preview:       Duration(4 * time.Second),
			MatchDelay:    Duration(500 * time.Millisecond),
			MismatchDelay: Duration(time.Second),
			MatchPoints:   10,
			Columns:       4,
			Characters: []CardConfig{
				{Name: "mouse", Glyph: "M", Color: "gray"},
				{Name: "duck", Glyph: "D", Color: "yellow"},
				{Name: "dog", Glyph: "P", Color: "orange"},
				{Name: "cat", Glyph: "N", Color: "magenta"},
				{Name: "goofy", Glyph: "G", Color: "green"},
				{Name: "cow", Glyph: "C", Color: "white"},
			},
		},
		Balloons: BalloonsConfig{
			Duration:   Duration(20 * time.Second),
			SpawnEvery: Duration(500 * time.Millisecond),
			MinSize:    50,
			MaxSize:    80,
			MinSpeed:   4,
			MaxSpeed:   8,
			Points:     1,
			Colors:     []string{"bright_red", "bright_yellow", "bright_blue", "bright_green", "orange", "purple"},
		},
		Feeding: FeedingConfig{
			Duration:     Duration(30 * time.Second),
			SpawnEvery:   Duration(time.Second),
			SpawnY:       -40,
			FoodSize:     40,
			MinFallSpeed: 3,
			MaxFallSpeed: 6,
			Actor: ActorConfig{
				Width:  60,
				Height: 70,
				Speed:  5,
				Start:  50,
			},
			Foods: []FoodConfig{
				{Name: "burger", Glyph: "B", Color: "orange"},
				{Name: "apple", Glyph: "A", Color: "bright_red"},
				{Name: "pizza", Glyph: "Z", Color: "yellow"},
				{Name: "ice cream", Glyph: "I", Color: "bright_white"},
				{Name: "donut", Glyph: "O", Color: "magenta"},
				{Name: "popcorn", Glyph: "P", Color: "bright_yellow"},
				{Name: "broccoli", Glyph: "#", Color: "green", Bad: true},
				{Name: "lemon", Glyph: "L", Color: "yellow", Bad: true},
			},
		},
		Audio: AudioConfig{
			Enabled: true,
			Muted:   true,
			Volume:  -1.5,
			Tempo:   132,
		},
	}
}
