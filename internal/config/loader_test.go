package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "party.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmbeddedDefaults(t *testing.T) {
	cfg := embeddedParty()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"memory", "balloons", "feeding"}, cfg.Session.Stages)
	assert.Equal(t, 3*time.Second, cfg.Session.HandoffDelay.Std())
	assert.Equal(t, 500*time.Millisecond, cfg.Session.FadeWindow.Std())
	assert.Equal(t, 10, cfg.Session.RankingSize)

	assert.Equal(t, 30*time.Second, cfg.Memory.Duration.Std())
	assert.Equal(t, 4*time.Second, cfg.Memory.Preview.Std())
	assert.Len(t, cfg.Memory.Characters, 6)

	assert.Equal(t, 20*time.Second, cfg.Balloons.Duration.Std())
	assert.Equal(t, 500*time.Millisecond, cfg.Balloons.SpawnEvery.Std())
	assert.Len(t, cfg.Balloons.Colors, 6)

	assert.Equal(t, time.Second, cfg.Feeding.SpawnEvery.Std())
	assert.Equal(t, -40.0, cfg.Feeding.SpawnY)
	assert.Equal(t, 5.0, cfg.Feeding.Actor.Speed)
	assert.Len(t, cfg.Feeding.Foods, 8)

	bad := 0
	for _, f := range cfg.Feeding.Foods {
		if f.Bad {
			bad++
		}
	}
	assert.Equal(t, 2, bad)
}

func TestEmbeddedMatchesHardcodedDefaults(t *testing.T) {
	assert.Equal(t, DefaultPartyConfig(), embeddedParty())
}

func TestLoadPartyOverlay(t *testing.T) {
	path := writeConfig(t, `
session:
  stages: [feeding]
balloons:
  duration: 10s
`)

	cfg, err := LoadParty(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"feeding"}, cfg.Session.Stages)
	assert.Equal(t, 10*time.Second, cfg.Balloons.Duration.Std())
	// Untouched keys keep the defaults.
	assert.Equal(t, 500*time.Millisecond, cfg.Balloons.SpawnEvery.Std())
	assert.Equal(t, 3*time.Second, cfg.Session.HandoffDelay.Std())
	assert.Len(t, cfg.Feeding.Foods, 8)
}

func TestLoadPartyErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad duration", "memory:\n  duration: soon\n"},
		{"numeric duration", "memory:\n  duration: [1]\n"},
		{"invalid", "area:\n  width: 0\n"},
		{"empty stages", "session:\n  stages: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadParty(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadParty(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDurationRoundTrip(t *testing.T) {
	v, err := Duration(1500 * time.Millisecond).MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "1.5s", v)
}
