package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DirName is the per-user directory holding configs, the database and logs.
const DirName = ".party"

// LoadParty loads the party configuration.
// Search order: customPath -> ~/.party/configs/party.yaml -> ./configs/party.yaml -> embedded default
//
// Files are layered over the embedded defaults, so a file only needs the keys
// it changes. An unreadable or invalid custom path is an error; the other
// locations are skipped silently when missing or broken.
func LoadParty(customPath string) (PartyConfig, error) {
	base := embeddedParty()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := overlay(base, data)
		if err != nil {
			return base, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return base, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("party.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := overlay(base, data); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "party.yaml")); err == nil {
		if cfg, err := overlay(base, data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	return base, nil
}

// embeddedParty parses the embedded defaults, falling back to the
// hard-coded ones if the embed is broken.
func embeddedParty() PartyConfig {
	cfg, err := overlay(DefaultPartyConfig(), defaultPartyYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultPartyConfig()
	}
	return cfg
}

// overlay decodes data on top of a copy of base. Lists in data replace the
// base lists entirely.
func overlay(base PartyConfig, data []byte) (PartyConfig, error) {
	cfg := base
	cfg.Session.Stages = nil
	cfg.Memory.Characters = nil
	cfg.Balloons.Colors = nil
	cfg.Feeding.Foods = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	if cfg.Session.Stages == nil {
		cfg.Session.Stages = base.Session.Stages
	}
	if cfg.Memory.Characters == nil {
		cfg.Memory.Characters = base.Memory.Characters
	}
	if cfg.Balloons.Colors == nil {
		cfg.Balloons.Colors = base.Balloons.Colors
	}
	if cfg.Feeding.Foods == nil {
		cfg.Feeding.Foods = base.Feeding.Foods
	}
	return cfg, nil
}

// HomeDir returns ~/.party, or ".party" if the home directory is unknown.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DirName, "configs", filename)
}
