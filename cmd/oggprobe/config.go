package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ReadConfig controls how streams are parsed.
type ReadConfig struct {
	// ValidateCRC checks page checksums while reading. On by default;
	// turn off to inspect files with damaged checksums.
	ValidateCRC bool `toml:"validate_crc"`

	// MaxPacketSize caps header packet reassembly in bytes.
	// Zero uses the library default.
	MaxPacketSize int `toml:"max_packet_size"`
}

// OutputConfig controls table rendering.
type OutputConfig struct {
	// TableStyle is one of "rounded", "light" or "plain".
	TableStyle string `toml:"table_style"`
}

// Config is the oggprobe configuration file layout.
type Config struct {
	Read   ReadConfig   `toml:"read"`
	Output OutputConfig `toml:"output"`
}

func defaultConfig() Config {
	return Config{
		Read:   ReadConfig{ValidateCRC: true},
		Output: OutputConfig{TableStyle: "rounded"},
	}
}

// loadConfig reads the TOML configuration at path, or the default
// location when path is empty. A missing file at the default location
// yields the defaults; a missing explicit path is an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := os.UserConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "oggprobe", "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
