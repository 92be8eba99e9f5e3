// Package config handles the optional ascii01.toml settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pborges/ascii01/internal/device"
	"github.com/pborges/ascii01/internal/logging"
)

// FileName is the settings file FindAndLoad looks for.
const FileName = "ascii01.toml"

// Config is the contents of an ascii01.toml file.
type Config struct {
	Width int `toml:"width"`
	Log   Log `toml:"log"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func Default() *Config {
	return &Config{
		Width: int(device.Width64),
		Log:   Log{Level: "info", Format: "text"},
	}
}

// Load reads and validates the file at path. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// FindAndLoad walks up from startDir looking for FileName and loads the
// first one found. Defaults are returned when there is none.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

func (c *Config) Validate() error {
	if _, err := device.ParseWidth(c.Width); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return err
	}
	return nil
}

// DeviceWidth returns the configured width. It panics if the config has
// not been validated.
func (c *Config) DeviceWidth() device.Width {
	w, err := device.ParseWidth(c.Width)
	if err != nil {
		panic(err)
	}
	return w
}
