// Package config loads the dupetrack CLI configuration.
//
// Sources are layered: built-in defaults, then an optional YAML file, then
// DUPETRACK_* environment variables (a .env file in the working directory is
// loaded first), then command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Mode selects what the CLI prints for each input line.
type Mode string

const (
	// ModeUnique prints the first occurrence of every line.
	ModeUnique Mode = "unique"
	// ModeDuplicates prints every repeat.
	ModeDuplicates Mode = "duplicates"
	// ModeAnnotate prints every line prefixed with "new" or "dup".
	ModeAnnotate Mode = "annotate"
	// ModeNone prints nothing; useful with --stats.
	ModeNone Mode = "none"
)

// Hash names accepted in Config.Hash.
const (
	HashXX      = "xxhash"
	HashMaphash = "maphash"
)

var (
	// ErrInvalidMode is returned for an unknown output mode.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidHash is returned for an unknown hash name.
	ErrInvalidHash = errors.New("invalid hash")
	// ErrInvalidCapacity is returned for a negative capacity.
	ErrInvalidCapacity = errors.New("capacity must not be negative")
	// ErrConflict is returned when two settings cannot be combined.
	ErrConflict = errors.New("conflicting settings")
)

// Config is the CLI configuration.
type Config struct {
	Mode             Mode          `yaml:"mode"`
	Capacity         int           `yaml:"capacity"`
	Hash             string        `yaml:"hash"`
	IgnoreCase       bool          `yaml:"ignore_case"`
	Trim             bool          `yaml:"trim"`
	Numeric          bool          `yaml:"numeric"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
	MetricsFile      string        `yaml:"metrics_file,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode:             ModeUnique,
		Capacity:         64,
		Hash:             HashXX,
		ProgressInterval: 5 * time.Second,
	}
}

// Load returns the defaults overlaid with the YAML file at path. Environment
// variables referenced as ${VAR} in the file are expanded. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays DUPETRACK_* variables read through lookup
// (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("DUPETRACK_MODE"); ok {
		c.Mode = Mode(strings.ToLower(v))
	}
	if v, ok := lookup("DUPETRACK_HASH"); ok {
		c.Hash = strings.ToLower(v)
	}
	if v, ok := lookup("DUPETRACK_METRICS_FILE"); ok {
		c.MetricsFile = v
	}
	if v, ok := lookup("DUPETRACK_CAPACITY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DUPETRACK_CAPACITY: %w", err)
		}
		c.Capacity = n
	}
	if v, ok := lookup("DUPETRACK_PROGRESS_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DUPETRACK_PROGRESS_INTERVAL: %w", err)
		}
		c.ProgressInterval = d
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"DUPETRACK_IGNORE_CASE", &c.IgnoreCase},
		{"DUPETRACK_TRIM", &c.Trim},
		{"DUPETRACK_NUMERIC", &c.Numeric},
	}
	for _, b := range bools {
		v, ok := lookup(b.key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = parsed
	}
	return nil
}

// Validate checks the configuration for unknown values and conflicts.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeUnique, ModeDuplicates, ModeAnnotate, ModeNone:
	default:
		return fmt.Errorf("%w: %q (want unique, duplicates, annotate or none)", ErrInvalidMode, c.Mode)
	}
	switch c.Hash {
	case HashXX, HashMaphash:
	default:
		return fmt.Errorf("%w: %q (want xxhash or maphash)", ErrInvalidHash, c.Hash)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, c.Capacity)
	}
	if c.Numeric && c.IgnoreCase {
		return fmt.Errorf("%w: numeric and ignore_case", ErrConflict)
	}
	return nil
}
