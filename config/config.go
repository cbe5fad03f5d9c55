// Package config loads the command line configuration with priority
// env > file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is safe to read concurrently once loaded.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Game     string        `yaml:"game"`
	Playout  PlayoutConfig `yaml:"playout"`
}

type PlayoutConfig struct {
	Playouts  int    `yaml:"playouts"`
	Workers   int    `yaml:"workers"`
	MaxMoves  int    `yaml:"max_moves"`
	Seed      uint64 `yaml:"seed"`
	OutputDir string `yaml:"output_dir"` // empty disables CSV output
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Game:     "tictactoe",
		Playout: PlayoutConfig{
			Playouts: 100,
			Workers:  runtime.GOMAXPROCS(0),
			MaxMoves: 10000,
			Seed:     1,
		},
	}
}

// Load merges the defaults, the YAML file at path (optional, can be empty)
// and the LUDEME_* environment variables, then validates the result.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadEnv(&config); err != nil {
		return config, fmt.Errorf("load config from env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}

func loadEnv(config *Config) error {
	var errs []error
	atoi := func(name string, dst *int) {
		if v := os.Getenv(name); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = i
		}
	}

	if v := os.Getenv("LUDEME_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("LUDEME_GAME"); v != "" {
		config.Game = v
	}
	atoi("LUDEME_PLAYOUTS", &config.Playout.Playouts)
	atoi("LUDEME_WORKERS", &config.Playout.Workers)
	atoi("LUDEME_MAX_MOVES", &config.Playout.MaxMoves)
	if v := os.Getenv("LUDEME_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("LUDEME_SEED: %w", err))
		} else {
			config.Playout.Seed = seed
		}
	}
	if v, ok := os.LookupEnv("LUDEME_OUTPUT_DIR"); ok {
		config.Playout.OutputDir = v
	}
	return errors.Join(errs...)
}

// Level returns the zerolog level named by LogLevel.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Game == "" {
		return errors.New("game must be set")
	}
	if c.Playout.Playouts < 1 {
		return fmt.Errorf("playouts must be >= 1, got %d", c.Playout.Playouts)
	}
	if c.Playout.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Playout.Workers)
	}
	if c.Playout.MaxMoves < 1 {
		return fmt.Errorf("max_moves must be >= 1, got %d", c.Playout.MaxMoves)
	}
	return nil
}
