// Package config gathers run settings from the environment and the command line.
// Flags win over environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"riskparity/game"
	"riskparity/meta"
	"riskparity/random"
)

type Config struct {
	Seed       int64         `env:"RISK_SEED"`
	Players    []string      `env:"RISK_PLAYERS" envSeparator:" "`
	Deal       bool          `env:"RISK_DEAL"`
	Trace      string        `env:"RISK_TRACE"`
	Games      int           `env:"RISK_GAMES" envDefault:"1"`
	Delay      time.Duration `env:"RISK_DELAY"`
	Display    bool          `env:"RISK_DISPLAY"`
	Color      bool          `env:"RISK_COLOR" envDefault:"true"`
	Map        string        `env:"RISK_MAP"`
	Generator  string        `env:"RISK_GENERATOR" envDefault:"mt19937"`
	MaxTurns   int           `env:"RISK_MAX_TURNS"`
	Metrics    bool          `env:"RISK_METRICS"`
	MetricsDir string        `env:"RISK_METRICS_DIR"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`

	// Command line only.
	Conformance bool
	Against     string
	WithRandom  bool
}

// Load reads the environment.
func Load() (Config, error) {
	cfg := Config{MetricsDir: meta.METRICS_DIR}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Bind registers the flags on fs, using the current values as defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed; 0 picks a fresh one")
	fs.Int64Var(&c.Seed, "s", c.Seed, "shorthand for -seed")
	fs.IntVar(&c.Games, "games", c.Games, "number of rounds to play")
	fs.IntVar(&c.Games, "g", c.Games, "shorthand for -games")
	fs.BoolVar(&c.Deal, "deal", c.Deal, "deal territories at random instead of choosing them")
	fs.StringVar(&c.Trace, "trace", c.Trace, "write a JSON-lines trace to this file")
	fs.DurationVar(&c.Delay, "delay", c.Delay, "pause after each displayed event")
	fs.DurationVar(&c.Delay, "d", c.Delay, "shorthand for -delay")
	fs.BoolVar(&c.Display, "display", c.Display, "print every game event")
	fs.BoolFunc("nocolor", "disable colors", func(string) error {
		c.Color = false
		return nil
	})
	fs.StringVar(&c.Map, "map", c.Map, "YAML world file; the classic map when empty")
	fs.StringVar(&c.Generator, "generator", c.Generator, "random generator: mt19937 or pcg")
	fs.IntVar(&c.MaxTurns, "max-turns", c.MaxTurns, "end in a draw after this many turns; 0 for no cap")
	fs.BoolVar(&c.Metrics, "metrics", c.Metrics, "write CSV metrics for the run")
	fs.StringVar(&c.MetricsDir, "metrics-dir", c.MetricsDir, "directory that receives the metrics folders")
	fs.BoolVar(&c.Conformance, "conformance", c.Conformance, "run two engines and compare their traces")
	fs.StringVar(&c.Against, "against", c.Against, "compare a run with this reference trace file")
	fs.BoolVar(&c.WithRandom, "with-random", c.WithRandom, "also compare randomness records")
}

// Parse loads the environment, then applies flags and positional player specs from args.
func Parse(name string, args []string) (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		cfg.Players = fs.Args()
	}
	if len(cfg.Players) == 0 {
		cfg.Players = meta.DEFAULT_PLAYERS
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Games < 1 {
		errs = append(errs, fmt.Errorf("games must be at least 1, got %d", c.Games))
	}
	if c.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("max turns must not be negative, got %d", c.MaxTurns))
	}
	if c.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative, got %s", c.Delay))
	}
	if _, err := random.NewGenerator(c.Generator, 0); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// World loads the configured map.
func (c Config) World() (*game.World, error) {
	if c.Map == "" {
		return game.ClassicWorld(), nil
	}
	return game.LoadWorldFile(c.Map)
}

// ResolveSeed replaces a zero seed with a fresh one.
func (c *Config) ResolveSeed() (int64, error) {
	if c.Seed == meta.DEFAULT_SEED {
		seed, err := random.NewSeed()
		if err != nil {
			return 0, err
		}
		c.Seed = seed
	}
	return c.Seed, nil
}
