package main

import (
	"flag"
	"fmt"

	"scoundrel/internal/bot"
	"scoundrel/internal/config"
)

// envOptions are read first; flags override them.
type envOptions struct {
	Runs       int    `env:"SCOUNDREL_SIM_RUNS" envDefault:"100"`
	Seed       int64  `env:"SCOUNDREL_SIM_SEED" envDefault:"1"`
	Level      string `env:"SCOUNDREL_SIM_LEVEL" envDefault:"cautious"`
	ConfigPath string `env:"SCOUNDREL_SIM_CONFIG" envDefault:"data/scoundrel.yaml"`
	Verbose    bool   `env:"SCOUNDREL_SIM_VERBOSE" envDefault:"false"`
}

type options struct {
	Runs       int
	Seed       int64
	Level      bot.Level
	ConfigPath string
	Verbose    bool
}

func parseOptions(args []string) (options, error) {
	var env envOptions
	if err := config.ParseEnv(&env); err != nil {
		return options{}, err
	}

	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	runs := fs.Int("runs", env.Runs, "number of runs to play")
	seed := fs.Int64("seed", env.Seed, "seed of the first run; run i uses seed+i")
	level := fs.String("level", env.Level, "autoplay level (cautious, greedy)")
	configPath := fs.String("config", env.ConfigPath, "game config file (empty = built-in defaults)")
	verbose := fs.Bool("v", env.Verbose, "log every run")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *runs < 1 {
		return options{}, fmt.Errorf("runs must be positive, got %d", *runs)
	}
	parsed, err := bot.ParseLevel(*level)
	if err != nil {
		return options{}, err
	}

	return options{
		Runs:       *runs,
		Seed:       *seed,
		Level:      parsed,
		ConfigPath: *configPath,
		Verbose:    *verbose,
	}, nil
}
