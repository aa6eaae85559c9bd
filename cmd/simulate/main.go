// Command simulate plays batches of Scoundrel runs with an autoplay policy and reports
// how the configured rules balance out.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"scoundrel/internal/config"

	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gameCfg := config.Default()
	if opts.ConfigPath != "" {
		if err := config.Load(opts.ConfigPath); err != nil {
			logger.Warn("using default rules", zap.String("path", opts.ConfigPath), zap.Error(err))
		}
		gameCfg = config.Get()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := simulate(ctx, logger, gameCfg.DomainRules(), opts)
	if err != nil {
		return err
	}

	logger.Info("simulation finished",
		zap.String("level", string(opts.Level)),
		zap.Int("runs", summary.Runs),
		zap.Int("cleared", summary.Cleared),
		zap.Float64("clear_rate", summary.ClearRate()),
		zap.Float64("mean_score", summary.MeanScore()),
		zap.Int("best_score", summary.BestScore),
		zap.Int("worst_score", summary.WorstScore),
	)
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
