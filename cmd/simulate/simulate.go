package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"scoundrel/internal/app"
	"scoundrel/internal/bot"
	"scoundrel/internal/domain"

	"go.uber.org/zap"
)

const (
	simUserID = "simulator"
	// maxSteps bounds a single run; a legal run needs far fewer actions.
	maxSteps = 1000
)

// Summary aggregates the outcome of a batch of runs.
type Summary struct {
	Runs       int
	Cleared    int
	TotalScore int
	BestScore  int
	WorstScore int
	TotalSteps int
}

func (s Summary) ClearRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Cleared) / float64(s.Runs)
}

func (s Summary) MeanScore() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.Runs)
}

func (s *Summary) add(ended app.RunEndedPayload, steps int) {
	if s.Runs == 0 || ended.Score > s.BestScore {
		s.BestScore = ended.Score
	}
	if s.Runs == 0 || ended.Score < s.WorstScore {
		s.WorstScore = ended.Score
	}
	s.Runs++
	s.TotalScore += ended.Score
	s.TotalSteps += steps
	if ended.Cleared {
		s.Cleared++
	}
}

// simulate plays opts.Runs runs; run i is shuffled with opts.Seed+i so batches are reproducible.
func simulate(ctx context.Context, logger *zap.Logger, rules domain.Rules, opts options) (Summary, error) {
	agent, err := bot.NewAgent(simUserID, opts.Level)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for i := 0; i < opts.Runs; i++ {
		if err := ctx.Err(); err != nil {
			logger.Warn("simulation interrupted", zap.Int("completed", summary.Runs))
			return summary, err
		}

		seed := opts.Seed + int64(i)
		svc := app.NewService(rand.New(rand.NewSource(seed)), rules)
		ended, steps, err := playRun(svc, agent)
		if err != nil {
			return summary, fmt.Errorf("run %d (seed %d): %w", i, seed, err)
		}
		summary.add(ended, steps)

		logger.Debug("run finished",
			zap.Int64("seed", seed),
			zap.String("run_id", ended.RunID),
			zap.Int("score", ended.Score),
			zap.Int("life", ended.Life),
			zap.Bool("cleared", ended.Cleared),
			zap.Int("steps", steps),
		)
	}
	return summary, nil
}

// playRun lets agent play one run to its end through the app service.
func playRun(svc *app.Service, agent *bot.Agent) (app.RunEndedPayload, int, error) {
	run, _ := svc.StartRun(simUserID)

	for steps := 1; steps <= maxSteps; steps++ {
		action, err := agent.Play(run.Game)
		if err != nil {
			if errors.Is(err, bot.ErrNoMove) {
				return app.RunEndedPayload{}, steps, fmt.Errorf("agent stuck before the run ended")
			}
			return app.RunEndedPayload{}, steps, err
		}

		events, err := svc.Apply(run, simUserID, action)
		if err != nil {
			return app.RunEndedPayload{}, steps, fmt.Errorf("step %d %s: %w", steps, action, err)
		}
		for _, ev := range events {
			if ev.Kind == app.EventRunEnded {
				return ev.Payload.(app.RunEndedPayload), steps, nil
			}
		}
	}
	return app.RunEndedPayload{}, maxSteps, fmt.Errorf("run did not end within %d steps", maxSteps)
}
