package bot

import (
	"fmt"
	"strings"
)

// Level names an autoplay strategy.
type Level string

const (
	LevelCautious Level = "cautious"
	LevelGreedy   Level = "greedy"
)

// ParseLevel accepts a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelCautious:
		return LevelCautious, nil
	case LevelGreedy:
		return LevelGreedy, nil
	default:
		return "", fmt.Errorf("unknown bot level: %q", s)
	}
}

// NewBrain creates a new autoplay brain based on the specified level.
func NewBrain(level Level) (Brain, error) {
	switch level {
	case LevelCautious:
		return &CautiousBot{Tuning: DefaultTuning}, nil
	case LevelGreedy:
		return &GreedyBot{Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %q", level)
	}
}
