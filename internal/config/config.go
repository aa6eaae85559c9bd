package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"scoundrel/internal/domain"

	"gopkg.in/yaml.v3"
)

// RulesConfig mirrors domain.Rules so the dungeon can be tuned without a rebuild.
type RulesConfig struct {
	StartingLife int `yaml:"starting_life" json:"starting_life"`
	MaxLife      int `yaml:"max_life" json:"max_life"`
	ScoreOffset  int `yaml:"score_offset" json:"score_offset"`
	RoomSize     int `yaml:"room_size" json:"room_size"`
	RefillSize   int `yaml:"refill_size" json:"refill_size"`
}

type MatchConfig struct {
	TickRate int `yaml:"tick_rate" json:"tick_rate"`
	// IdleTimeoutSeconds is how long a run survives without its owner connected.
	IdleTimeoutSeconds int `yaml:"idle_timeout_seconds" json:"idle_timeout_seconds"`
}

type LeaderboardConfig struct {
	ID            string `yaml:"id" json:"id"`
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	SortOrder     string `yaml:"sort_order" json:"sort_order"`
	Operator      string `yaml:"operator" json:"operator"`
	ResetSchedule string `yaml:"reset_schedule" json:"reset_schedule"`
}

type ReceiptConfig struct {
	Issuer     string `yaml:"issuer" json:"issuer"`
	TTLSeconds int    `yaml:"ttl_seconds" json:"ttl_seconds"`
}

type GameConfig struct {
	Rules       RulesConfig       `yaml:"rules" json:"rules"`
	Match       MatchConfig       `yaml:"match" json:"match"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard" json:"leaderboard"`
	Receipts    ReceiptConfig     `yaml:"receipts" json:"receipts"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the standard single-deck dungeon configuration.
func Default() *GameConfig {
	rules := domain.DefaultRules()
	return &GameConfig{
		Rules: RulesConfig{
			StartingLife: rules.StartingLife,
			MaxLife:      rules.MaxLife,
			ScoreOffset:  rules.ScoreOffset,
			RoomSize:     rules.RoomSize,
			RefillSize:   rules.RefillSize,
		},
		Match: MatchConfig{
			TickRate:           1,
			IdleTimeoutSeconds: 300,
		},
		Leaderboard: LeaderboardConfig{
			ID:        "scoundrel_best",
			Enabled:   true,
			SortOrder: "desc",
			Operator:  "best",
		},
		Receipts: ReceiptConfig{
			Issuer:     "scoundrel",
			TTLSeconds: 7 * 24 * 60 * 60,
		},
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*GameConfig, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return c, nil
}

// Load reads the game configuration from the given path. Only the first call has any effect.
func Load(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := Parse(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// Get returns the loaded configuration, or the defaults when nothing was loaded.
func Get() *GameConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}

func (c *GameConfig) DomainRules() domain.Rules {
	return domain.Rules{
		StartingLife: c.Rules.StartingLife,
		MaxLife:      c.Rules.MaxLife,
		ScoreOffset:  c.Rules.ScoreOffset,
		RoomSize:     c.Rules.RoomSize,
		RefillSize:   c.Rules.RefillSize,
	}
}

func (c *GameConfig) ReceiptTTL() time.Duration {
	return time.Duration(c.Receipts.TTLSeconds) * time.Second
}

// IdleTimeoutTicks converts the idle timeout into match loop ticks.
func (c *GameConfig) IdleTimeoutTicks() int64 {
	return int64(c.Match.IdleTimeoutSeconds) * int64(c.Match.TickRate)
}

func (c *GameConfig) Validate() error {
	if err := c.DomainRules().Validate(); err != nil {
		return err
	}
	if c.Match.TickRate < 1 || c.Match.TickRate > 60 {
		return fmt.Errorf("tick rate must be in 1..60, got %d", c.Match.TickRate)
	}
	if c.Match.IdleTimeoutSeconds < 0 {
		return fmt.Errorf("idle timeout must not be negative, got %d", c.Match.IdleTimeoutSeconds)
	}
	if c.Leaderboard.Enabled {
		if c.Leaderboard.ID == "" {
			return fmt.Errorf("leaderboard id is required when the leaderboard is enabled")
		}
		switch c.Leaderboard.SortOrder {
		case "asc", "desc":
		default:
			return fmt.Errorf("unknown leaderboard sort order %q", c.Leaderboard.SortOrder)
		}
		switch c.Leaderboard.Operator {
		case "best", "set", "incr", "decr":
		default:
			return fmt.Errorf("unknown leaderboard operator %q", c.Leaderboard.Operator)
		}
	}
	if c.Receipts.Issuer == "" {
		return fmt.Errorf("receipt issuer is required")
	}
	return nil
}
