package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"scoundrel/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLoaded(t *testing.T) {
	t.Helper()
	reset := func() {
		cfg = nil
		loadErr = nil
		loadOnce = sync.Once{}
	}
	reset()
	t.Cleanup(reset)
}

func TestDefaultMatchesDomainRules(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, domain.DefaultRules(), c.DomainRules())
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
rules:
  starting_life: 15
match:
  idle_timeout_seconds: 60
  tick_rate: 2
leaderboard:
  enabled: false
`))
	require.NoError(t, err)

	assert.Equal(t, 15, c.Rules.StartingLife)
	assert.Equal(t, 20, c.Rules.MaxLife)
	assert.Equal(t, int64(120), c.IdleTimeoutTicks())
	assert.False(t, c.Leaderboard.Enabled)
	assert.Equal(t, "scoundrel", c.Receipts.Issuer)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "starting life above max", yaml: "rules: {starting_life: 30}"},
		{name: "refill not smaller than room", yaml: "rules: {refill_size: 4}"},
		{name: "zero tick rate", yaml: "match: {tick_rate: 0}"},
		{name: "negative idle timeout", yaml: "match: {idle_timeout_seconds: -1}"},
		{name: "unknown operator", yaml: "leaderboard: {operator: max}"},
		{name: "unknown sort order", yaml: "leaderboard: {sort_order: up}"},
		{name: "missing leaderboard id", yaml: "leaderboard: {id: \"\"}"},
		{name: "missing issuer", yaml: "receipts: {issuer: \"\"}"},
		{name: "malformed", yaml: "rules: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsFileOnce(t *testing.T) {
	resetLoaded(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(first, []byte("rules: {starting_life: 12}"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("rules: {starting_life: 5}"), 0o600))

	require.NoError(t, Load(first))
	require.NoError(t, Load(second))
	assert.Equal(t, 12, Get().Rules.StartingLife)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	resetLoaded(t)

	err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Equal(t, Default(), Get())
}

func TestShippedConfigIsValid(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "scoundrel.yaml"))
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRules(), c.DomainRules())
}
