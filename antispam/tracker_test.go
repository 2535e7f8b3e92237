package antispam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian-bot/models"
)

type memConfig struct {
	cfgs map[string]models.GuildConfig
}

func newMemConfig() *memConfig {
	return &memConfig{cfgs: make(map[string]models.GuildConfig)}
}

func (m *memConfig) GuildConfig(guildID string) models.GuildConfig {
	cfg := m.cfgs[guildID]
	if cfg.SpamThreshold <= 0 {
		cfg.SpamThreshold = 6
	}
	if cfg.SpamWindowSeconds <= 0 {
		cfg.SpamWindowSeconds = 8
	}
	return cfg
}

func (m *memConfig) UpdateGuildConfig(guildID string, fn func(*models.GuildConfig)) error {
	cfg := m.cfgs[guildID]
	fn(&cfg)
	m.cfgs[guildID] = cfg
	return nil
}

func newTestTracker(cfg ConfigStore) (*Tracker, *time.Time) {
	t := NewTracker(cfg)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	t.now = func() time.Time { return *clock }
	return t, clock
}

func TestTrackerThresholdCrossing(t *testing.T) {
	assert := assert.New(t)
	cfg := newMemConfig()
	require.NoError(t, cfg.UpdateGuildConfig("g1", func(c *models.GuildConfig) {
		c.SpamThreshold = 3
		c.SpamWindowSeconds = 5
	}))
	tracker, clock := newTestTracker(cfg)

	// Events at t=0, 1, 2: the third crosses the threshold.
	assert.False(tracker.RecordEvent("g1", "42"))
	*clock = clock.Add(time.Second)
	assert.False(tracker.RecordEvent("g1", "42"))
	*clock = clock.Add(time.Second)
	assert.True(tracker.RecordEvent("g1", "42"))

	// The window resets after signaling, so the next event starts fresh.
	*clock = clock.Add(100 * time.Millisecond)
	assert.False(tracker.RecordEvent("g1", "42"))
}

func TestTrackerSpacedEventsNeverExceed(t *testing.T) {
	cfg := newMemConfig()
	require.NoError(t, cfg.UpdateGuildConfig("g1", func(c *models.GuildConfig) {
		c.SpamThreshold = 2
		c.SpamWindowSeconds = 5
	}))
	tracker, clock := newTestTracker(cfg)

	for i := 0; i < 20; i++ {
		assert.False(t, tracker.RecordEvent("g1", "42"))
		*clock = clock.Add(6 * time.Second)
	}
}

func TestTrackerActorsIndependent(t *testing.T) {
	assert := assert.New(t)
	cfg := newMemConfig()
	require.NoError(t, cfg.UpdateGuildConfig("g1", func(c *models.GuildConfig) {
		c.SpamThreshold = 2
		c.SpamWindowSeconds = 5
	}))
	tracker, _ := newTestTracker(cfg)

	assert.False(tracker.RecordEvent("g1", "42"))
	assert.False(tracker.RecordEvent("g1", "43"))
	assert.True(tracker.RecordEvent("g1", "42"))
	assert.True(tracker.RecordEvent("g1", "43"))
}

func TestTrackerSweepEvictsStaleState(t *testing.T) {
	assert := assert.New(t)
	cfg := newMemConfig()
	tracker, clock := newTestTracker(cfg)

	tracker.RecordEvent("g1", "42")
	tracker.RecordEvent("g1", "43")
	assert.Equal(2, tracker.TrackedActors("g1"))

	// Everything has expired by the time the sweep runs.
	*clock = clock.Add(time.Minute)
	tracker.Sweep()
	assert.Equal(0, tracker.TrackedActors("g1"))

	// Sweep is idempotent: a second run with no new events changes nothing.
	tracker.Sweep()
	assert.Equal(0, tracker.TrackedActors("g1"))
}

func TestTrackerSweepKeepsLiveEntries(t *testing.T) {
	cfg := newMemConfig()
	tracker, clock := newTestTracker(cfg)

	tracker.RecordEvent("g1", "42")
	*clock = clock.Add(time.Second)
	tracker.Sweep()
	assert.Equal(t, 1, tracker.TrackedActors("g1"))
}

func TestTrackerConfigure(t *testing.T) {
	assert := assert.New(t)
	cfg := newMemConfig()
	tracker, _ := newTestTracker(cfg)

	assert.ErrorIs(tracker.Configure("g1", 0, 8), ErrValidation)
	assert.ErrorIs(tracker.Configure("g1", 6, -1), ErrValidation)

	assert.NoError(tracker.Configure("g1", 2, 10))
	got := cfg.GuildConfig("g1")
	assert.Equal(2, got.SpamThreshold)
	assert.Equal(10, got.SpamWindowSeconds)

	// Effective immediately for subsequent events.
	assert.False(tracker.RecordEvent("g1", "42"))
	assert.True(tracker.RecordEvent("g1", "42"))
}
