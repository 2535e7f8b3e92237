// Package antispam tracks per-member message bursts inside a sliding window
// and decides when a member is spamming.
package antispam

import (
	"errors"
	"sync"
	"time"

	"guardian-bot/models"
)

// ErrValidation is returned for threshold/window values that make no sense.
var ErrValidation = errors.New("validation error")

// ConfigStore provides the per-guild anti-spam settings.
type ConfigStore interface {
	GuildConfig(guildID string) models.GuildConfig
	UpdateGuildConfig(guildID string, fn func(*models.GuildConfig)) error
}

// Tracker keeps the recent message timestamps of every active member.
// The index is in-memory only; losing it on restart only resets in-flight
// spam counts, never sanctions already applied.
type Tracker struct {
	mu     sync.Mutex
	guilds map[string]map[string][]time.Time

	config ConfigStore
	now    func() time.Time
}

// NewTracker creates a tracker reading its thresholds from config.
func NewTracker(config ConfigStore) *Tracker {
	return &Tracker{
		guilds: make(map[string]map[string][]time.Time),
		config: config,
		now:    time.Now,
	}
}

// RecordEvent registers one message from a member and reports whether the
// member has crossed the guild's spam threshold. When it returns true the
// member's window is reset, so the same burst does not re-trigger on every
// following message.
func (t *Tracker) RecordEvent(guildID, actorID string) bool {
	cfg := t.config.GuildConfig(guildID)
	window := time.Duration(cfg.SpamWindowSeconds) * time.Second

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	actors := t.guilds[guildID]
	if actors == nil {
		actors = make(map[string][]time.Time)
		t.guilds[guildID] = actors
	}

	stamps := append(actors[actorID], now)
	stamps = pruneBefore(stamps, now.Add(-window))

	if len(stamps) >= cfg.SpamThreshold {
		delete(actors, actorID)
		return true
	}
	actors[actorID] = stamps
	return false
}

// Sweep evicts expired timestamps, members left with none, and guilds left
// with no tracked members. It is safe to run concurrently with RecordEvent
// and is idempotent between events.
func (t *Tracker) Sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for guildID, actors := range t.guilds {
		window := time.Duration(t.config.GuildConfig(guildID).SpamWindowSeconds) * time.Second
		cutoff := now.Add(-window)
		for actorID, stamps := range actors {
			stamps = pruneBefore(stamps, cutoff)
			if len(stamps) == 0 {
				delete(actors, actorID)
				continue
			}
			actors[actorID] = stamps
		}
		if len(actors) == 0 {
			delete(t.guilds, guildID)
		}
	}
}

// Configure sets the guild's spam threshold and window, effective for
// subsequent events. Zero or negative values are rejected.
func (t *Tracker) Configure(guildID string, threshold, windowSeconds int) error {
	if threshold <= 0 || windowSeconds <= 0 {
		return ErrValidation
	}
	return t.config.UpdateGuildConfig(guildID, func(cfg *models.GuildConfig) {
		cfg.SpamThreshold = threshold
		cfg.SpamWindowSeconds = windowSeconds
	})
}

// TrackedActors reports how many members are currently tracked in a guild.
func (t *Tracker) TrackedActors(guildID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.guilds[guildID])
}

func pruneBefore(stamps []time.Time, cutoff time.Time) []time.Time {
	kept := stamps[:0]
	for _, s := range stamps {
		if !s.Before(cutoff) {
			kept = append(kept, s)
		}
	}
	return kept
}
