package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian-bot/models"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "security_data.json")
	s, err := Open(path, 6, 8)
	require.NoError(t, err)
	return s, path
}

func TestStoreRoundTrip(t *testing.T) {
	assert := assert.New(t)
	s, path := openTestStore(t)

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	warn := models.Warning{IssuerID: "10", Reason: "spam", IssuedAt: issued}
	assert.NoError(s.AddWarning("g1", "42", warn))

	ta := models.TempAction{
		GuildID:    "g1",
		SubjectID:  "42",
		Kind:       models.ActionMute,
		IssuerID:   "10",
		Reason:     "flood",
		StartedAt:  issued,
		Duration:   600,
		ReversesAt: issued.Add(10 * time.Minute),
	}
	assert.NoError(s.PutTempAction(ta))
	assert.NoError(s.PutJail("g1", "42", models.JailRecord{JailedAt: issued}))
	assert.NoError(s.PutTag("g1", "42", models.Tag{Note: "repeat offender"}))
	assert.NoError(s.PutGuildConfig("g1", models.GuildConfig{
		ModRoleID:     "900",
		LogChannelID:  "901",
		SpamThreshold: 3,
		Whitelist:     []models.ListEntry{{Kind: models.EntryMember, ID: "42"}},
	}))
	assert.NoError(s.PutBackup("g1", models.Backup{
		GuildName:  "Test Guild",
		CapturedAt: issued,
		Roles:      []models.BackupRole{{Name: "Muted", Perms: 0}},
		Channels:   []models.BackupChannel{{Name: "general", Type: "text"}},
	}))

	// Simulate a restart: reload from the file.
	reloaded, err := Open(path, 6, 8)
	require.NoError(t, err)

	warns := reloaded.Warnings("g1", "42")
	require.Len(t, warns, 1)
	assert.Equal("spam", warns[0].Reason)
	assert.True(issued.Equal(warns[0].IssuedAt))

	got, ok := reloaded.TempAction("g1", "42", models.ActionMute)
	require.True(t, ok)
	assert.Equal(ta.Reason, got.Reason)
	assert.True(ta.ReversesAt.Equal(got.ReversesAt))

	jail, ok := reloaded.Jail("g1", "42")
	require.True(t, ok)
	assert.True(issued.Equal(jail.JailedAt))

	tag, ok := reloaded.Tag("g1", "42")
	require.True(t, ok)
	assert.Equal("repeat offender", tag.Note)

	cfg := reloaded.GuildConfig("g1")
	assert.Equal("900", cfg.ModRoleID)
	assert.Equal(3, cfg.SpamThreshold)
	assert.Equal([]models.ListEntry{{Kind: models.EntryMember, ID: "42"}}, cfg.Whitelist)

	backup, ok := reloaded.Backup("g1")
	require.True(t, ok)
	assert.Equal("Test Guild", backup.GuildName)
	assert.Len(backup.Channels, 1)
}

func TestStoreCorruptFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "security_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Open(path, 6, 8)
	assert.Error(t, err)
}

func TestStoreMissingFileStartsEmpty(t *testing.T) {
	s, path := openTestStore(t)
	assert.Empty(t, s.Warnings("g1", "42"))
	assert.Empty(t, s.TempActions())

	// The empty document is written immediately so the next start finds it.
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStoreDeleteTempAction(t *testing.T) {
	assert := assert.New(t)
	s, _ := openTestStore(t)

	ta := models.TempAction{GuildID: "g1", SubjectID: "42", Kind: models.ActionBan}
	assert.NoError(s.PutTempAction(ta))
	assert.NoError(s.DeleteTempAction("g1", "42", models.ActionBan))

	_, ok := s.TempAction("g1", "42", models.ActionBan)
	assert.False(ok)
	assert.Empty(s.TempActions())

	// Deleting again is a no-op, not an error.
	assert.NoError(s.DeleteTempAction("g1", "42", models.ActionBan))
}

func TestStorePutTempActionReplaces(t *testing.T) {
	s, _ := openTestStore(t)

	first := models.TempAction{GuildID: "g1", SubjectID: "42", Kind: models.ActionMute, Reason: "first"}
	second := models.TempAction{GuildID: "g1", SubjectID: "42", Kind: models.ActionMute, Reason: "second"}
	require.NoError(t, s.PutTempAction(first))
	require.NoError(t, s.PutTempAction(second))

	all := s.TempActions()
	require.Len(t, all, 1)
	assert.Equal(t, "second", all[0].Reason)
}

func TestStoreGuildConfigDefaults(t *testing.T) {
	assert := assert.New(t)
	s, _ := openTestStore(t)

	cfg := s.GuildConfig("unknown")
	assert.Equal(6, cfg.SpamThreshold)
	assert.Equal(8, cfg.SpamWindowSeconds)

	require.NoError(t, s.UpdateGuildConfig("g1", func(c *models.GuildConfig) {
		c.SpamThreshold = 3
	}))
	cfg = s.GuildConfig("g1")
	assert.Equal(3, cfg.SpamThreshold)
	// The window was never overridden, so the default still applies.
	assert.Equal(8, cfg.SpamWindowSeconds)
}

func TestStoreGuildConfigToggles(t *testing.T) {
	assert := assert.New(t)
	s, path := openTestStore(t)

	require.NoError(t, s.UpdateGuildConfig("g1", func(c *models.GuildConfig) {
		c.InviteBlock = true
		c.AntiRaid = true
		c.SafeMode = true
	}))

	reloaded, err := Open(path, 6, 8)
	require.NoError(t, err)
	cfg := reloaded.GuildConfig("g1")
	assert.True(cfg.InviteBlock)
	assert.True(cfg.AntiRaid)
	assert.True(cfg.SafeMode)

	require.NoError(t, reloaded.UpdateGuildConfig("g1", func(c *models.GuildConfig) {
		c.AntiRaid = false
	}))
	cfg = reloaded.GuildConfig("g1")
	assert.False(cfg.AntiRaid)
	assert.True(cfg.SafeMode)
}

func TestStoreClearWarnings(t *testing.T) {
	s, _ := openTestStore(t)

	require.NoError(t, s.AddWarning("g1", "42", models.Warning{Reason: "one"}))
	require.NoError(t, s.AddWarning("g1", "42", models.Warning{Reason: "two"}))
	require.Len(t, s.Warnings("g1", "42"), 2)

	require.NoError(t, s.ClearWarnings("g1", "42"))
	assert.Empty(t, s.Warnings("g1", "42"))
}
