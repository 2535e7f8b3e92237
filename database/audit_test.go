package database

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestAuditDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitAuditDB(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAuditRecordAndRecent(t *testing.T) {
	assert := assert.New(t)
	db := openTestAuditDB(t)

	require.NoError(t, RecordAction(db, "1", "42", "10", "mute", "flood"))
	require.NoError(t, RecordAction(db, "1", "42", "", "unmute", ""))
	require.NoError(t, RecordAction(db, "2", "99", "10", "ban", "spam"))

	entries, err := RecentActions(db, "1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first, and only this guild's entries.
	assert.Equal("unmute", entries[0].Action)
	assert.Equal("mute", entries[1].Action)
	assert.Equal("42", entries[0].SubjectID)
	assert.Equal("", entries[0].IssuerID)
	assert.Equal("flood", entries[1].Reason)
	assert.False(entries[1].CreatedAt.IsZero())
}

func TestAuditRecentEmptyGuild(t *testing.T) {
	db := openTestAuditDB(t)
	entries, err := RecentActions(db, "nope", 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAuditRecentLimitClamped(t *testing.T) {
	db := openTestAuditDB(t)
	for i := 0; i < 30; i++ {
		require.NoError(t, RecordAction(db, "1", fmt.Sprintf("%d", i), "10", "warn", ""))
	}

	entries, err := RecentActions(db, "1", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 25)

	entries, err = RecentActions(db, "1", 100)
	require.NoError(t, err)
	assert.Len(t, entries, 25)

	entries, err = RecentActions(db, "1", 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "29", entries[0].SubjectID)
}
