package moderation

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian-bot/database"
	"guardian-bot/models"
)

type mockActuator struct {
	applied  map[string]int
	removed  map[string]int
	bans     int
	unbans   int
	failWith error
}

func newMockActuator() *mockActuator {
	return &mockActuator{applied: map[string]int{}, removed: map[string]int{}}
}

func (m *mockActuator) ApplyRestriction(guildID, subjectID string, kind models.ActionKind, reason string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.applied[string(kind)]++
	return nil
}

func (m *mockActuator) RemoveRestriction(guildID, subjectID string, kind models.ActionKind) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.removed[string(kind)]++
	return nil
}

func (m *mockActuator) Ban(guildID, subjectID, reason string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.bans++
	return nil
}

func (m *mockActuator) Unban(guildID, subjectID string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.unbans++
	return nil
}

func (m *mockActuator) EnsureRole(guildID, name string, permissions int64) (string, error) {
	return "role-id", nil
}

func (m *mockActuator) ResolveMember(guildID, subjectID string) (*Member, error) {
	return &Member{ID: subjectID}, nil
}

type recordingNotifier struct {
	applied  []string
	reversed []string
	auto     []bool
}

func (n *recordingNotifier) ActionApplied(guildID, kind, subjectID, issuerID, reason string) {
	n.applied = append(n.applied, kind)
}

func (n *recordingNotifier) ActionReversed(guildID, kind, subjectID string, automatic bool) {
	n.reversed = append(n.reversed, kind)
	n.auto = append(n.auto, automatic)
}

func (n *recordingNotifier) SpamDetected(guildID, actorID string) {}

func newTestExecutor(t *testing.T) (*Executor, *mockActuator, *database.Store, *recordingNotifier) {
	t.Helper()
	store, err := database.Open(filepath.Join(t.TempDir(), "data.json"), 6, 8)
	require.NoError(t, err)
	act := newMockActuator()
	n := &recordingNotifier{}
	return NewExecutor(act, store, nil, n), act, store, n
}

func TestExecutorMuteUnmute(t *testing.T) {
	assert := assert.New(t)
	ex, act, _, n := newTestExecutor(t)

	require.NoError(t, ex.Mute("1", "42", "10", "flood"))
	assert.Equal(1, act.applied["mute"])
	assert.Equal([]string{"mute"}, n.applied)

	require.NoError(t, ex.Unmute("1", "42", true))
	assert.Equal(1, act.removed["mute"])
	assert.Equal([]string{"mute"}, n.reversed)
	assert.Equal([]bool{true}, n.auto)
}

func TestExecutorJailWritesRecord(t *testing.T) {
	assert := assert.New(t)
	ex, act, store, _ := newTestExecutor(t)

	require.NoError(t, ex.Jail("1", "42", "10", "evading"))
	assert.Equal(1, act.applied["jail"])
	rec, ok := store.Jail("1", "42")
	require.True(t, ok)
	assert.False(rec.JailedAt.IsZero())

	require.NoError(t, ex.Unjail("1", "42", false))
	assert.Equal(1, act.removed["jail"])
	_, ok = store.Jail("1", "42")
	assert.False(ok)
}

func TestExecutorBanUnban(t *testing.T) {
	ex, act, _, n := newTestExecutor(t)

	require.NoError(t, ex.Ban("1", "42", "10", "spam"))
	require.NoError(t, ex.Unban("1", "42", true))
	assert.Equal(t, 1, act.bans)
	assert.Equal(t, 1, act.unbans)
	assert.Equal(t, []string{"ban"}, n.applied)
	assert.Equal(t, []string{"ban"}, n.reversed)
}

func TestExecutorActuatorFailurePropagates(t *testing.T) {
	assert := assert.New(t)
	ex, act, store, n := newTestExecutor(t)
	act.failWith = &ActuatorError{Op: "role add", GuildID: "1", SubjectID: "42", Err: errors.New("missing permissions")}

	err := ex.Jail("1", "42", "10", "")
	var actErr *ActuatorError
	assert.ErrorAs(err, &actErr)
	assert.Equal("role add", actErr.Op)

	// Nothing was recorded or announced.
	_, ok := store.Jail("1", "42")
	assert.False(ok)
	assert.Empty(n.applied)

	assert.Error(ex.Mute("1", "42", "10", ""))
	assert.Error(ex.Ban("1", "42", "10", ""))
	assert.Error(ex.Unban("1", "42", false))
	assert.Empty(n.reversed)
}
