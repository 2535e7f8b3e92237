package moderation

import (
	"errors"
	"fmt"

	"guardian-bot/models"
)

// ErrValidation is returned for requests rejected before any side effect.
var ErrValidation = errors.New("validation error")

// Member is the minimal member view the core needs from the platform.
type Member struct {
	ID       string
	Username string
	Bot      bool
}

// Actuator performs the platform-level mutations behind moderation actions.
// Every call is a potentially slow, fallible network operation.
type Actuator interface {
	// ApplyRestriction puts the subject under the restriction for kind
	// (the muted or jailed role), creating the backing role on first use.
	ApplyRestriction(guildID, subjectID string, kind models.ActionKind, reason string) error
	// RemoveRestriction lifts the restriction for kind from the subject.
	RemoveRestriction(guildID, subjectID string, kind models.ActionKind) error
	Ban(guildID, subjectID, reason string) error
	Unban(guildID, subjectID string) error
	// EnsureRole returns the ID of the named role, creating it with the
	// given permission bits if it does not exist. Never duplicates.
	EnsureRole(guildID, name string, permissions int64) (string, error)
	ResolveMember(guildID, subjectID string) (*Member, error)
}

// ActuatorError wraps a failed platform call with enough context for the
// caller to report it.
type ActuatorError struct {
	Op        string
	GuildID   string
	SubjectID string
	Err       error
}

func (e *ActuatorError) Error() string {
	return fmt.Sprintf("%s failed for %s in guild %s: %v", e.Op, e.SubjectID, e.GuildID, e.Err)
}

func (e *ActuatorError) Unwrap() error { return e.Err }

func actuatorErr(op, guildID, subjectID string, err error) error {
	return &ActuatorError{Op: op, GuildID: guildID, SubjectID: subjectID, Err: err}
}
