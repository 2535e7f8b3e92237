package models

import "time"

// ActionKind identifies a reversible moderation action.
type ActionKind string

const (
	ActionMute ActionKind = "mute"
	ActionBan  ActionKind = "ban"
	ActionJail ActionKind = "jail"
)

// Valid reports whether k is one of the known action kinds.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionMute, ActionBan, ActionJail:
		return true
	}
	return false
}

// Warning is a single moderator warning issued to a member.
// Warnings are append-only; they are only ever cleared wholesale.
type Warning struct {
	IssuerID string    `json:"issuer_id"`
	Reason   string    `json:"reason"`
	IssuedAt time.Time `json:"issued_at"`
}

// TempAction is a moderation action with a pending automatic reversal.
// At most one exists per (guild, subject, kind).
type TempAction struct {
	GuildID    string     `json:"guild_id"`
	SubjectID  string     `json:"subject_id"`
	Kind       ActionKind `json:"kind"`
	IssuerID   string     `json:"issuer_id"`
	Reason     string     `json:"reason"`
	StartedAt  time.Time  `json:"started_at"`
	Duration   int64      `json:"duration_seconds"`
	ReversesAt time.Time  `json:"reverses_at"`
}

// JailRecord marks a member as jailed, independently of any TempAction,
// so a jail can be indefinite or time-bounded.
type JailRecord struct {
	JailedAt time.Time `json:"jailed_at"`
}

// Tag is a single free-text moderation note for a member; latest write wins.
type Tag struct {
	Note string `json:"note"`
}

// BackupRole is a role snapshot inside a Backup.
type BackupRole struct {
	Name  string `json:"name"`
	Perms int64  `json:"perms"`
}

// BackupChannel is a channel snapshot inside a Backup.
type BackupChannel struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Backup is a point-in-time snapshot of a guild's roles and channels.
// Restore is a manual concern; the bot only writes these.
type Backup struct {
	GuildName  string          `json:"name"`
	CapturedAt time.Time       `json:"captured_at"`
	Roles      []BackupRole    `json:"roles"`
	Channels   []BackupChannel `json:"channels"`
}
