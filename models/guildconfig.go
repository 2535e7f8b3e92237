package models

import "fmt"

// ListEntryKind is the type of an access-list entry.
type ListEntryKind string

const (
	EntryRole   ListEntryKind = "role"
	EntryMember ListEntryKind = "member"
	EntryInvite ListEntryKind = "invite"
)

// ListEntry is a typed whitelist/blacklist entry.
type ListEntry struct {
	Kind ListEntryKind `json:"kind"`
	ID   string        `json:"id"`
}

// Validate checks the entry before it is stored.
func (e ListEntry) Validate() error {
	switch e.Kind {
	case EntryRole, EntryMember, EntryInvite:
	default:
		return fmt.Errorf("unknown list entry kind %q", e.Kind)
	}
	if e.ID == "" {
		return fmt.Errorf("list entry id is empty")
	}
	return nil
}

// GuildConfig holds the per-guild moderation settings. Zero values mean
// "unset"; Store.GuildConfig fills in the global anti-spam defaults.
type GuildConfig struct {
	ModRoleID         string      `json:"mod_role_id,omitempty"`
	WelcomeChannelID  string      `json:"welcome_channel_id,omitempty"`
	LogChannelID      string      `json:"log_channel_id,omitempty"`
	SpamThreshold     int         `json:"spam_threshold,omitempty"`
	SpamWindowSeconds int         `json:"spam_window_seconds,omitempty"`
	InviteBlock       bool        `json:"invite_block,omitempty"`
	AntiRaid          bool        `json:"anti_raid,omitempty"`
	SafeMode          bool        `json:"safe_mode,omitempty"`
	Whitelist         []ListEntry `json:"whitelist,omitempty"`
	Blacklist         []ListEntry `json:"blacklist,omitempty"`
}
