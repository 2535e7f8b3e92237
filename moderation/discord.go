package moderation

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"guardian-bot/models"
)

const (
	mutedRoleName  = "Muted"
	jailedRoleName = "Jailed"

	restrictedPerms = discordgo.PermissionSendMessages | discordgo.PermissionVoiceSpeak
)

// SessionActuator implements Actuator on top of a Discord session.
type SessionActuator struct {
	session *discordgo.Session
}

// NewSessionActuator wraps a Discord session.
func NewSessionActuator(s *discordgo.Session) *SessionActuator {
	return &SessionActuator{session: s}
}

func roleForKind(kind models.ActionKind) (string, error) {
	switch kind {
	case models.ActionMute:
		return mutedRoleName, nil
	case models.ActionJail:
		return jailedRoleName, nil
	}
	return "", fmt.Errorf("no restriction role for action kind %q", kind)
}

// ApplyRestriction assigns the restriction role for kind, creating it first
// if the guild does not have one yet.
func (a *SessionActuator) ApplyRestriction(guildID, subjectID string, kind models.ActionKind, reason string) error {
	name, err := roleForKind(kind)
	if err != nil {
		return actuatorErr("apply restriction", guildID, subjectID, err)
	}
	roleID, err := a.EnsureRole(guildID, name, 0)
	if err != nil {
		return err
	}
	if err := a.session.GuildMemberRoleAdd(guildID, subjectID, roleID); err != nil {
		return actuatorErr(string(kind), guildID, subjectID, err)
	}
	return nil
}

// RemoveRestriction removes the restriction role for kind. A guild that
// never created the role has nothing to remove.
func (a *SessionActuator) RemoveRestriction(guildID, subjectID string, kind models.ActionKind) error {
	name, err := roleForKind(kind)
	if err != nil {
		return actuatorErr("remove restriction", guildID, subjectID, err)
	}
	roleID, err := a.findRole(guildID, name)
	if err != nil {
		return actuatorErr("un"+string(kind), guildID, subjectID, err)
	}
	if roleID == "" {
		return nil
	}
	if err := a.session.GuildMemberRoleRemove(guildID, subjectID, roleID); err != nil {
		return actuatorErr("un"+string(kind), guildID, subjectID, err)
	}
	return nil
}

func (a *SessionActuator) Ban(guildID, subjectID, reason string) error {
	if err := a.session.GuildBanCreateWithReason(guildID, subjectID, reason, 0); err != nil {
		return actuatorErr("ban", guildID, subjectID, err)
	}
	return nil
}

func (a *SessionActuator) Unban(guildID, subjectID string) error {
	if err := a.session.GuildBanDelete(guildID, subjectID); err != nil {
		return actuatorErr("unban", guildID, subjectID, err)
	}
	return nil
}

// EnsureRole finds the named role or creates it with send/speak denied in
// its base permissions and across every current channel. Creation only
// happens when the lookup comes back empty, so the role is never duplicated.
func (a *SessionActuator) EnsureRole(guildID, name string, permissions int64) (string, error) {
	roleID, err := a.findRole(guildID, name)
	if err != nil {
		return "", actuatorErr("ensure role", guildID, "", err)
	}
	if roleID != "" {
		return roleID, nil
	}

	perms := permissions
	role, err := a.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:        name,
		Permissions: &perms,
	})
	if err != nil {
		return "", actuatorErr("create role", guildID, "", err)
	}

	channels, err := a.session.GuildChannels(guildID)
	if err != nil {
		return "", actuatorErr("list channels", guildID, "", err)
	}
	for _, ch := range channels {
		err := a.session.ChannelPermissionSet(ch.ID, role.ID, discordgo.PermissionOverwriteTypeRole, 0, restrictedPerms)
		if err != nil {
			// A single uneditable channel should not abort role setup.
			log.Printf("Could not set %s overwrite on channel %s: %v", name, ch.ID, err)
		}
	}
	return role.ID, nil
}

func (a *SessionActuator) findRole(guildID, name string) (string, error) {
	roles, err := a.session.GuildRoles(guildID)
	if err != nil {
		return "", err
	}
	for _, r := range roles {
		if r.Name == name {
			return r.ID, nil
		}
	}
	return "", nil
}

func (a *SessionActuator) ResolveMember(guildID, subjectID string) (*Member, error) {
	m, err := a.session.GuildMember(guildID, subjectID)
	if err != nil {
		return nil, actuatorErr("resolve member", guildID, subjectID, err)
	}
	return &Member{ID: m.User.ID, Username: m.User.Username, Bot: m.User.Bot}, nil
}
