package utils

import (
	"guardian-bot/models"

	"github.com/bwmarrin/discordgo"
)

// IsModerator checks whether the interaction's member may run moderation
// commands: administrator or manage-guild permission, or the guild's
// configured mod role.
func IsModerator(i *discordgo.InteractionCreate, cfg models.GuildConfig) bool {
	if i.Member == nil {
		return false
	}
	if i.Member.Permissions&(discordgo.PermissionAdministrator|discordgo.PermissionManageGuild) != 0 {
		return true
	}
	if cfg.ModRoleID == "" {
		return false
	}
	for _, roleID := range i.Member.Roles {
		if roleID == cfg.ModRoleID {
			return true
		}
	}
	return false
}
