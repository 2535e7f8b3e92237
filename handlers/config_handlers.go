package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"guardian-bot/antispam"
	"guardian-bot/bot"
	"guardian-bot/database"
	"guardian-bot/models"

	"github.com/bwmarrin/discordgo"
)

// HandleWarn handles the /warn command.
func HandleWarn(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)
	reason := stringValue(opts, "reason", "No reason")

	w := models.Warning{
		IssuerID: i.Member.User.ID,
		Reason:   reason,
		IssuedAt: time.Now(),
	}
	if err := b.Store.AddWarning(i.GuildID, member.ID, w); err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to warn: %v", err))
		return
	}
	b.Notifier.ActionApplied(i.GuildID, "warn", member.ID, i.Member.User.ID, reason)
	respondEphemeral(s, i, fmt.Sprintf("Warned <@%s> - %s", member.ID, reason))
}

// HandleWarnings handles the /warnings command.
func HandleWarnings(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)

	warns := b.Store.Warnings(i.GuildID, member.ID)
	if len(warns) == 0 {
		respondEphemeral(s, i, fmt.Sprintf("No warnings for <@%s>", member.ID))
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Warnings for <@%s>:\n", member.ID)
	for n, w := range warns {
		fmt.Fprintf(&sb, "%d. By <@%s> - %s\n", n+1, w.IssuerID, w.Reason)
	}
	respondEphemeral(s, i, sb.String())
}

// HandleClearWarns handles the /clearwarns command.
func HandleClearWarns(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)

	if err := b.Store.ClearWarnings(i.GuildID, member.ID); err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to clear warnings: %v", err))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Cleared warnings for <@%s>", member.ID))
}

// HandleTag handles the /tag command.
func HandleTag(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)
	note := stringValue(opts, "note", "")

	if err := b.Store.PutTag(i.GuildID, member.ID, models.Tag{Note: note}); err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to tag: %v", err))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Tagged <@%s> with note.", member.ID))
}

// HandleGetTag handles the /gettag command.
func HandleGetTag(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)

	tag, ok := b.Store.Tag(i.GuildID, member.ID)
	if !ok {
		respondEphemeral(s, i, "No note.")
		return
	}
	respondEphemeral(s, i, tag.Note)
}

// HandleAntispam handles the /antispam command.
func HandleAntispam(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	threshold := int(opts["threshold"].IntValue())
	window := int(opts["window"].IntValue())

	if err := b.Tracker.Configure(i.GuildID, threshold, window); err != nil {
		if errors.Is(err, antispam.ErrValidation) {
			respondEphemeral(s, i, "Threshold and window must both be positive.")
			return
		}
		respondEphemeral(s, i, fmt.Sprintf("Failed to configure anti-spam: %v", err))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Anti-spam set: %d msgs / %ds", threshold, window))
}

// HandleSetModRole handles the /setmodrole command.
func HandleSetModRole(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	role := opts["role"].RoleValue(s, i.GuildID)

	err := b.Store.UpdateGuildConfig(i.GuildID, func(cfg *models.GuildConfig) {
		cfg.ModRoleID = role.ID
	})
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to set mod role: %v", err))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Set mod role to %s", role.Name))
}

// HandleSetLog handles the /setlog command.
func HandleSetLog(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	channel := opts["channel"].ChannelValue(s)

	err := b.Store.UpdateGuildConfig(i.GuildID, func(cfg *models.GuildConfig) {
		cfg.LogChannelID = channel.ID
	})
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to set log channel: %v", err))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Log channel set to <#%s>", channel.ID))
}

// HandleSetWelcome handles the /setwelcome command.
func HandleSetWelcome(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	channel := opts["channel"].ChannelValue(s)

	err := b.Store.UpdateGuildConfig(i.GuildID, func(cfg *models.GuildConfig) {
		cfg.WelcomeChannelID = channel.ID
	})
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to set welcome channel: %v", err))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Welcome channel set to <#%s>", channel.ID))
}

// HandleInviteBlock handles the /inviteblock command.
func HandleInviteBlock(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	toggle := parseToggle(stringValue(opts, "toggle", "on"))

	err := b.Store.UpdateGuildConfig(i.GuildID, func(cfg *models.GuildConfig) {
		cfg.InviteBlock = toggle
	})
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to set invite filtering: %v", err))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Invite link filtering set to %v", toggle))
}

// HandleAntiRaid handles the /antiraid command.
func HandleAntiRaid(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	toggle := parseToggle(stringValue(opts, "toggle", "on"))

	err := b.Store.UpdateGuildConfig(i.GuildID, func(cfg *models.GuildConfig) {
		cfg.AntiRaid = toggle
	})
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to set anti-raid mode: %v", err))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Anti-raid: %v", toggle))
}

// HandleSafeMode handles the /safemode command.
func HandleSafeMode(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	toggle := parseToggle(stringValue(opts, "toggle", "on"))

	err := b.Store.UpdateGuildConfig(i.GuildID, func(cfg *models.GuildConfig) {
		cfg.SafeMode = toggle
	})
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to set safe mode: %v", err))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Safe mode: %v", toggle))
}

// HandleWhitelist handles the /whitelist command.
func HandleWhitelist(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	addListEntry(b, s, i, true)
}

// HandleBlacklist handles the /blacklist command.
func HandleBlacklist(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	addListEntry(b, s, i, false)
}

func addListEntry(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, white bool) {
	opts := optionMap(i)
	entry := models.ListEntry{
		Kind: models.ListEntryKind(stringValue(opts, "entity", "")),
		ID:   stringValue(opts, "id", ""),
	}
	if err := entry.Validate(); err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Invalid entry: %v", err))
		return
	}

	name := "blacklist"
	err := b.Store.UpdateGuildConfig(i.GuildID, func(cfg *models.GuildConfig) {
		if white {
			name = "whitelist"
			cfg.Whitelist = appendListEntry(cfg.Whitelist, entry)
		} else {
			cfg.Blacklist = appendListEntry(cfg.Blacklist, entry)
		}
	})
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to update %s: %v", name, err))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Added %s:%s to the %s", entry.Kind, entry.ID, name))
}

func appendListEntry(list []models.ListEntry, entry models.ListEntry) []models.ListEntry {
	for _, e := range list {
		if e == entry {
			return list
		}
	}
	return append(list, entry)
}

// HandleBackup handles the /backup command, snapshotting the guild's roles
// and channels into the store.
func HandleBackup(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	deferEphemeral(s, i)

	guild, err := s.Guild(i.GuildID)
	if err != nil {
		followup(s, i, fmt.Sprintf("Failed to read guild: %v", err))
		return
	}
	channels, err := s.GuildChannels(i.GuildID)
	if err != nil {
		followup(s, i, fmt.Sprintf("Failed to read channels: %v", err))
		return
	}

	backup := models.Backup{
		GuildName:  guild.Name,
		CapturedAt: time.Now(),
	}
	for _, r := range guild.Roles {
		backup.Roles = append(backup.Roles, models.BackupRole{Name: r.Name, Perms: r.Permissions})
	}
	for _, ch := range channels {
		backup.Channels = append(backup.Channels, models.BackupChannel{Name: ch.Name, Type: channelTypeName(ch.Type)})
	}

	if err := b.Store.PutBackup(i.GuildID, backup); err != nil {
		followup(s, i, fmt.Sprintf("Failed to save backup: %v", err))
		return
	}
	followup(s, i, "Backup saved.")
}

// HandleAudit handles the /audit command, listing recent moderation actions
// from the audit trail.
func HandleAudit(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	limit := 10
	if opt, ok := opts["limit"]; ok {
		limit = int(opt.IntValue())
	}

	entries, err := database.RecentActions(b.AuditDB, i.GuildID, limit)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Failed to fetch audit entries: %v", err))
		return
	}
	if len(entries) == 0 {
		respondEphemeral(s, i, "No audit entries.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Recent moderation actions:\n")
	for _, e := range entries {
		issuer := e.IssuerID
		if issuer == "" {
			issuer = "system"
		}
		fmt.Fprintf(&sb, "%s %s -> <@%s> (%s) at %s\n",
			issuer, e.Action, e.SubjectID, e.Reason, e.CreatedAt.Format(time.RFC3339))
	}
	respondEphemeral(s, i, sb.String())
}

func parseToggle(v string) bool {
	switch strings.ToLower(v) {
	case "on", "1", "true", "yes":
		return true
	}
	return false
}

func channelTypeName(t discordgo.ChannelType) string {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return "text"
	case discordgo.ChannelTypeGuildVoice:
		return "voice"
	case discordgo.ChannelTypeGuildCategory:
		return "category"
	case discordgo.ChannelTypeGuildForum:
		return "forum"
	default:
		return fmt.Sprintf("type-%d", t)
	}
}
