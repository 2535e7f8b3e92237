package handlers

import (
	"errors"
	"fmt"
	"time"

	"guardian-bot/bot"
	"guardian-bot/models"
	"guardian-bot/moderation"

	"github.com/bwmarrin/discordgo"
)

// HandlePing handles the logic for the /ping command.
func HandlePing(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEphemeral(s, i, fmt.Sprintf("Pong! %dms", s.HeartbeatLatency().Milliseconds()))
}

// HandleBan handles the /ban command.
func HandleBan(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)
	reason := stringValue(opts, "reason", "No reason")

	deferEphemeral(s, i)
	if err := b.Executor.Ban(i.GuildID, member.ID, i.Member.User.ID, reason); err != nil {
		followup(s, i, fmt.Sprintf("Failed to ban: %v", err))
		return
	}
	followup(s, i, fmt.Sprintf("Banned <@%s> - %s", member.ID, reason))
}

// HandleTempBan handles the /tempban command.
func HandleTempBan(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	scheduleTempAction(b, s, i, models.ActionBan,
		func(guildID, subjectID, reason string) error {
			return b.Executor.Ban(guildID, subjectID, i.Member.User.ID, reason)
		},
		b.Executor.Unban)
}

// HandleUnban handles the /unban command. A pending tempban is cancelled
// (which unbans); otherwise the ban is lifted directly.
func HandleUnban(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	userID := stringValue(opts, "user_id", "")

	deferEphemeral(s, i)
	if b.Scheduler.Pending(i.GuildID, userID, models.ActionBan) {
		if err := b.Scheduler.Cancel(i.GuildID, userID, models.ActionBan); err != nil {
			followup(s, i, fmt.Sprintf("Failed to unban: %v", err))
			return
		}
	} else if err := b.Executor.Unban(i.GuildID, userID, false); err != nil {
		followup(s, i, fmt.Sprintf("Failed to unban: %v", err))
		return
	}
	followup(s, i, fmt.Sprintf("Unbanned %s", userID))
}

// HandleKick handles the /kick command.
func HandleKick(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)
	reason := stringValue(opts, "reason", "No reason")

	deferEphemeral(s, i)
	if err := s.GuildMemberDeleteWithReason(i.GuildID, member.ID, reason); err != nil {
		followup(s, i, fmt.Sprintf("Failed to kick: %v", err))
		return
	}
	followup(s, i, fmt.Sprintf("Kicked <@%s> - %s", member.ID, reason))
}

// HandleSoftban handles the /softban command: ban then unban to purge the
// member's recent messages.
func HandleSoftban(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)
	reason := stringValue(opts, "reason", "No reason")

	deferEphemeral(s, i)
	if err := b.Executor.Ban(i.GuildID, member.ID, i.Member.User.ID, reason); err != nil {
		followup(s, i, fmt.Sprintf("Failed to softban: %v", err))
		return
	}
	if err := b.Executor.Unban(i.GuildID, member.ID, false); err != nil {
		followup(s, i, fmt.Sprintf("Banned but failed to unban: %v", err))
		return
	}
	followup(s, i, fmt.Sprintf("Softbanned <@%s>", member.ID))
}

// HandleMute handles the /mute command.
func HandleMute(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)
	reason := stringValue(opts, "reason", "No reason")

	deferEphemeral(s, i)
	if err := b.Executor.Mute(i.GuildID, member.ID, i.Member.User.ID, reason); err != nil {
		followup(s, i, fmt.Sprintf("Failed to mute: %v", err))
		return
	}
	followup(s, i, fmt.Sprintf("Muted <@%s>", member.ID))
}

// HandleUnmute handles the /unmute command, cancelling any pending tempmute.
func HandleUnmute(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)

	deferEphemeral(s, i)
	if b.Scheduler.Pending(i.GuildID, member.ID, models.ActionMute) {
		if err := b.Scheduler.Cancel(i.GuildID, member.ID, models.ActionMute); err != nil {
			followup(s, i, fmt.Sprintf("Failed to unmute: %v", err))
			return
		}
	} else if err := b.Executor.Unmute(i.GuildID, member.ID, false); err != nil {
		followup(s, i, fmt.Sprintf("Failed to unmute: %v", err))
		return
	}
	followup(s, i, fmt.Sprintf("Unmuted <@%s>", member.ID))
}

// HandleTempMute handles the /tempmute command.
func HandleTempMute(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	scheduleTempAction(b, s, i, models.ActionMute,
		func(guildID, subjectID, reason string) error {
			return b.Executor.Mute(guildID, subjectID, i.Member.User.ID, reason)
		},
		b.Executor.Unmute)
}

// HandleJail handles the /jail command.
func HandleJail(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)
	reason := stringValue(opts, "reason", "No reason")

	deferEphemeral(s, i)
	if err := b.Executor.Jail(i.GuildID, member.ID, i.Member.User.ID, reason); err != nil {
		followup(s, i, fmt.Sprintf("Failed to jail: %v", err))
		return
	}
	followup(s, i, fmt.Sprintf("Jailed <@%s>", member.ID))
}

// HandleUnjail handles the /unjail command, cancelling any pending tempjail.
func HandleUnjail(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)

	deferEphemeral(s, i)
	if b.Scheduler.Pending(i.GuildID, member.ID, models.ActionJail) {
		if err := b.Scheduler.Cancel(i.GuildID, member.ID, models.ActionJail); err != nil {
			followup(s, i, fmt.Sprintf("Failed to unjail: %v", err))
			return
		}
	} else if err := b.Executor.Unjail(i.GuildID, member.ID, false); err != nil {
		followup(s, i, fmt.Sprintf("Failed to unjail: %v", err))
		return
	}
	followup(s, i, fmt.Sprintf("Unjailed <@%s>", member.ID))
}

// HandleTempJail handles the /tempjail command.
func HandleTempJail(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	scheduleTempAction(b, s, i, models.ActionJail,
		func(guildID, subjectID, reason string) error {
			return b.Executor.Jail(guildID, subjectID, i.Member.User.ID, reason)
		},
		b.Executor.Unjail)
}

// scheduleTempAction is the shared body of the tempban/tempmute/tempjail
// commands: validate the duration, apply the action, and arm its reversal.
func scheduleTempAction(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, kind models.ActionKind, apply moderation.ApplyFunc, reverse moderation.ReverseFunc) {
	opts := optionMap(i)
	member := opts["member"].UserValue(s)
	seconds := opts["duration"].IntValue()
	reason := stringValue(opts, "reason", "No reason")

	deferEphemeral(s, i)
	_, err := b.Scheduler.Schedule(i.GuildID, member.ID, kind, i.Member.User.ID, reason,
		time.Duration(seconds)*time.Second, apply, reverse)
	if err != nil {
		if errors.Is(err, moderation.ErrValidation) {
			followup(s, i, "Duration must be a positive number of seconds.")
			return
		}
		followup(s, i, fmt.Sprintf("Failed to %s: %v", kind, err))
		return
	}
	followup(s, i, fmt.Sprintf("Applied temporary %s to <@%s> for %ds", kind, member.ID, seconds))
}
