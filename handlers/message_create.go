package handlers

import (
	"fmt"
	"log"
	"strings"

	"guardian-bot/bot"
	"guardian-bot/models"

	"github.com/bwmarrin/discordgo"
)

// MessageCreate feeds guild messages into the anti-spam tracker and mutes
// members that cross the spam threshold. It also enforces invite filtering
// for guilds that enabled it.
func MessageCreate(b *bot.Bot) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		// Ignore DMs and anything sent by bots, including ourselves.
		if m.GuildID == "" || m.Author == nil || m.Author.Bot {
			return
		}

		cfg := b.Store.GuildConfig(m.GuildID)
		if cfg.InviteBlock && containsInvite(m.Content) && !isWhitelisted(cfg, m.Author.ID) {
			if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
				log.Printf("Failed to delete invite link message %s: %v", m.ID, err)
			}
		}

		if !b.Tracker.RecordEvent(m.GuildID, m.Author.ID) {
			return
		}

		b.Notifier.SpamDetected(m.GuildID, m.Author.ID)
		go func() {
			if err := b.Executor.Mute(m.GuildID, m.Author.ID, s.State.User.ID, "Auto anti-spam"); err != nil {
				log.Printf("Auto-mute of %s in guild %s failed: %v", m.Author.ID, m.GuildID, err)
				return
			}
			_, err := s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("<@%s> muted for spamming.", m.Author.ID))
			if err != nil {
				log.Printf("Failed to announce auto-mute: %v", err)
			}
		}()
	}
}

func containsInvite(content string) bool {
	lower := strings.ToLower(content)
	return strings.Contains(lower, "discord.gg/") || strings.Contains(lower, "discord.com/invite/")
}

func isWhitelisted(cfg models.GuildConfig, userID string) bool {
	for _, e := range cfg.Whitelist {
		if e.Kind == models.EntryMember && e.ID == userID {
			return true
		}
	}
	return false
}
