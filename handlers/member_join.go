package handlers

import (
	"fmt"
	"log"

	"guardian-bot/bot"

	"github.com/bwmarrin/discordgo"
)

// GuildMemberAdd greets new members in the guild's configured welcome channel
// and re-applies the jailed role to members who left while jailed.
func GuildMemberAdd(b *bot.Bot) func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	return func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		if m.User == nil || m.User.Bot {
			return
		}

		if _, jailed := b.Store.Jail(m.GuildID, m.User.ID); jailed {
			if err := b.Executor.Jail(m.GuildID, m.User.ID, s.State.User.ID, "Rejoined while jailed"); err != nil {
				log.Printf("Failed to re-jail %s in guild %s: %v", m.User.ID, m.GuildID, err)
			}
		}

		channelID := b.Store.GuildConfig(m.GuildID).WelcomeChannelID
		if channelID == "" {
			return
		}
		_, err := s.ChannelMessageSend(channelID, fmt.Sprintf("Welcome <@%s>!", m.User.ID))
		if err != nil {
			log.Printf("Failed to send welcome message in guild %s: %v", m.GuildID, err)
		}
	}
}
