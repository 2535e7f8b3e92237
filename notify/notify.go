// Package notify renders moderation events to each guild's configured log
// channel.
package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"guardian-bot/models"
)

const (
	ColorApplied  = 0xffff00 // Yellow
	ColorReversed = 0x00ff00 // Green
	ColorSpam     = 0xff0000 // Red
)

// Notifier receives the structured events the moderation core emits.
type Notifier interface {
	ActionApplied(guildID, kind, subjectID, issuerID, reason string)
	ActionReversed(guildID, kind, subjectID string, automatic bool)
	SpamDetected(guildID, actorID string)
}

// ConfigFunc resolves a guild's configuration, used to find its log channel.
type ConfigFunc func(guildID string) models.GuildConfig

// ChannelNotifier sends moderation events as embeds to the guild's log
// channel. Guilds without a configured channel fall back to process logs.
type ChannelNotifier struct {
	session *discordgo.Session
	config  ConfigFunc
}

// NewChannelNotifier creates a notifier over a Discord session.
func NewChannelNotifier(s *discordgo.Session, config ConfigFunc) *ChannelNotifier {
	return &ChannelNotifier{session: s, config: config}
}

func (n *ChannelNotifier) ActionApplied(guildID, kind, subjectID, issuerID, reason string) {
	n.send(guildID, ColorApplied, fmt.Sprintf("Action: %s", kind), []*discordgo.MessageEmbedField{
		{Name: "Subject", Value: mention(subjectID), Inline: true},
		{Name: "Issuer", Value: mention(issuerID), Inline: true},
		{Name: "Reason", Value: orDash(reason)},
	})
}

func (n *ChannelNotifier) ActionReversed(guildID, kind, subjectID string, automatic bool) {
	how := "manual"
	if automatic {
		how = "automatic"
	}
	n.send(guildID, ColorReversed, fmt.Sprintf("Reversed: %s", kind), []*discordgo.MessageEmbedField{
		{Name: "Subject", Value: mention(subjectID), Inline: true},
		{Name: "Trigger", Value: how, Inline: true},
	})
}

func (n *ChannelNotifier) SpamDetected(guildID, actorID string) {
	n.send(guildID, ColorSpam, "Spam detected", []*discordgo.MessageEmbedField{
		{Name: "Member", Value: mention(actorID), Inline: true},
	})
}

func (n *ChannelNotifier) send(guildID string, color int, title string, fields []*discordgo.MessageEmbedField) {
	channelID := n.config(guildID).LogChannelID
	if channelID == "" {
		log.Printf("[MOD] guild %s: %s %v", guildID, title, fieldSummary(fields))
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:     title,
		Color:     color,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields:    fields,
	}
	if _, err := n.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("Error sending log message to channel %s: %v", channelID, err)
	}
}

func fieldSummary(fields []*discordgo.MessageEmbedField) string {
	out := ""
	for _, f := range fields {
		out += fmt.Sprintf("%s=%s ", f.Name, f.Value)
	}
	return out
}

func mention(userID string) string {
	if userID == "" {
		return "-"
	}
	return "<@" + userID + ">"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) ActionApplied(guildID, kind, subjectID, issuerID, reason string) {}
func (NopNotifier) ActionReversed(guildID, kind, subjectID string, automatic bool)  {}
func (NopNotifier) SpamDetected(guildID, actorID string)                            {}
