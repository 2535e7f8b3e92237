package handlers

import (
	"log"

	"guardian-bot/bot"
	"guardian-bot/utils"

	"github.com/bwmarrin/discordgo"
)

type commandHandler func(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate)

// commandHandlers maps command names to their handlers. Everything except
// ping is gated on moderator permissions.
var commandHandlers = map[string]commandHandler{
	"ping":        HandlePing,
	"ban":         HandleBan,
	"tempban":     HandleTempBan,
	"unban":       HandleUnban,
	"kick":        HandleKick,
	"softban":     HandleSoftban,
	"mute":        HandleMute,
	"unmute":      HandleUnmute,
	"tempmute":    HandleTempMute,
	"jail":        HandleJail,
	"unjail":      HandleUnjail,
	"tempjail":    HandleTempJail,
	"warn":        HandleWarn,
	"warnings":    HandleWarnings,
	"clearwarns":  HandleClearWarns,
	"tag":         HandleTag,
	"gettag":      HandleGetTag,
	"antispam":    HandleAntispam,
	"setmodrole":  HandleSetModRole,
	"setlog":      HandleSetLog,
	"setwelcome":  HandleSetWelcome,
	"inviteblock": HandleInviteBlock,
	"antiraid":    HandleAntiRaid,
	"safemode":    HandleSafeMode,
	"whitelist":   HandleWhitelist,
	"blacklist":   HandleBlacklist,
	"backup":      HandleBackup,
	"audit":       HandleAudit,
}

var publicCommands = map[string]bool{
	"ping": true,
}

// CommandDispatcher is the central handler for all application command
// interactions. It performs the moderator check and then dispatches to the
// appropriate handler.
func CommandDispatcher(b *bot.Bot) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		name := i.ApplicationCommandData().Name
		handler, ok := commandHandlers[name]
		if !ok {
			log.Printf("No handler for command %q", name)
			return
		}

		if !publicCommands[name] {
			if i.GuildID == "" || !utils.IsModerator(i, b.Store.GuildConfig(i.GuildID)) {
				respondEphemeral(s, i, "🚫 You do not have permission to run this command.")
				return
			}
		}

		handler(b, s, i)
	}
}

// optionMap indexes the interaction's options by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func stringValue(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name, fallback string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return fallback
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

func deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error deferring interaction: %v", err)
	}
}

func followup(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
	if err != nil {
		log.Printf("Error sending followup: %v", err)
	}
}
