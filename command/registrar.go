package command

import "github.com/bwmarrin/discordgo"

// GetCommandDefinitions returns a slice of all command definitions.
func GetCommandDefinitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, len(AllCommands))
	copy(defs, AllCommands)
	return defs
}
