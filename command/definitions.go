package command

import "github.com/bwmarrin/discordgo"

func userOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Description: description,
		Type:        discordgo.ApplicationCommandOptionUser,
		Required:    required,
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Description: description,
		Type:        discordgo.ApplicationCommandOptionString,
		Required:    required,
	}
}

func intOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Description: description,
		Type:        discordgo.ApplicationCommandOptionInteger,
		Required:    required,
	}
}

func channelOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Description: description,
		Type:        discordgo.ApplicationCommandOptionChannel,
		Required:    required,
	}
}

func roleOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Description: description,
		Type:        discordgo.ApplicationCommandOptionRole,
		Required:    required,
	}
}

func entityOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        "entity",
		Description: "Entity type",
		Type:        discordgo.ApplicationCommandOptionString,
		Required:    true,
		Choices: []*discordgo.ApplicationCommandOptionChoice{
			{Name: "Role", Value: "role"},
			{Name: "Member", Value: "member"},
			{Name: "Invite", Value: "invite"},
		},
	}
}

// AllCommands holds every slash command the bot registers.
var AllCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "ping",
		Description: "Check that the bot is alive",
	},
	{
		Name:        "ban",
		Description: "Ban a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member to ban", true),
			stringOption("reason", "Reason for the ban", false),
		},
	},
	{
		Name:        "tempban",
		Description: "Temporarily ban a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member to ban", true),
			intOption("duration", "Duration in seconds", true),
			stringOption("reason", "Reason", false),
		},
	},
	{
		Name:        "unban",
		Description: "Unban a user by ID",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("user_id", "User ID to unban", true),
		},
	},
	{
		Name:        "kick",
		Description: "Kick a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member to kick", true),
			stringOption("reason", "Reason", false),
		},
	},
	{
		Name:        "softban",
		Description: "Softban (ban then unban) to purge messages",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member to softban", true),
			stringOption("reason", "Reason", false),
		},
	},
	{
		Name:        "mute",
		Description: "Mute (role-based) a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member to mute", true),
			stringOption("reason", "Reason", false),
		},
	},
	{
		Name:        "unmute",
		Description: "Unmute a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member to unmute", true),
		},
	},
	{
		Name:        "tempmute",
		Description: "Temporarily mute a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member to mute", true),
			intOption("duration", "Duration in seconds", true),
			stringOption("reason", "Reason", false),
		},
	},
	{
		Name:        "jail",
		Description: "Move a member to the jailed role",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member to jail", true),
			stringOption("reason", "Reason", false),
		},
	},
	{
		Name:        "unjail",
		Description: "Remove the jailed role from a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member to unjail", true),
		},
	},
	{
		Name:        "tempjail",
		Description: "Temporarily jail a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member to jail", true),
			intOption("duration", "Duration in seconds", true),
			stringOption("reason", "Reason", false),
		},
	},
	{
		Name:        "warn",
		Description: "Warn a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member to warn", true),
			stringOption("reason", "Reason", false),
		},
	},
	{
		Name:        "warnings",
		Description: "Show warnings for a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member", true),
		},
	},
	{
		Name:        "clearwarns",
		Description: "Clear warnings for a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member", true),
		},
	},
	{
		Name:        "tag",
		Description: "Add a moderation note for a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member", true),
			stringOption("note", "Note text", true),
		},
	},
	{
		Name:        "gettag",
		Description: "Retrieve the moderation note for a member",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("member", "Member", true),
		},
	},
	{
		Name:        "antispam",
		Description: "Configure anti-spam (threshold, window)",
		Options: []*discordgo.ApplicationCommandOption{
			intOption("threshold", "Messages count", true),
			intOption("window", "Window in seconds", true),
		},
	},
	{
		Name:        "setmodrole",
		Description: "Set the moderator role",
		Options: []*discordgo.ApplicationCommandOption{
			roleOption("role", "Role to mark as mod", true),
		},
	},
	{
		Name:        "setlog",
		Description: "Set the log channel for moderation events",
		Options: []*discordgo.ApplicationCommandOption{
			channelOption("channel", "Text channel to receive logs", true),
		},
	},
	{
		Name:        "setwelcome",
		Description: "Set the welcome channel",
		Options: []*discordgo.ApplicationCommandOption{
			channelOption("channel", "Welcome channel", true),
		},
	},
	{
		Name:        "inviteblock",
		Description: "Toggle invite link filtering",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("toggle", "on or off", true),
		},
	},
	{
		Name:        "antiraid",
		Description: "Toggle anti-raid mode",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("toggle", "on or off", true),
		},
	},
	{
		Name:        "safemode",
		Description: "Toggle safe mode (strict checks)",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("toggle", "on or off", true),
		},
	},
	{
		Name:        "whitelist",
		Description: "Whitelist an entity for moderation actions",
		Options: []*discordgo.ApplicationCommandOption{
			entityOption(),
			stringOption("id", "Entity ID", true),
		},
	},
	{
		Name:        "blacklist",
		Description: "Blacklist an entity for moderation actions",
		Options: []*discordgo.ApplicationCommandOption{
			entityOption(),
			stringOption("id", "Entity ID", true),
		},
	},
	{
		Name:        "backup",
		Description: "Save a snapshot of the guild's roles and channels",
	},
	{
		Name:        "audit",
		Description: "Show recent moderation actions",
		Options: []*discordgo.ApplicationCommandOption{
			intOption("limit", "Number of entries (max 25)", false),
		},
	},
}
