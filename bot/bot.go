package bot

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"guardian-bot/antispam"
	"guardian-bot/command"
	"guardian-bot/config"
	"guardian-bot/database"
	"guardian-bot/models"
	"guardian-bot/moderation"
	"guardian-bot/notify"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// Bot encapsulates the bot's state and the moderation core.
type Bot struct {
	Session   *discordgo.Session
	Store     *database.Store
	AuditDB   *sql.DB
	Tracker   *antispam.Tracker
	Executor  *moderation.Executor
	Scheduler *moderation.Scheduler
	Notifier  notify.Notifier
}

// NewBot creates and initializes a new Bot instance. Failing to load the
// durable data file is a startup error: the bot must not run with unknown
// moderation state.
func NewBot() (*Bot, error) {
	config.LoadConfig()
	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers | discordgo.IntentMessageContent

	store, err := database.Open(
		viper.GetString("bot.dataFile"),
		viper.GetInt("antispam.threshold"),
		viper.GetInt("antispam.window"),
	)
	if err != nil {
		return nil, fmt.Errorf("error loading moderation data: %w", err)
	}

	auditDB, err := database.InitAuditDB(viper.GetString("bot.auditDb"))
	if err != nil {
		return nil, fmt.Errorf("error initializing audit database: %w", err)
	}

	notifier := notify.NewChannelNotifier(dg, store.GuildConfig)
	executor := moderation.NewExecutor(moderation.NewSessionActuator(dg), store, auditDB, notifier)

	return &Bot{
		Session:   dg,
		Store:     store,
		AuditDB:   auditDB,
		Tracker:   antispam.NewTracker(store),
		Executor:  executor,
		Scheduler: moderation.NewScheduler(store),
		Notifier:  notifier,
	}, nil
}

// Start opens the session, registers handlers and slash commands, resumes
// persisted temp actions, and starts the background sweep.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands
	for _, def := range command.GetCommandDefinitions() {
		_, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", def)
		if err != nil {
			log.Printf("Cannot create '%v' command: %v", def.Name, err)
		}
	}

	// Reconcile temp actions that were pending when the process last exited.
	b.Scheduler.Resume(map[models.ActionKind]moderation.ReverseFunc{
		models.ActionMute: b.Executor.Unmute,
		models.ActionJail: b.Executor.Unjail,
		models.ActionBan:  b.Executor.Unban,
	})

	startScheduler(b.Tracker)

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts the bot down. Pending reversal records stay in the
// store and are resumed on the next start.
func (b *Bot) Stop() {
	stopScheduler()
	b.Scheduler.Stop()
	if b.Session != nil {
		b.Session.Close()
	}
	if b.AuditDB != nil {
		b.AuditDB.Close()
	}
	fmt.Println("Bot stopped gracefully.")
}

// Run is the main entry point for the bot application.
func Run(registerHandlers func(*Bot)) {
	bot, err := NewBot()
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	if err := bot.Start(registerHandlers); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
