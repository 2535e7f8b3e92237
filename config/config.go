package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from a .env file (if present), config.yaml,
// and the environment. Environment variables override file settings.
func LoadConfig() {
	// Load environment variables from .env, ignoring a missing file.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, skipping.")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Global defaults; guilds can override the anti-spam settings at runtime.
	viper.SetDefault("bot.dataFile", "security_data.json")
	viper.SetDefault("bot.auditDb", "data/audit.db")
	viper.SetDefault("antispam.threshold", 6)
	viper.SetDefault("antispam.window", 8)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("No config.yaml found, using environment variables and defaults.")
		} else {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}
}
