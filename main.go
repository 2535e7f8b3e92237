package main

import (
	"guardian-bot/bot"
	"guardian-bot/handlers"
)

func main() {
	bot.Run(handlers.Register)
}
