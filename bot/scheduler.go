package bot

import (
	"log"

	"guardian-bot/antispam"

	"github.com/robfig/cron/v3"
)

// The sweep period is fixed and independent of any guild's spam window.
const sweepSpec = "@every 15s"

var c *cron.Cron

// startScheduler starts the recurring anti-spam sweep.
func startScheduler(tracker *antispam.Tracker) {
	log.Println("Initializing scheduler...")
	c = cron.New()
	_, err := c.AddFunc(sweepSpec, tracker.Sweep)
	if err != nil {
		log.Fatalf("Could not set up sweep job: %v", err)
	}
	c.Start()
	log.Println("Anti-spam sweep scheduled.")
}

// stopScheduler stops the cron jobs.
func stopScheduler() {
	if c != nil {
		c.Stop()
		log.Println("Scheduler stopped.")
	}
}
