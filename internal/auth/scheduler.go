package auth

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StartBlacklistSweeper schedules an hourly cleanup of expired blacklist
// rows. The returned cron is already running; callers stop it on shutdown.
func StartBlacklistSweeper(service *Service) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		removed, err := service.SweepBlacklist(ctx)
		if err != nil {
			log.Printf("blacklist sweep failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("blacklist sweep removed %d expired tokens", removed)
		}
	})
	if err != nil {
		log.Printf("blacklist sweeper not scheduled: %v", err)
		return c
	}

	c.Start()
	return c
}
