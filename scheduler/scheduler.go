package scheduler

import (
	"log"

	"taskboard/connection"
	"taskboard/services"

	"github.com/robfig/cron/v3"
)

// StartScheduler runs the hourly purge of expired and revoked refresh
// tokens. It blocks forever and is meant to run in its own goroutine or as
// a dedicated process.
func StartScheduler() {
	c := cron.New()

	db, err := connection.DBConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	_, err = c.AddFunc("@hourly", func() {
		purged, err := services.PurgeDeadTokens(db)
		if err != nil {
			log.Printf("refresh token purge failed: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("purged %d dead refresh tokens", purged)
		}
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}

	c.Start()
	log.Println("Scheduler started")

	select {}
}
