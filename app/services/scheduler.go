package services

import (
	"database/sql"
	"log"
	"time"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 2:05 AM
			if now.Hour() == 2 && now.Minute() == 5 {
				log.Println("Triggering scheduled tasks [02:05]...")

				// Baseline recalculation check across all organizations
				RunRecalculationSweep(db, SystemActor)
			}
		}
	}()
}
