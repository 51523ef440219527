package services

import (
	"log"
	"time"
)

// StartScheduler starts the background task loop. It logs the day's
// attendance digest once the school day is over (17:00).
func StartScheduler(agg *Aggregator) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			if now.Hour() == 17 && now.Minute() == 0 {
				m, err := agg.Today()
				if err != nil {
					log.Printf("Error computing daily digest: %v", err)
					continue
				}
				log.Printf("[digest] date=%s total=%d punctual=%d late=%d absent=%d",
					now.Format("2006-01-02"), m.TotalToday, m.PunctualToday, m.LateToday, m.AbsentToday)
			}
		}
	}()
}
