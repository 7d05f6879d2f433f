// services/archive.go
package services

import (
	"encoding/json"
	"log"
	"time"

	"astro-session-system/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/gosimple/slug"
)

// snapshotKey builds the R2 object key for one feed snapshot. The
// RFC3339 timestamp is slugified so keys stay free of colons, which
// trip up some S3 tooling.
func snapshotKey(ts time.Time) string {
	return "feed/" + slug.Make(ts.Format(time.RFC3339)) + ".json"
}

// StartFeedArchiver periodically exports a JSON snapshot of the recent
// activity feed to R2. Export only — ledger rows are never pruned, the
// feed table stays the source for reads.
func (s *ActivityService) StartFeedArchiver() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Hourly: snapshot the current feed page
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			entries, err := s.RecentActivity()
			if err != nil {
				log.Printf("[Archiver] feed query error: %v", err)
				return
			}
			if len(entries) == 0 {
				return
			}

			payload, err := json.Marshal(entries)
			if err != nil {
				log.Printf("[Archiver] marshal error: %v", err)
				return
			}

			key := snapshotKey(time.Now().UTC())
			if _, err := utils.UploadSnapshot(key, payload, "application/json"); err != nil {
				log.Printf("[Archiver] upload failed: %v", err)
				return
			}
			log.Printf("✅ Archived activity snapshot: %s (%d entries)", key, len(entries))
		}),
	)
}
