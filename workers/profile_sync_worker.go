package workers

import (
	"context"
	"log"
	"time"

	"astro-session-system/models"
	"astro-session-system/services"
	"astro-session-system/utils"

	"gorm.io/gorm"
)

// ProfileSyncWorker re-reads stale session caches from the chain reader.
// The cache stays advisory: a failed refresh is logged and skipped, the
// stale row keeps serving reads until the next pass.
type ProfileSyncWorker struct {
	DB         *gorm.DB
	Chain      *services.ChainServiceClient
	Sessions   *services.SessionService
	StaleAfter time.Duration
	BatchSize  int
}

func NewProfileSyncWorker(db *gorm.DB, chain *services.ChainServiceClient, sessions *services.SessionService, staleAfter time.Duration) *ProfileSyncWorker {
	return &ProfileSyncWorker{
		DB:         db,
		Chain:      chain,
		Sessions:   sessions,
		StaleAfter: staleAfter,
		BatchSize:  50,
	}
}

// staleSessions returns the oldest sessions not refreshed within the
// staleness window, capped at BatchSize per pass.
func (w *ProfileSyncWorker) staleSessions() ([]models.WalletSession, error) {
	cutoff := time.Now().UTC().Add(-w.StaleAfter)

	var sessions []models.WalletSession
	err := w.DB.
		Where("last_seen < ?", cutoff).
		Order("last_seen ASC").
		Limit(w.BatchSize).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (w *ProfileSyncWorker) refreshPass(ctx context.Context) {
	sessions, err := w.staleSessions()
	if err != nil {
		log.Printf("[ProfileSync] DB error: %v", err)
		return
	}
	if len(sessions) == 0 {
		return
	}

	refreshed := 0
	for _, sess := range sessions {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.Sessions.RefreshFromChain(ctx, w.Chain, sess.WalletAddress); err != nil {
			log.Printf("[ProfileSync] refresh failed for %s: %v", utils.ShortAddress(sess.WalletAddress), err)
			continue
		}
		refreshed++
	}

	log.Printf("✅ [ProfileSync] Refreshed %d/%d stale sessions", refreshed, len(sessions))
}

// PollStaleSessions runs refresh passes until the context is cancelled.
func PollStaleSessions(ctx context.Context, worker *ProfileSyncWorker, pollInterval time.Duration) {
	log.Println("Starting stale session polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Stale session polling stopped.")
			return
		case <-ticker.C:
			worker.refreshPass(ctx)
		}
	}
}
