// services/activity_service.go
package services

import (
	"time"

	"astro-session-system/models"
	"astro-session-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecentActivityLimit is the page size of the global feed.
const RecentActivityLimit = 20

type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

// LogActivity appends one entry to the global feed and returns its ID.
// Pure insert — no precondition, nothing existing is ever touched. Only
// the indexed address is normalized; the action tag and details are
// stored exactly as supplied (the frontend sends profile_created /
// fortune_claimed / match_found, but any tag is accepted verbatim).
func (s *ActivityService) LogActivity(walletAddress, action, details string) (string, error) {
	entry := models.ActivityEntry{
		ID:            uuid.NewString(),
		WalletAddress: utils.NormalizeAddress(walletAddress),
		Action:        action,
		Details:       details,
		Timestamp:     time.Now().UTC(),
	}

	if err := s.DB.Create(&entry).Error; err != nil {
		return "", err
	}
	return entry.ID, nil
}

// RecentActivity returns the newest entries across all wallets, newest
// first, capped at RecentActivityLimit. The feed is intentionally global —
// it shows cross-user live activity. The secondary id sort keeps
// same-timestamp entries in a stable order between reads.
func (s *ActivityService) RecentActivity() ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	err := s.DB.
		Order("timestamp DESC, id DESC").
		Limit(RecentActivityLimit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
