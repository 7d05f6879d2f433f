package models

import "time"

// ActivityEntry is one row of the global activity feed (append-only).
// Rows are never updated or deleted; the feed query reads the newest N
// across all wallets.
type ActivityEntry struct {
	ID            string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	WalletAddress string    `gorm:"type:varchar(128);not null;index" json:"wallet_address"` // normalized
	Action        string    `gorm:"type:varchar(64);not null;index" json:"action"`          // caller-supplied tag, stored verbatim (profile_created / fortune_claimed / match_found from the frontend)
	Details       string    `gorm:"type:text;not null" json:"details"`                      // free text, keeps caller casing
	Timestamp     time.Time `gorm:"not null;index" json:"timestamp"`                        // ingestion time

	Timestamps
}
