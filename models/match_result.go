package models

import "time"

// MatchResult records one completed compatibility reading (append-only).
// WalletAddress is the requester, MatchedWith the counterpart; both are
// stored normalized. Compatibility is whatever the contract returned —
// semantically a 0–100 percentage, not range-checked here.
type MatchResult struct {
	ID            string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	WalletAddress string    `gorm:"type:varchar(128);not null;index" json:"wallet_address"`
	MatchedWith   string    `gorm:"type:varchar(128);not null" json:"matched_with"`
	Compatibility int64     `gorm:"not null" json:"compatibility"`
	Timestamp     time.Time `gorm:"not null;index" json:"timestamp"` // ingestion time

	Timestamps
}
