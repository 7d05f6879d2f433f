// models/wallet_session.go
package models

import (
	"time"
)

// WalletSession caches the last-known on-chain profile for a wallet.
// One row per normalized (lower-cased) address. The cached_* columns are
// advisory display data only — the contract remains the source of truth.
// Table name: wallet_sessions
type WalletSession struct {
	ID            string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	WalletAddress string    `gorm:"type:varchar(128);not null;uniqueIndex" json:"wallet_address"` // Primary lookup key, always lower-cased
	LastSeen      time.Time `gorm:"not null;index" json:"last_seen"`                              // Ingestion time of the last upsert, not chain time
	HasProfile    bool      `gorm:"not null" json:"has_profile"`

	// Snapshot of getProfile() — set together when HasProfile is true,
	// all NULL when it is false. Never merged field-by-field.
	CachedElement     *int64 `json:"cached_element,omitempty"`
	CachedLevel       *int64 `json:"cached_level,omitempty"`
	CachedXp          *int64 `json:"cached_xp,omitempty"`
	CachedEnergy      *int64 `json:"cached_energy,omitempty"`
	CachedLuckyNumber *int64 `json:"cached_lucky_number,omitempty"`
	CachedWinStreak   *int64 `json:"cached_win_streak,omitempty"`
	CachedLastFortune *int64 `json:"cached_last_fortune,omitempty"` // Unix seconds of the last fortune claim

	Timestamps
}
