// services/session_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"astro-session-system/models"
	"astro-session-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

// ProfileSnapshot carries the optional cached profile fields of an
// upsert. Nil pointers mean "leave unset" — the upsert writes every
// field as supplied, it never preserves values from the previous row.
type ProfileSnapshot struct {
	Element     *int64 `json:"cached_element"`
	Level       *int64 `json:"cached_level"`
	Xp          *int64 `json:"cached_xp"`
	Energy      *int64 `json:"cached_energy"`
	LuckyNumber *int64 `json:"cached_lucky_number"`
	WinStreak   *int64 `json:"cached_win_streak"`
	LastFortune *int64 `json:"cached_last_fortune"`
}

// UpsertSession stores the latest known chain state for a wallet and
// returns the row ID. The operation is a full-field overwrite keyed by
// the normalized address: repeated identical calls leave one row in the
// same final state, and fields absent from snap end up NULL regardless
// of what the previous upsert carried.
func (s *SessionService) UpsertSession(walletAddress string, hasProfile bool, snap ProfileSnapshot) (string, error) {
	normalized := utils.NormalizeAddress(walletAddress)

	sess := models.WalletSession{
		ID:                uuid.NewString(),
		WalletAddress:     normalized,
		LastSeen:          time.Now().UTC(),
		HasProfile:        hasProfile,
		CachedElement:     snap.Element,
		CachedLevel:       snap.Level,
		CachedXp:          snap.Xp,
		CachedEnergy:      snap.Energy,
		CachedLuckyNumber: snap.LuckyNumber,
		CachedWinStreak:   snap.WinStreak,
		CachedLastFortune: snap.LastFortune,
	}

	// Single conflict-upsert statement: two callers hitting a new
	// address at once both land on the same row, no find-then-create
	// window. The assignment list covers every mutable column, so nil
	// snapshot fields overwrite stale cached values with NULL instead
	// of merging.
	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "wallet_address"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"last_seen", "has_profile",
			"cached_element", "cached_level", "cached_xp", "cached_energy",
			"cached_lucky_number", "cached_win_streak", "cached_last_fortune",
			"updated_at",
		}),
	}).Create(&sess).Error
	if err != nil {
		return "", err
	}

	// On conflict the row keeps its original id — read it back so the
	// caller always gets the stored identifier.
	stored, err := s.GetSession(normalized)
	if err != nil {
		return "", err
	}
	if stored == nil {
		return sess.ID, nil
	}
	return stored.ID, nil
}

// GetSession returns the cached session for the normalized address, or
// (nil, nil) when the wallet has never been seen — a read miss is a
// valid empty result, not an error.
func (s *SessionService) GetSession(walletAddress string) (*models.WalletSession, error) {
	normalized := utils.NormalizeAddress(walletAddress)

	var sess models.WalletSession
	err := s.DB.Where("wallet_address = ?", normalized).First(&sess).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// RefreshFromChain asks the chain reader for the wallet's current state
// and upserts the result, mirroring what the frontend does after every
// confirmed transaction. Returns the refreshed session row.
func (s *SessionService) RefreshFromChain(ctx context.Context, chain *ChainServiceClient, walletAddress string) (*models.WalletSession, error) {
	hasProf, err := chain.HasProfile(ctx, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("chain reader hasProfile failed: %w", err)
	}

	var snap ProfileSnapshot
	if hasProf {
		profile, err := chain.GetProfile(ctx, walletAddress)
		if err != nil {
			return nil, fmt.Errorf("chain reader getProfile failed: %w", err)
		}
		snap = ProfileSnapshot{
			Element:     &profile.Element,
			Level:       &profile.Level,
			Xp:          &profile.Xp,
			Energy:      &profile.Energy,
			LuckyNumber: &profile.LuckyNumber,
			WinStreak:   &profile.WinStreak,
			LastFortune: &profile.LastFortune,
		}
	}

	if _, err := s.UpsertSession(walletAddress, hasProf, snap); err != nil {
		return nil, err
	}

	sess, err := s.GetSession(walletAddress)
	if err != nil {
		return nil, err
	}

	log.Printf("🔄 [SESSION] Refreshed %s from chain (hasProfile=%t)", utils.ShortAddress(walletAddress), hasProf)
	return sess, nil
}
