// services/match_service.go
package services

import (
	"time"

	"astro-session-system/models"
	"astro-session-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchResultsLimit is the page size of the per-wallet match history.
const MatchResultsLimit = 10

type MatchService struct {
	DB *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{DB: db}
}

// SaveMatchResult appends one match outcome and returns its ID. Both
// addresses are normalized before storage. Compatibility is stored as
// given — the contract owns the 0–100 semantics and this cache does not
// second-guess it.
func (s *MatchService) SaveMatchResult(walletAddress, matchedWith string, compatibility int64) (string, error) {
	result := models.MatchResult{
		ID:            uuid.NewString(),
		WalletAddress: utils.NormalizeAddress(walletAddress),
		MatchedWith:   utils.NormalizeAddress(matchedWith),
		Compatibility: compatibility,
		Timestamp:     time.Now().UTC(),
	}

	if err := s.DB.Create(&result).Error; err != nil {
		return "", err
	}
	return result.ID, nil
}

// MatchesFor returns the newest match results for one wallet only,
// newest first, capped at MatchResultsLimit.
func (s *MatchService) MatchesFor(walletAddress string) ([]models.MatchResult, error) {
	var results []models.MatchResult
	err := s.DB.
		Where("wallet_address = ?", utils.NormalizeAddress(walletAddress)).
		Order("timestamp DESC, id DESC").
		Limit(MatchResultsLimit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
