// astro-session-system/services/chain_client.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// ChainServiceClient talks to the chain-reader service that fronts the
// astrology contract on Base. Each call is independently fallible and
// carries no retry — callers decide whether a stale cache is acceptable.
type ChainServiceClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// ChainProfile mirrors the contract's getProfile() tuple. All fields are
// integers; element indexes the contract's Fire/Water/Air/Earth set and
// lastFortune is the unix time of the last daily claim.
type ChainProfile struct {
	Element     int64 `json:"element"`
	Level       int64 `json:"level"`
	Xp          int64 `json:"xp"`
	Energy      int64 `json:"energy"`
	LuckyNumber int64 `json:"lucky_number"`
	WinStreak   int64 `json:"win_streak"`
	LastFortune int64 `json:"last_fortune"`
}

func NewChainServiceClient(baseURL, token string) *ChainServiceClient {
	return &ChainServiceClient{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *ChainServiceClient) get(ctx context.Context, path string, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s", c.BaseURL, path)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call chain reader: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		log.Printf("ChainReader %s returned %d: %s", path, resp.StatusCode, string(body))
		return fmt.Errorf("chain reader returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode chain reader response: %w", err)
	}
	return nil
}

// HasProfile calls hasProfile(address) through the chain reader.
func (c *ChainServiceClient) HasProfile(ctx context.Context, address string) (bool, error) {
	var out struct {
		HasProfile bool `json:"has_profile"`
	}
	path := fmt.Sprintf("/chain/profiles/%s/exists", url.PathEscape(address))
	if err := c.get(ctx, path, &out); err != nil {
		return false, err
	}
	return out.HasProfile, nil
}

// GetProfile calls getProfile(address) through the chain reader. The
// reader answers 200 only for wallets that have a profile; check
// HasProfile first.
func (c *ChainServiceClient) GetProfile(ctx context.Context, address string) (*ChainProfile, error) {
	var out ChainProfile
	path := fmt.Sprintf("/chain/profiles/%s", url.PathEscape(address))
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
