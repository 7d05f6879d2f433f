package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"astro-session-system/models"
	"astro-session-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.WalletSession{},
		&models.ActivityEntry{},
		&models.MatchResult{},
	))

	sessionService := services.NewSessionService(db)
	activityService := services.NewActivityService(db)
	matchService := services.NewMatchService(db)

	app := fiber.New()
	SetupSessionRoutes(app, sessionService, nil)
	SetupFeedRoutes(app, activityService, matchService, sessionService)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]json.RawMessage) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestSessionRoundTrip(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, "POST", "/session", fiber.Map{
		"wallet_address":      "0xABCDEF1234",
		"has_profile":         true,
		"cached_element":      1,
		"cached_level":        2,
		"cached_xp":           3,
		"cached_energy":       4,
		"cached_lucky_number": 5,
		"cached_win_streak":   6,
		"cached_last_fortune": 7,
	})
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, "id")

	// Lookup with different casing hits the same row
	status, body = doJSON(t, app, "GET", "/session/0xabcdef1234", nil)
	require.Equal(t, fiber.StatusOK, status)

	var sess models.WalletSession
	require.NoError(t, json.Unmarshal(body["session"], &sess))
	assert.Equal(t, "0xabcdef1234", sess.WalletAddress)
	assert.True(t, sess.HasProfile)
	require.NotNil(t, sess.CachedLuckyNumber)
	assert.EqualValues(t, 5, *sess.CachedLuckyNumber)
}

func TestSessionMissReturnsNull(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, "GET", "/session/0xneverseen", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "null", string(body["session"]))
}

func TestActivityFeedEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/activity", fiber.Map{
		"wallet_address": "0xAlice",
		"action":         "profile_created",
		"details":        "Created cosmic profile",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, body := doJSON(t, app, "GET", "/activity/recent", nil)
	require.Equal(t, fiber.StatusOK, status)

	var entries []models.ActivityEntry
	require.NoError(t, json.Unmarshal(body["activity"], &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "0xalice", entries[0].WalletAddress)
	assert.Equal(t, "profile_created", entries[0].Action)
}

func TestDashboardAggregatesThreeViews(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/session", fiber.Map{
		"wallet_address": "0xalice",
		"has_profile":    false,
	})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, "POST", "/match", fiber.Map{
		"wallet_address": "0xalice",
		"matched_with":   "0xBob",
		"compatibility":  80,
	})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, "POST", "/activity", fiber.Map{
		"wallet_address": "0xcarol",
		"action":         "fortune_claimed",
		"details":        "Claimed daily fortune",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, body := doJSON(t, app, "GET", "/dashboard/0xALICE", nil)
	require.Equal(t, fiber.StatusOK, status)

	var sess models.WalletSession
	require.NoError(t, json.Unmarshal(body["session"], &sess))
	assert.Equal(t, "0xalice", sess.WalletAddress)

	var matches []models.MatchResult
	require.NoError(t, json.Unmarshal(body["matches"], &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "0xbob", matches[0].MatchedWith)

	// Feed section stays global — carol's entry shows on alice's dashboard
	var activity []models.ActivityEntry
	require.NoError(t, json.Unmarshal(body["activity"], &activity))
	require.Len(t, activity, 1)
	assert.Equal(t, "0xcarol", activity[0].WalletAddress)
}

func TestMatchResultsScopedByWalletOverHTTP(t *testing.T) {
	app := newTestApp(t)

	for _, pair := range [][2]string{{"0xalice", "0xbob"}, {"0xcarol", "0xdave"}} {
		status, _ := doJSON(t, app, "POST", "/match", fiber.Map{
			"wallet_address": pair[0],
			"matched_with":   pair[1],
			"compatibility":  50,
		})
		require.Equal(t, fiber.StatusOK, status)
	}

	status, body := doJSON(t, app, "GET", "/match/0xalice", nil)
	require.Equal(t, fiber.StatusOK, status)

	var matches []models.MatchResult
	require.NoError(t, json.Unmarshal(body["matches"], &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "0xbob", matches[0].MatchedWith)
}
