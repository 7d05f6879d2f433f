// handlers/feed_routes.go
package handlers

import (
	"astro-session-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupFeedRoutes(app *fiber.App, activityService *services.ActivityService, matchService *services.MatchService, sessionService *services.SessionService) {
	// Append one entry to the global activity feed.
	app.Post("/activity", func(c *fiber.Ctx) error {
		var body struct {
			WalletAddress string `json:"wallet_address"`
			Action        string `json:"action"`
			Details       string `json:"details"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}

		id, err := activityService.LogActivity(body.WalletAddress, body.Action, body.Details)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to log activity",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"id": id})
	})

	// Global feed — newest 20 across all wallets.
	app.Get("/activity/recent", func(c *fiber.Ctx) error {
		entries, err := activityService.RecentActivity()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch activity feed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"activity": entries})
	})

	// Record one completed compatibility reading.
	app.Post("/match", func(c *fiber.Ctx) error {
		var body struct {
			WalletAddress string `json:"wallet_address"`
			MatchedWith   string `json:"matched_with"`
			Compatibility int64  `json:"compatibility"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}

		id, err := matchService.SaveMatchResult(body.WalletAddress, body.MatchedWith, body.Compatibility)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save match result",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"id": id})
	})

	// Per-wallet match history — newest 10 for that wallet only.
	app.Get("/match/:address", func(c *fiber.Ctx) error {
		results, err := matchService.MatchesFor(c.Params("address"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch match results",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"matches": results})
	})

	// Dashboard aggregate: session + match history + global feed in one
	// round trip. Three independent reads — each reflects its own latest
	// committed state, there is no cross-entity snapshot.
	app.Get("/dashboard/:address", func(c *fiber.Ctx) error {
		address := c.Params("address")

		sess, err := sessionService.GetSession(address)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch session",
				"cause": err.Error(),
			})
		}

		matches, err := matchService.MatchesFor(address)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch match results",
				"cause": err.Error(),
			})
		}

		activity, err := activityService.RecentActivity()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch activity feed",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"session":  sess,
			"matches":  matches,
			"activity": activity,
		})
	})
}
