// handlers/session_routes.go
package handlers

import (
	"astro-session-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSessionRoutes(app *fiber.App, sessionService *services.SessionService, chainClient *services.ChainServiceClient) {
	// Upsert the cached session for a wallet. Full-field overwrite:
	// cached_* fields missing from the body end up NULL even if an
	// earlier upsert set them.
	app.Post("/session", func(c *fiber.Ctx) error {
		var body struct {
			WalletAddress string `json:"wallet_address"`
			HasProfile    bool   `json:"has_profile"`
			services.ProfileSnapshot
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}

		id, err := sessionService.UpsertSession(body.WalletAddress, body.HasProfile, body.ProfileSnapshot)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to upsert session",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{"id": id})
	})

	// Fetch the cached session. A wallet never seen is not an error —
	// the body carries session: null and the frontend shows the
	// "create your profile" state.
	app.Get("/session/:address", func(c *fiber.Ctx) error {
		sess, err := sessionService.GetSession(c.Params("address"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch session",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"session": sess})
	})

	// Re-read the wallet's state from the chain reader and cache it.
	// Mirrors the frontend's refresh after a confirmed transaction.
	app.Post("/session/:address/refresh", func(c *fiber.Ctx) error {
		sess, err := sessionService.RefreshFromChain(c.Context(), chainClient, c.Params("address"))
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to refresh session from chain",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"session": sess})
	})
}
