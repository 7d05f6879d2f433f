// middleware/gateway.go
package middleware

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GatewayAuthMiddleware checks the shared service token on every request.
// The frontend never talks to this service directly — everything comes
// through the Gateway, which injects the Bearer token.
func GatewayAuthMiddleware() fiber.Handler {
	expectedToken := os.Getenv("ASTRO_SERVICE_TOKEN")
	if expectedToken == "" {
		log.Fatal("❌ ASTRO_SERVICE_TOKEN is not set — service cannot authenticate Gateway")
	}

	return func(c *fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		if token == "" {
			log.Printf("🚫 [GATEWAY_AUTH] Missing Authorization header for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "gateway token missing",
			})
		}

		if token != expectedToken {
			log.Printf("❌ [GATEWAY_AUTH] Invalid token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid gateway token",
			})
		}

		return c.Next()
	}
}
