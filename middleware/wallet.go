// middleware/wallet.go
package middleware

import (
	"log"

	"astro-session-system/utils"

	"github.com/gofiber/fiber/v2"
)

// WalletContextMiddleware picks up the connected wallet forwarded by the
// frontend in X-Wallet-Address, normalizes it, and attaches it to the
// request context for logging/attribution. The header is advisory — the
// store keys everything off the addresses carried in the request itself,
// so a missing header is fine.
func WalletContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-Wallet-Address")
		if raw != "" {
			normalized := utils.NormalizeAddress(raw)
			c.Locals("wallet_address", normalized)
			log.Printf("👛 [WALLET_CTX] %s | Path: %s", utils.ShortAddress(normalized), c.Path())
		}
		return c.Next()
	}
}
