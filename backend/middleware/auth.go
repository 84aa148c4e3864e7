package middleware

import (
	"log/slog"
	"strings"

	"github.com/ellavondegurechaff/goaura/backend/utils"
	"github.com/gofiber/fiber/v2"
)

const walletHeader = "X-Wallet-Address"

// WalletRequired extracts the already-authenticated wallet identity from
// the request. Signature verification happens upstream; this service
// trusts the header but rejects requests that carry none before any
// mutation is attempted.
func WalletRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := strings.TrimSpace(c.Get(walletHeader))
		if wallet == "" {
			slog.Debug("Request without wallet identity",
				slog.String("type", "http"),
				slog.String("path", c.Path()))
			return utils.SendBadRequest(c, "missing_wallet")
		}

		c.Locals("wallet", wallet)
		return c.Next()
	}
}
