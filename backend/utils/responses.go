package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// SendErrorCode sends a machine-readable error code with optional extra fields
func SendErrorCode(c *fiber.Ctx, statusCode int, code string, extra fiber.Map) error {
	payload := fiber.Map{"error": code}
	for k, v := range extra {
		payload[k] = v
	}
	return SendJSON(c, statusCode, payload)
}

// SendBadRequest sends a bad request error response
func SendBadRequest(c *fiber.Ctx, code string) error {
	return SendErrorCode(c, http.StatusBadRequest, code, nil)
}

// SendInternalServerError sends an internal server error response
func SendInternalServerError(c *fiber.Ctx) error {
	return SendErrorCode(c, http.StatusInternalServerError, "internal_error", nil)
}

// Wallet extracts the authenticated wallet address stored by the wallet
// middleware.
func Wallet(c *fiber.Ctx) string {
	wallet, _ := c.Locals("wallet").(string)
	return wallet
}

// GetIPAddress extracts the client IP address
func GetIPAddress(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.IP()
}
