package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ellavondegurechaff/goaura/backend/models"
	"github.com/ellavondegurechaff/goaura/backend/utils"
	"github.com/ellavondegurechaff/goaura/goaura/ai"
	"github.com/gofiber/fiber/v2"
)

// AIProxy handles POST /api/v1/ai/chat/completions. On success the provider
// body is forwarded verbatim; quota rejections return 429 with the current
// figures; provider failures pass through status and body.
func AIProxy(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := utils.Wallet(c)

		var req models.AIProxyRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid_body")
		}
		if len(req.Messages) == 0 {
			return utils.SendBadRequest(c, "missing_messages")
		}

		messages := make([]ai.Message, 0, len(req.Messages))
		for _, m := range req.Messages {
			messages = append(messages, ai.Message{Role: m.Role, Content: m.Content})
		}

		raw, err := app.Quota.Complete(c.Context(), wallet, &ai.ProxyRequest{
			Messages:     messages,
			Model:        req.Model,
			MaxTokens:    req.MaxTokens,
			FunctionType: req.FunctionType,
		})
		if err != nil {
			var quotaErr *ai.QuotaError
			if errors.As(err, &quotaErr) {
				return utils.SendErrorCode(c, http.StatusTooManyRequests, quotaErr.Code, fiber.Map{
					"monthlyUsed":  quotaErr.MonthlyUsed,
					"monthlyLimit": quotaErr.MonthlyLimit,
				})
			}
			var upstreamErr *ai.UpstreamError
			if errors.As(err, &upstreamErr) {
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				return c.Status(upstreamErr.StatusCode).Send(upstreamErr.Body)
			}
			slog.Error("AI proxy failed",
				slog.String("type", "ai"),
				slog.String("wallet", wallet),
				slog.Any("error", err))
			return utils.SendErrorCode(c, http.StatusBadGateway, "upstream_unavailable", nil)
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(http.StatusOK).Send(raw)
	}
}

// AIQuotaStatus handles GET /api/v1/ai/quota.
func AIQuotaStatus(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := utils.Wallet(c)

		status, err := app.Quota.Status(c.Context(), wallet)
		if err != nil {
			slog.Error("Quota status failed",
				slog.String("type", "ai"),
				slog.String("wallet", wallet),
				slog.Any("error", err))
			return utils.SendInternalServerError(c)
		}

		return utils.SendJSON(c, http.StatusOK, models.QuotaStatusResponse{
			DailyUsed:    status.DailyUsed,
			DailyLimit:   status.DailyLimit,
			MonthlyUsed:  status.MonthlyUsed,
			MonthlyLimit: status.MonthlyLimit,
			StatDate:     status.StatDate,
			StatMonth:    status.StatMonth,
		})
	}
}
