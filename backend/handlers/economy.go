package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ellavondegurechaff/goaura/backend/models"
	"github.com/ellavondegurechaff/goaura/backend/utils"
	"github.com/ellavondegurechaff/goaura/goaura/economy"
	"github.com/gofiber/fiber/v2"
)

// CheckIn handles POST /api/v1/checkin.
func CheckIn(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := utils.Wallet(c)

		result, err := app.CheckIns.CheckIn(c.Context(), wallet)
		if err != nil {
			var already *economy.AlreadyCheckedInError
			if errors.As(err, &already) {
				return utils.SendErrorCode(c, http.StatusBadRequest, "already_checked_in", fiber.Map{
					"secondsUntilReset": already.SecondsUntilReset,
				})
			}
			slog.Error("Check-in failed",
				slog.String("wallet", wallet),
				slog.Any("error", err))
			return utils.SendInternalServerError(c)
		}

		return utils.SendJSON(c, http.StatusOK, models.CheckInResponse{
			Success:           true,
			CheckInDate:       result.CheckInDate,
			ConsecutiveDays:   result.ConsecutiveDays,
			WeeklyProgress:    result.WeeklyProgress,
			Reward:            result.Reward,
			TierMultiplier:    result.TierMultiplier,
			NewBalance:        result.NewBalance,
			SecondsUntilReset: result.SecondsUntilReset,
		})
	}
}

// CheckInStatus handles GET /api/v1/checkin/status.
func CheckInStatus(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := utils.Wallet(c)

		status, err := app.CheckIns.Status(c.Context(), wallet)
		if err != nil {
			slog.Error("Check-in status failed",
				slog.String("wallet", wallet),
				slog.Any("error", err))
			return utils.SendInternalServerError(c)
		}

		return utils.SendJSON(c, http.StatusOK, checkInStatusResponse(status))
	}
}

func checkInStatusResponse(status *economy.CheckInStatus) models.CheckInStatusResponse {
	return models.CheckInStatusResponse{
		HasCheckedInToday: status.HasCheckedInToday,
		ConsecutiveDays:   status.ConsecutiveDays,
		WeeklyProgress:    status.WeeklyProgress,
		TotalCheckInDays:  status.TotalCheckInDays,
		LastCheckInDate:   status.LastCheckInDate,
		SecondsUntilReset: status.SecondsUntilReset,
	}
}

// AdventureComplete handles POST /api/v1/adventure/complete.
func AdventureComplete(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := utils.Wallet(c)

		var req models.AdventureCompleteRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid_body")
		}
		if req.QuestID == "" {
			return utils.SendBadRequest(c, "missing_quest_id")
		}

		result, err := app.Adventures.Complete(c.Context(), wallet, req.QuestID, req.QuestText)
		if err != nil {
			if errors.Is(err, economy.ErrAlreadyCompleted) {
				return utils.SendErrorCode(c, http.StatusBadRequest, "already_completed", nil)
			}
			slog.Error("Adventure completion failed",
				slog.String("wallet", wallet),
				slog.String("quest_id", req.QuestID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c)
		}

		return utils.SendJSON(c, http.StatusOK, models.AdventureCompleteResponse{
			Success:        true,
			Reward:         result.Reward,
			TierMultiplier: result.TierMultiplier,
			NewBalance:     result.NewBalance,
		})
	}
}

// DialogueReward handles POST /api/v1/dialogue/reward.
func DialogueReward(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := utils.Wallet(c)

		var req models.DialogueRewardRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid_body")
		}

		result, err := app.Dialogues.Reward(c.Context(), wallet, req.SessionID, req.IsFirstChat, req.ResonanceScore)
		if err != nil {
			slog.Error("Dialogue reward failed",
				slog.String("wallet", wallet),
				slog.Any("error", err))
			return utils.SendInternalServerError(c)
		}

		return utils.SendJSON(c, http.StatusOK, models.DialogueRewardResponse{
			Success:       true,
			DialogueIndex: result.DialogueIndex,
			Reward:        result.Reward,
			Breakdown: models.DialogueBreakdown{
				Base:           result.Base,
				FirstChatBonus: result.FirstChatBonus,
				ResonanceBonus: result.ResonanceBonus,
				TierMultiplier: result.TierMultiplier,
			},
			IsOverLimit: result.IsOverLimit,
			NewBalance:  result.NewBalance,
		})
	}
}

// TransactionHistory handles GET /api/v1/transactions.
func TransactionHistory(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := utils.Wallet(c)
		limit := c.QueryInt("limit", 50)
		offset := c.QueryInt("offset", 0)

		entries, total, err := app.Balances.History(c.Context(), wallet, limit, offset)
		if err != nil {
			slog.Error("Transaction history failed",
				slog.String("wallet", wallet),
				slog.Any("error", err))
			return utils.SendInternalServerError(c)
		}

		transactions := make([]models.Transaction, 0, len(entries))
		for _, e := range entries {
			transactions = append(transactions, models.Transaction{
				ID:          e.ID,
				Type:        e.EntryType,
				Amount:      e.Amount,
				Description: e.Description,
				ReferenceID: e.ReferenceID,
				CreatedAt:   e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			})
		}

		return utils.SendJSON(c, http.StatusOK, models.TransactionHistoryResponse{
			Transactions: transactions,
			Total:        total,
			Limit:        limit,
			Offset:       offset,
		})
	}
}

// Balance handles GET /api/v1/balance.
func Balance(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := utils.Wallet(c)

		snapshot, err := app.Balances.Snapshot(c.Context(), wallet)
		if err != nil {
			slog.Error("Balance snapshot failed",
				slog.String("wallet", wallet),
				slog.Any("error", err))
			return utils.SendInternalServerError(c)
		}

		return utils.SendJSON(c, http.StatusOK, models.BalanceResponse{
			WalletAddress:      snapshot.WalletAddress,
			Balance:            snapshot.Balance,
			TotalEarned:        snapshot.TotalEarned,
			Tier:               snapshot.Tier,
			TierMultiplier:     snapshot.TierMultiplier,
			SubscriptionType:   snapshot.SubscriptionType,
			SubscriptionActive: snapshot.SubscriptionActive,
			TodayDialogues:     snapshot.TodayDialogues,
			TodayTokensUsed:    snapshot.TodayTokensUsed,
			CheckIn:            checkInStatusResponse(snapshot.CheckIn),
		})
	}
}

// SyncBalance handles POST /api/v1/balance/sync.
func SyncBalance(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := utils.Wallet(c)

		result, err := app.Balances.SyncBalance(c.Context(), wallet)
		if err != nil {
			slog.Error("Balance sync failed",
				slog.String("wallet", wallet),
				slog.Any("error", err))
			return utils.SendInternalServerError(c)
		}

		return utils.SendJSON(c, http.StatusOK, models.SyncBalanceResponse{
			PreviousBalance: result.PreviousBalance,
			NewBalance:      result.NewBalance,
			Delta:           result.Delta,
		})
	}
}
