package economy

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/ellavondegurechaff/goaura/goaura/database/repositories"
)

const (
	dialogueDailyCap      = 50
	dialogueBaseReward    = 10
	dialogueOverCapReward = 1
	firstChatBonus        = 30
)

type DialogueResult struct {
	DialogueIndex  int
	Reward         int64
	Base           int64
	FirstChatBonus int64
	ResonanceBonus int64
	TierMultiplier float64
	IsOverLimit    bool
	NewBalance     int64
}

type DialogueService struct {
	accounts  repositories.AccountRepository
	dialogues repositories.DialogueRepository
	now       func() time.Time
}

func NewDialogueService(accounts repositories.AccountRepository, dialogues repositories.DialogueRepository) *DialogueService {
	return &DialogueService{
		accounts:  accounts,
		dialogues: dialogues,
		now:       time.Now,
	}
}

// resonanceBonus grades a 0-100 resonance score into a bonus.
func resonanceBonus(score int) int64 {
	switch {
	case score >= 90:
		return 100
	case score >= 70:
		return 30
	case score >= 40:
		return 10
	default:
		return 0
	}
}

// Reward computes and credits the reward for one conversation turn. Calls
// past the daily cap still succeed with a minimal reward instead of being
// denied. The first-chat bonus is verified against today's records, not
// trusted from the caller. This path carries no idempotency key: concurrent
// duplicate submissions for the same turn both credit.
func (s *DialogueService) Reward(ctx context.Context, wallet, sessionID string, claimsFirstChat bool, resonanceScore int) (*DialogueResult, error) {
	account, err := s.accounts.GetOrCreate(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	dayStart := utcDay(s.now())
	dailyCount, err := s.dialogues.CountForDay(ctx, wallet, dayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's dialogues: %w", err)
	}

	isOverLimit := dailyCount >= dialogueDailyCap
	base := int64(dialogueBaseReward)
	if isOverLimit {
		base = dialogueOverCapReward
	}

	var chatBonus int64
	isFirstChat := false
	if claimsFirstChat {
		claimed, err := s.dialogues.FirstChatClaimed(ctx, wallet, dayStart)
		if err != nil {
			return nil, fmt.Errorf("failed to verify first chat: %w", err)
		}
		if !claimed {
			chatBonus = firstChatBonus
			isFirstChat = true
		}
	}

	resBonus := resonanceBonus(resonanceScore)
	multiplier := TierMultiplier(account.Tier)
	reward := int64(math.Floor(float64(base+chatBonus+resBonus) * multiplier))

	record := &models.DialogueReward{
		WalletAddress:  wallet,
		SessionID:      sessionID,
		DialogueIndex:  dailyCount + 1,
		BaseReward:     base,
		FirstChatBonus: chatBonus,
		ResonanceBonus: resBonus,
		TierMultiplier: multiplier,
		RewardAmount:   reward,
		IsFirstChat:    isFirstChat,
		IsOverLimit:    isOverLimit,
	}
	entry := &models.LedgerEntry{
		WalletAddress: wallet,
		EntryType:     models.EntryTypeDialogue,
		Amount:        reward,
		Description:   fmt.Sprintf("Dialogue reward #%d", dailyCount+1),
		ReferenceID:   sessionID,
	}

	newBalance, err := s.dialogues.CreateWithEarning(ctx, record, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to record dialogue reward: %w", err)
	}

	markActive(ctx, s.accounts, wallet)

	slog.Debug("Dialogue reward granted",
		slog.String("wallet", wallet),
		slog.Int("dialogue_index", dailyCount+1),
		slog.Int64("reward", reward),
		slog.Bool("over_limit", isOverLimit))

	return &DialogueResult{
		DialogueIndex:  dailyCount + 1,
		Reward:         reward,
		Base:           base,
		FirstChatBonus: chatBonus,
		ResonanceBonus: resBonus,
		TierMultiplier: multiplier,
		IsOverLimit:    isOverLimit,
		NewBalance:     newBalance,
	}, nil
}
