package economy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/ellavondegurechaff/goaura/goaura/database/repositories"
)

const adventureBaseReward = 150

// ErrAlreadyCompleted is the expected outcome of a repeated completion of
// the same quest by the same wallet.
var ErrAlreadyCompleted = errors.New("adventure already completed")

type AdventureResult struct {
	Reward         int64
	TierMultiplier float64
	NewBalance     int64
}

type AdventureService struct {
	accounts   repositories.AccountRepository
	adventures repositories.AdventureRepository
}

func NewAdventureService(accounts repositories.AccountRepository, adventures repositories.AdventureRepository) *AdventureService {
	return &AdventureService{accounts: accounts, adventures: adventures}
}

// Complete grants the one-shot quest reward. There is deliberately no
// read-then-act pre-check: the unique (wallet, quest) constraint is the
// race detector for concurrent duplicate attempts. The quest text is
// stored on the completion record for later review.
func (s *AdventureService) Complete(ctx context.Context, wallet, questID, questText string) (*AdventureResult, error) {
	if questID == "" {
		return nil, errors.New("quest id is required")
	}

	account, err := s.accounts.GetOrCreate(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	multiplier := TierMultiplier(account.Tier)
	reward := int64(math.Floor(adventureBaseReward * multiplier))

	record := &models.AdventureCompletion{
		WalletAddress:  wallet,
		QuestID:        questID,
		QuestText:      questText,
		RewardAmount:   reward,
		TierMultiplier: multiplier,
	}
	entry := &models.LedgerEntry{
		WalletAddress: wallet,
		EntryType:     models.EntryTypeAdventure,
		Amount:        reward,
		Description:   fmt.Sprintf("Adventure completed: %s", questID),
		ReferenceID:   fmt.Sprintf("adventure:%s", questID),
	}

	newBalance, err := s.adventures.CreateWithEarning(ctx, record, entry)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateCompletion) {
			return nil, ErrAlreadyCompleted
		}
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	markActive(ctx, s.accounts, wallet)

	slog.Info("Adventure completed",
		slog.String("wallet", wallet),
		slog.String("quest_id", questID),
		slog.Int64("reward", reward))

	return &AdventureResult{
		Reward:         reward,
		TierMultiplier: multiplier,
		NewBalance:     newBalance,
	}, nil
}
