package economy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/ellavondegurechaff/goaura/goaura/database/repositories"
	"golang.org/x/sync/singleflight"
)

const (
	historyDefaultLimit = 50
	historyMaxLimit     = 200
)

type SyncResult struct {
	PreviousBalance int64
	NewBalance      int64
	Delta           int64
}

// BalanceSnapshot is the full per-wallet status served by the balance
// endpoint.
type BalanceSnapshot struct {
	WalletAddress      string
	Balance            int64
	TotalEarned        int64
	Tier               int
	TierMultiplier     float64
	SubscriptionType   string
	SubscriptionActive bool
	TodayDialogues     int
	TodayTokensUsed    int64
	CheckIn            *CheckInStatus
}

type BalanceService struct {
	accounts      repositories.AccountRepository
	subscriptions repositories.SubscriptionRepository
	ledger        repositories.LedgerRepository
	dialogues     repositories.DialogueRepository
	usage         repositories.UsageRepository
	checkIns      *CheckInService
	syncGroup     singleflight.Group
	now           func() time.Time
}

func NewBalanceService(
	accounts repositories.AccountRepository,
	subscriptions repositories.SubscriptionRepository,
	ledger repositories.LedgerRepository,
	dialogues repositories.DialogueRepository,
	usage repositories.UsageRepository,
	checkIns *CheckInService,
) *BalanceService {
	return &BalanceService{
		accounts:      accounts,
		subscriptions: subscriptions,
		ledger:        ledger,
		dialogues:     dialogues,
		usage:         usage,
		checkIns:      checkIns,
		now:           time.Now,
	}
}

// History returns ledger entries newest-first with the total count.
func (s *BalanceService) History(ctx context.Context, wallet string, limit, offset int) ([]*models.LedgerEntry, int, error) {
	if limit <= 0 {
		limit = historyDefaultLimit
	}
	if limit > historyMaxLimit {
		limit = historyMaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.ledger.History(ctx, wallet, limit, offset)
}

// SyncBalance recomputes the cached balance from the ledger. Concurrent
// calls for the same wallet collapse into one recomputation; the operation
// is idempotent and safe to invoke repeatedly.
func (s *BalanceService) SyncBalance(ctx context.Context, wallet string) (*SyncResult, error) {
	v, err, _ := s.syncGroup.Do(wallet, func() (interface{}, error) {
		if _, err := s.accounts.GetOrCreate(ctx, wallet); err != nil {
			return nil, fmt.Errorf("failed to load account: %w", err)
		}
		previous, current, err := s.ledger.SyncBalance(ctx, wallet)
		if err != nil {
			return nil, fmt.Errorf("failed to sync balance: %w", err)
		}
		return &SyncResult{
			PreviousBalance: previous,
			NewBalance:      current,
			Delta:           current - previous,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*SyncResult), nil
}

// Snapshot assembles the balance status view. When the cached subscription
// type disagrees with the authoritative record, the authoritative value is
// served immediately and the cache is repaired in the background.
func (s *BalanceService) Snapshot(ctx context.Context, wallet string) (*BalanceSnapshot, error) {
	account, err := s.accounts.GetOrCreate(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	subType := account.SubscriptionType
	subActive := false
	sub, err := s.subscriptions.GetByWallet(ctx, wallet)
	if err != nil {
		// Subscription lookup is best-effort; the cached value still serves.
		slog.Warn("Failed to load subscription record",
			slog.String("wallet", wallet),
			slog.Any("error", err))
	} else if sub != nil {
		subActive = sub.Active && (sub.ExpiresAt.IsZero() || sub.ExpiresAt.After(s.now()))
		if sub.Plan != account.SubscriptionType {
			subType = sub.Plan
			s.repairSubscriptionCache(wallet, sub.Plan)
		}
	}

	totalEarned, err := s.ledger.SumEarned(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to total earnings: %w", err)
	}

	dayStart := utcDay(s.now())
	todayDialogues, err := s.dialogues.CountForDay(ctx, wallet, dayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's dialogues: %w", err)
	}
	todayTokens, err := s.usage.DailyUsed(ctx, wallet, dayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to read today's token usage: %w", err)
	}
	checkInStatus, err := s.checkIns.Status(ctx, wallet)
	if err != nil {
		return nil, err
	}

	return &BalanceSnapshot{
		WalletAddress:      wallet,
		Balance:            account.Balance,
		TotalEarned:        totalEarned,
		Tier:               account.Tier,
		TierMultiplier:     TierMultiplier(account.Tier),
		SubscriptionType:   subType,
		SubscriptionActive: subActive,
		TodayDialogues:     todayDialogues,
		TodayTokensUsed:    todayTokens,
		CheckIn:            checkInStatus,
	}, nil
}

// repairSubscriptionCache rewrites the stale cached field off the request
// path with its own timeout; the read that detected the drift has already
// been served from the authoritative record.
func (s *BalanceService) repairSubscriptionCache(wallet, plan string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.accounts.UpdateSubscriptionType(ctx, wallet, plan); err != nil {
			slog.Error("Failed to repair subscription cache",
				slog.String("wallet", wallet),
				slog.Any("error", err))
			return
		}
		slog.Info("Repaired stale subscription cache",
			slog.String("wallet", wallet),
			slog.String("plan", plan))
	}()
}
