package economy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/ellavondegurechaff/goaura/goaura/database/repositories"
)

// checkInBaseRewards is the 7-day reward cycle indexed by weekly progress.
var checkInBaseRewards = [7]int64{20, 20, 20, 50, 50, 50, 150}

// AlreadyCheckedInError is the expected outcome of a repeated check-in on
// the same UTC day. Callers must not retry.
type AlreadyCheckedInError struct {
	SecondsUntilReset int64
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("already checked in today, resets in %ds", e.SecondsUntilReset)
}

type CheckInResult struct {
	CheckInDate       string
	ConsecutiveDays   int
	WeeklyProgress    int
	Reward            int64
	TierMultiplier    float64
	NewBalance        int64
	SecondsUntilReset int64
}

type CheckInStatus struct {
	HasCheckedInToday bool
	ConsecutiveDays   int
	WeeklyProgress    int
	TotalCheckInDays  int
	LastCheckInDate   string
	SecondsUntilReset int64
}

type CheckInService struct {
	accounts repositories.AccountRepository
	checkIns repositories.CheckInRepository
	now      func() time.Time
}

func NewCheckInService(accounts repositories.AccountRepository, checkIns repositories.CheckInRepository) *CheckInService {
	return &CheckInService{
		accounts: accounts,
		checkIns: checkIns,
		now:      time.Now,
	}
}

// CheckIn runs the daily check-in state machine. The streak continues only
// when yesterday has a record; any gap resets consecutive days to 1 while
// the weekly position keeps cycling 1..7 off the streak length. The insert
// is the idempotency gate: a concurrent duplicate surfaces the unique
// constraint, never a double credit.
func (s *CheckInService) CheckIn(ctx context.Context, wallet string) (*CheckInResult, error) {
	account, err := s.accounts.GetOrCreate(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	now := s.now()
	today := utcDay(now)

	// Fast path for the common double-tap; the insert below still guards
	// the race.
	existing, err := s.checkIns.GetByDate(ctx, wallet, today)
	if err != nil {
		return nil, fmt.Errorf("failed to query today's check-in: %w", err)
	}
	if existing != nil {
		return nil, &AlreadyCheckedInError{SecondsUntilReset: secondsUntilReset(now)}
	}

	consecutive := 1
	latest, err := s.checkIns.GetLatest(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest check-in: %w", err)
	}
	if latest != nil && utcDay(latest.CheckInDate).Equal(today.Add(-24*time.Hour)) {
		consecutive = latest.ConsecutiveDays + 1
	}

	weekly := ((consecutive - 1) % 7) + 1
	multiplier := TierMultiplier(account.Tier)
	reward := int64(math.Floor(float64(checkInBaseRewards[weekly-1]) * multiplier))

	record := &models.CheckIn{
		WalletAddress:   wallet,
		CheckInDate:     today,
		ConsecutiveDays: consecutive,
		WeeklyProgress:  weekly,
		RewardAmount:    reward,
		TierMultiplier:  multiplier,
	}
	entry := &models.LedgerEntry{
		WalletAddress: wallet,
		EntryType:     models.EntryTypeCheckIn,
		Amount:        reward,
		Description:   fmt.Sprintf("Daily check-in day %d (week position %d)", consecutive, weekly),
		ReferenceID:   fmt.Sprintf("checkin:%s", today.Format("2006-01-02")),
	}

	newBalance, err := s.checkIns.CreateWithEarning(ctx, record, entry)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateCheckIn) {
			return nil, &AlreadyCheckedInError{SecondsUntilReset: secondsUntilReset(now)}
		}
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}

	markActive(ctx, s.accounts, wallet)

	slog.Info("Check-in recorded",
		slog.String("wallet", wallet),
		slog.Int("consecutive_days", consecutive),
		slog.Int("weekly_progress", weekly),
		slog.Int64("reward", reward))

	return &CheckInResult{
		CheckInDate:       today.Format("2006-01-02"),
		ConsecutiveDays:   consecutive,
		WeeklyProgress:    weekly,
		Reward:            reward,
		TierMultiplier:    multiplier,
		NewBalance:        newBalance,
		SecondsUntilReset: secondsUntilReset(now),
	}, nil
}

// Status reports the current streak without mutating anything. A streak is
// still alive when the latest record is yesterday; older than that, the
// displayed streak drops to zero until the next check-in restarts it.
func (s *CheckInService) Status(ctx context.Context, wallet string) (*CheckInStatus, error) {
	now := s.now()
	today := utcDay(now)

	latest, err := s.checkIns.GetLatest(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest check-in: %w", err)
	}
	total, err := s.checkIns.CountByWallet(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to count check-ins: %w", err)
	}

	status := &CheckInStatus{
		TotalCheckInDays:  total,
		SecondsUntilReset: secondsUntilReset(now),
	}
	if latest == nil {
		return status, nil
	}

	latestDay := utcDay(latest.CheckInDate)
	status.LastCheckInDate = latestDay.Format("2006-01-02")

	switch {
	case latestDay.Equal(today):
		status.HasCheckedInToday = true
		status.ConsecutiveDays = latest.ConsecutiveDays
		status.WeeklyProgress = latest.WeeklyProgress
	case latestDay.Equal(today.Add(-24 * time.Hour)):
		status.ConsecutiveDays = latest.ConsecutiveDays
		status.WeeklyProgress = latest.WeeklyProgress
	}

	return status, nil
}
