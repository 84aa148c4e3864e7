package economy

import (
	"context"
	"testing"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/ellavondegurechaff/goaura/goaura/database/repositories"
)

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

// fakeAccounts serves a fixed account per wallet and records cache repairs.
type fakeAccounts struct {
	accounts    map[string]*models.Account
	repairedTo  string
	repaired    chan struct{}
	getOrCreate int
	touched     []string
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		accounts: make(map[string]*models.Account),
		repaired: make(chan struct{}, 1),
	}
}

func (f *fakeAccounts) GetOrCreate(_ context.Context, wallet string) (*models.Account, error) {
	f.getOrCreate++
	if a, ok := f.accounts[wallet]; ok {
		return a, nil
	}
	a := &models.Account{WalletAddress: wallet, Tier: 1}
	f.accounts[wallet] = a
	return a, nil
}

func (f *fakeAccounts) GetByWallet(_ context.Context, wallet string) (*models.Account, error) {
	return f.accounts[wallet], nil
}

func (f *fakeAccounts) TouchLastActive(_ context.Context, wallet string) error {
	f.touched = append(f.touched, wallet)
	return nil
}

func (f *fakeAccounts) UpdateSubscriptionType(_ context.Context, _, plan string) error {
	f.repairedTo = plan
	select {
	case f.repaired <- struct{}{}:
	default:
	}
	return nil
}

// fakeCheckIns keeps check-in rows in memory and enforces the per-day
// uniqueness the real table carries.
type fakeCheckIns struct {
	rows    []*models.CheckIn
	balance int64
	entries []*models.LedgerEntry
}

func (f *fakeCheckIns) CreateWithEarning(_ context.Context, record *models.CheckIn, entry *models.LedgerEntry) (int64, error) {
	for _, r := range f.rows {
		if r.WalletAddress == record.WalletAddress && r.CheckInDate.Equal(record.CheckInDate) {
			return 0, repositories.ErrDuplicateCheckIn
		}
	}
	f.rows = append(f.rows, record)
	f.entries = append(f.entries, entry)
	f.balance += entry.Amount
	return f.balance, nil
}

func (f *fakeCheckIns) GetByDate(_ context.Context, wallet string, day time.Time) (*models.CheckIn, error) {
	for _, r := range f.rows {
		if r.WalletAddress == wallet && r.CheckInDate.Equal(day) {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeCheckIns) GetLatest(_ context.Context, wallet string) (*models.CheckIn, error) {
	var latest *models.CheckIn
	for _, r := range f.rows {
		if r.WalletAddress != wallet {
			continue
		}
		if latest == nil || r.CheckInDate.After(latest.CheckInDate) {
			latest = r
		}
	}
	return latest, nil
}

func (f *fakeCheckIns) CountByWallet(_ context.Context, wallet string) (int, error) {
	n := 0
	for _, r := range f.rows {
		if r.WalletAddress == wallet {
			n++
		}
	}
	return n, nil
}

// fakeAdventures enforces the one-shot (wallet, quest) constraint.
type fakeAdventures struct {
	rows    []*models.AdventureCompletion
	balance int64
}

func (f *fakeAdventures) CreateWithEarning(_ context.Context, record *models.AdventureCompletion, entry *models.LedgerEntry) (int64, error) {
	for _, r := range f.rows {
		if r.WalletAddress == record.WalletAddress && r.QuestID == record.QuestID {
			return 0, repositories.ErrDuplicateCompletion
		}
	}
	f.rows = append(f.rows, record)
	f.balance += entry.Amount
	return f.balance, nil
}

// fakeDialogues has no uniqueness, matching the real table. createdAt
// stamps new rows so day-boundary behavior stays deterministic.
type fakeDialogues struct {
	rows      []*models.DialogueReward
	balance   int64
	createdAt time.Time
}

func (f *fakeDialogues) CountForDay(_ context.Context, wallet string, dayStart time.Time) (int, error) {
	n := 0
	for _, r := range f.rows {
		if r.WalletAddress == wallet && !r.CreatedAt.Before(dayStart) {
			n++
		}
	}
	return n, nil
}

func (f *fakeDialogues) FirstChatClaimed(_ context.Context, wallet string, dayStart time.Time) (bool, error) {
	for _, r := range f.rows {
		if r.WalletAddress == wallet && r.IsFirstChat && !r.CreatedAt.Before(dayStart) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDialogues) CreateWithEarning(_ context.Context, record *models.DialogueReward, entry *models.LedgerEntry) (int64, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = f.createdAt
	}
	f.rows = append(f.rows, record)
	f.balance += entry.Amount
	return f.balance, nil
}

// fakeLedger answers sync and history calls with canned figures.
type fakeLedger struct {
	entries  []*models.LedgerEntry
	previous int64
	current  int64
	earned   int64
	syncs    int
}

func (f *fakeLedger) RecordEarning(_ context.Context, entry *models.LedgerEntry) (int64, error) {
	f.entries = append(f.entries, entry)
	return 0, nil
}

func (f *fakeLedger) History(_ context.Context, wallet string, limit, offset int) ([]*models.LedgerEntry, int, error) {
	var out []*models.LedgerEntry
	for _, e := range f.entries {
		if e.WalletAddress == wallet {
			out = append(out, e)
		}
	}
	total := len(out)
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeLedger) SumEarned(context.Context, string) (int64, error) {
	return f.earned, nil
}

func (f *fakeLedger) SyncBalance(context.Context, string) (int64, int64, error) {
	f.syncs++
	return f.previous, f.current, nil
}

// fakeSubscriptions serves one optional subscription row.
type fakeSubscriptions struct {
	sub *models.Subscription
}

func (f *fakeSubscriptions) GetByWallet(context.Context, string) (*models.Subscription, error) {
	return f.sub, nil
}

// fakeUsage satisfies the usage reads Snapshot makes.
type fakeUsage struct {
	daily int64
}

func (f *fakeUsage) AddUsage(context.Context, string, time.Time, string, int64) error {
	return nil
}

func (f *fakeUsage) DailyUsed(context.Context, string, time.Time) (int64, error) {
	return f.daily, nil
}

func (f *fakeUsage) MonthlyUsed(context.Context, string, string) (int64, error) {
	return 0, nil
}

func (f *fakeUsage) InsertLog(context.Context, *models.AIUsageLog) error { return nil }
