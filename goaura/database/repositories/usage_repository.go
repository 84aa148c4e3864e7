package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/uptrace/bun"
)

type UsageRepository interface {
	AddUsage(ctx context.Context, wallet string, day time.Time, month string, tokens int64) error
	DailyUsed(ctx context.Context, wallet string, day time.Time) (int64, error)
	MonthlyUsed(ctx context.Context, wallet string, month string) (int64, error)
	InsertLog(ctx context.Context, log *models.AIUsageLog) error
}

type usageRepository struct {
	*BaseRepository
}

func NewUsageRepository(db *bun.DB) UsageRepository {
	return &usageRepository{BaseRepository: NewBaseRepository(db)}
}

// AddUsage merge-increments the daily and monthly counters in one
// transaction. The increment happens at the store ("tokens_used + EXCLUDED"),
// never as an application read-modify-write, so concurrent calls for the
// same wallet cannot lose updates.
func (r *usageRepository) AddUsage(ctx context.Context, wallet string, day time.Time, month string, tokens int64) error {
	now := time.Now()
	return r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		daily := &models.AIDailyUsage{
			WalletAddress: wallet,
			StatDate:      day,
			TokensUsed:    tokens,
			UpdatedAt:     now,
		}
		_, err := tx.NewInsert().
			Model(daily).
			On("CONFLICT (wallet_address, stat_date) DO UPDATE").
			Set("tokens_used = ai_daily_usage.tokens_used + EXCLUDED.tokens_used").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return err
		}

		monthly := &models.AIMonthlyUsage{
			WalletAddress: wallet,
			StatMonth:     month,
			TokensUsed:    tokens,
			UpdatedAt:     now,
		}
		_, err = tx.NewInsert().
			Model(monthly).
			On("CONFLICT (wallet_address, stat_month) DO UPDATE").
			Set("tokens_used = ai_monthly_usage.tokens_used + EXCLUDED.tokens_used").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		return err
	})
}

func (r *usageRepository) DailyUsed(ctx context.Context, wallet string, day time.Time) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	usage := new(models.AIDailyUsage)
	err := r.db.NewSelect().
		Model(usage).
		Where("wallet_address = ?", wallet).
		Where("stat_date = ?", day.Format("2006-01-02")).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return usage.TokensUsed, nil
}

func (r *usageRepository) MonthlyUsed(ctx context.Context, wallet string, month string) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	usage := new(models.AIMonthlyUsage)
	err := r.db.NewSelect().
		Model(usage).
		Where("wallet_address = ?", wallet).
		Where("stat_month = ?", month).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return usage.TokensUsed, nil
}

// InsertLog appends one audit row. Failures are logged, not propagated;
// auditing never blocks the request path.
func (r *usageRepository) InsertLog(ctx context.Context, log *models.AIUsageLog) error {
	log.CreatedAt = time.Now()
	_, err := r.db.NewInsert().Model(log).Exec(ctx)
	if err != nil {
		slog.Error("Failed to write AI usage log",
			slog.String("type", "db"),
			slog.String("wallet", log.WalletAddress),
			slog.Any("error", err))
	}
	return err
}
