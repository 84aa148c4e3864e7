package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/uptrace/bun"
)

type CheckInRepository interface {
	CreateWithEarning(ctx context.Context, record *models.CheckIn, entry *models.LedgerEntry) (int64, error)
	GetByDate(ctx context.Context, wallet string, day time.Time) (*models.CheckIn, error)
	GetLatest(ctx context.Context, wallet string) (*models.CheckIn, error)
	CountByWallet(ctx context.Context, wallet string) (int, error)
}

type checkInRepository struct {
	*BaseRepository
}

func NewCheckInRepository(db *bun.DB) CheckInRepository {
	return &checkInRepository{BaseRepository: NewBaseRepository(db)}
}

// CreateWithEarning inserts the check-in row and credits the reward in one
// transaction. The insert goes first so a concurrent duplicate trips the
// unique (wallet, day) constraint before any balance is touched; that
// violation surfaces as ErrDuplicateCheckIn, not a fatal error.
func (r *checkInRepository) CreateWithEarning(ctx context.Context, record *models.CheckIn, entry *models.LedgerEntry) (int64, error) {
	var newBalance int64
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		record.CreatedAt = time.Now()
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			if IsUniqueViolation(err) {
				return ErrDuplicateCheckIn
			}
			return err
		}

		balance, err := applyEarning(ctx, tx, entry)
		if err != nil {
			return err
		}
		newBalance = balance
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (r *checkInRepository) GetByDate(ctx context.Context, wallet string, day time.Time) (*models.CheckIn, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	record := new(models.CheckIn)
	err := r.db.NewSelect().
		Model(record).
		Where("wallet_address = ?", wallet).
		Where("check_in_date = ?", day.Format("2006-01-02")).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (r *checkInRepository) GetLatest(ctx context.Context, wallet string) (*models.CheckIn, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	record := new(models.CheckIn)
	err := r.db.NewSelect().
		Model(record).
		Where("wallet_address = ?", wallet).
		Order("check_in_date DESC").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (r *checkInRepository) CountByWallet(ctx context.Context, wallet string) (int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	return r.db.NewSelect().
		Model((*models.CheckIn)(nil)).
		Where("wallet_address = ?", wallet).
		Count(ctx)
}
