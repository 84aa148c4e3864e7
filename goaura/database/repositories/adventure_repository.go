package repositories

import (
	"context"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/uptrace/bun"
)

type AdventureRepository interface {
	CreateWithEarning(ctx context.Context, record *models.AdventureCompletion, entry *models.LedgerEntry) (int64, error)
}

type adventureRepository struct {
	*BaseRepository
}

func NewAdventureRepository(db *bun.DB) AdventureRepository {
	return &adventureRepository{BaseRepository: NewBaseRepository(db)}
}

// CreateWithEarning grants a one-shot quest reward. The unique
// (wallet, quest_id) constraint is the race detector: a second attempt,
// concurrent or not, returns ErrDuplicateCompletion with no balance change.
func (r *adventureRepository) CreateWithEarning(ctx context.Context, record *models.AdventureCompletion, entry *models.LedgerEntry) (int64, error) {
	var newBalance int64
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		record.CompletedAt = time.Now()
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			if IsUniqueViolation(err) {
				return ErrDuplicateCompletion
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
