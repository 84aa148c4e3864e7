package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/uptrace/bun"
)

type SubscriptionRepository interface {
	GetByWallet(ctx context.Context, wallet string) (*models.Subscription, error)
}

type subscriptionRepository struct {
	*BaseRepository
}

func NewSubscriptionRepository(db *bun.DB) SubscriptionRepository {
	return &subscriptionRepository{BaseRepository: NewBaseRepository(db)}
}

// GetByWallet returns the authoritative subscription record, or nil when
// the wallet has none.
func (r *subscriptionRepository) GetByWallet(ctx context.Context, wallet string) (*models.Subscription, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	sub := new(models.Subscription)
	err := r.db.NewSelect().
		Model(sub).
		Where("wallet_address = ?", wallet).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}
