package repositories

import (
	"context"
	"time"

	"github.com/ellavondegurechaff/goaura/goaura/database/models"
	"github.com/uptrace/bun"
)

type DialogueRepository interface {
	CountForDay(ctx context.Context, wallet string, dayStart time.Time) (int, error)
	FirstChatClaimed(ctx context.Context, wallet string, dayStart time.Time) (bool, error)
	CreateWithEarning(ctx context.Context, record *models.DialogueReward, entry *models.LedgerEntry) (int64, error)
}

type dialogueRepository struct {
	*BaseRepository
}

func NewDialogueRepository(db *bun.DB) DialogueRepository {
	return &dialogueRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *dialogueRepository) CountForDay(ctx context.Context, wallet string, dayStart time.Time) (int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	return r.db.NewSelect().
		Model((*models.DialogueReward)(nil)).
		Where("wallet_address = ?", wallet).
		Where("created_at >= ?", dayStart).
		Where("created_at < ?", dayStart.Add(24*time.Hour)).
		Count(ctx)
}

// FirstChatClaimed reports whether any record today already carries the
// first-chat flag, so the bonus is granted once per day regardless of what
// the client claims.
func (r *dialogueRepository) FirstChatClaimed(ctx context.Context, wallet string, dayStart time.Time) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	return r.db.NewSelect().
		Model((*models.DialogueReward)(nil)).
		Where("wallet_address = ?", wallet).
		Where("is_first_chat = ?", true).
		Where("created_at >= ?", dayStart).
		Where("created_at < ?", dayStart.Add(24*time.Hour)).
		Exists(ctx)
}

// CreateWithEarning inserts the reward record and credits the balance in
// one transaction. This path has no uniqueness constraint.
func (r *dialogueRepository) CreateWithEarning(ctx context.Context, record *models.DialogueReward, entry *models.LedgerEntry) (int64, error) {
	var newBalance int64
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		record.CreatedAt = time.Now()
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
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
