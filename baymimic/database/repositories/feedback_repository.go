package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/uptrace/bun"
)

type FeedbackRepository interface {
	DB() *bun.DB
	GetByID(ctx context.Context, id int64) (*models.Feedback, error)
	GetByTransactionAndAuthor(ctx context.Context, transactionID, authorID int64) (*models.Feedback, error)
	GetForTarget(ctx context.Context, targetID int64) ([]*models.Feedback, error)
}

type feedbackRepository struct {
	*BaseRepository
}

func NewFeedbackRepository(db *bun.DB) FeedbackRepository {
	return &feedbackRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *feedbackRepository) DB() *bun.DB {
	return r.GetDB()
}

func (r *feedbackRepository) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	feedback := new(models.Feedback)
	err := r.GetDB().NewSelect().
		Model(feedback).
		Where("feedback_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "feedback", id, err)
	}
	return feedback, nil
}

// GetByTransactionAndAuthor returns nil when no feedback exists for the pair.
func (r *feedbackRepository) GetByTransactionAndAuthor(ctx context.Context, transactionID, authorID int64) (*models.Feedback, error) {
	feedback := new(models.Feedback)
	err := r.GetDB().NewSelect().
		Model(feedback).
		Where("transaction_id = ? AND author_user_id = ?", transactionID, authorID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.HandleError("get_by_pair", "feedback", err)
	}
	return feedback, nil
}

func (r *feedbackRepository) GetForTarget(ctx context.Context, targetID int64) ([]*models.Feedback, error) {
	var feedback []*models.Feedback
	err := r.GetDB().NewSelect().
		Model(&feedback).
		Where("target_user_id = ?", targetID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get_for_target", "feedback", err)
	}
	return feedback, nil
}
