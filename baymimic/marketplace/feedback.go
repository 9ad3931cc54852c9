package marketplace

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/gavelworks/baymimic/baymimic/database/repositories"
	"github.com/uptrace/bun"
)

// FeedbackManager records post-sale feedback and keeps account ratings in
// step with it. Ratings are recomputed synchronously in the same transaction
// as the insert rather than by a database trigger, so a rollback never
// strands a stale aggregate.
type FeedbackManager struct {
	db *bun.DB
}

func NewFeedbackManager(db *bun.DB) *FeedbackManager {
	return &FeedbackManager{db: db}
}

// SubmitFeedback records one feedback row from a transaction party about the
// other and returns its ID. Passing an empty sentiment derives it from the
// rating. A second submission by the same author on the same transaction
// fails with DuplicateFeedbackError.
func (m *FeedbackManager) SubmitFeedback(ctx context.Context, transactionID, authorID, targetID int64, rating int, sentiment models.Sentiment, comment string) (int64, error) {
	if rating < 1 || rating > 5 {
		return 0, &repositories.ValidationError{Entity: "feedback", Field: "rating", Reason: "must be between 1 and 5"}
	}
	if sentiment == "" {
		sentiment = SentimentForRating(rating)
	}
	if !sentiment.Valid() {
		return 0, &repositories.ValidationError{Entity: "feedback", Field: "sentiment", Reason: "must be positive, neutral or negative"}
	}

	var feedbackID int64
	var newRating float64
	err := m.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		txn := new(models.Transaction)
		err := tx.NewSelect().
			Model(txn).
			Where("transaction_id = ?", transactionID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &repositories.NotFoundError{Entity: "transaction", ID: transactionID}
			}
			return err
		}

		if authorID != txn.BuyerID && authorID != txn.SellerID {
			return &repositories.ValidationError{Entity: "feedback", Field: "author_user_id", Reason: "must be a party to the transaction"}
		}
		counterparty := txn.SellerID
		if authorID == txn.SellerID {
			counterparty = txn.BuyerID
		}
		if targetID != counterparty {
			return &repositories.ValidationError{Entity: "feedback", Field: "target_user_id", Reason: "must be the other party to the transaction"}
		}

		exists, err := tx.NewSelect().
			Model((*models.Feedback)(nil)).
			Where("transaction_id = ? AND author_user_id = ?", transactionID, authorID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if err := CheckFeedbackUnique(transactionID, authorID, exists); err != nil {
			return err
		}

		// A pre-existing row from the counterparty makes this exchange
		// reciprocated on both sides.
		reciprocated, err := tx.NewSelect().
			Model((*models.Feedback)(nil)).
			Where("transaction_id = ? AND author_user_id = ?", transactionID, targetID).
			Exists(ctx)
		if err != nil {
			return err
		}

		feedback := &models.Feedback{
			TransactionID: transactionID,
			AuthorID:      authorID,
			TargetID:      targetID,
			Rating:        rating,
			Sentiment:     sentiment,
			Comment:       comment,
			Reciprocated:  reciprocated,
			CreatedAt:     time.Now(),
		}
		if _, err := tx.NewInsert().Model(feedback).Exec(ctx); err != nil {
			return err
		}
		feedbackID = feedback.ID

		if reciprocated {
			_, err = tx.NewUpdate().
				Model((*models.Feedback)(nil)).
				Set("reciprocated = TRUE").
				Where("transaction_id = ? AND author_user_id = ?", transactionID, targetID).
				Exec(ctx)
			if err != nil {
				return err
			}
		}

		newRating, err = recomputeRating(ctx, tx, targetID)
		return err
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Feedback recorded",
		"type", "market",
		"feedback_id", feedbackID,
		"transaction_id", transactionID,
		"target_id", targetID,
		"rating", rating,
		"target_rating", newRating,
	)
	return feedbackID, nil
}

// RecomputeRating recalculates an account's rating from scratch and returns
// the stored value. The feedback path already does this inline; this entry
// point exists for repair after manual data edits.
func (m *FeedbackManager) RecomputeRating(ctx context.Context, userID int64) (float64, error) {
	var rating float64
	err := m.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		rating, err = recomputeRating(ctx, tx, userID)
		return err
	})
	return rating, err
}

func recomputeRating(ctx context.Context, tx bun.Tx, userID int64) (float64, error) {
	var mean float64
	err := tx.NewSelect().
		Model((*models.Feedback)(nil)).
		ColumnExpr("COALESCE(AVG(rating), 0)").
		Where("target_user_id = ?", userID).
		Scan(ctx, &mean)
	if err != nil {
		return 0, err
	}

	rounded := RoundRating(mean)
	result, err := tx.NewUpdate().
		Model((*models.UserAccount)(nil)).
		Set("rating = ?", rounded).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return 0, &repositories.NotFoundError{Entity: "account", ID: userID}
	}
	return rounded, nil
}
