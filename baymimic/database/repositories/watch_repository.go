package repositories

import (
	"context"
	"time"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/uptrace/bun"
)

type WatchRepository interface {
	Add(ctx context.Context, userID, listingID int64) error
	Remove(ctx context.Context, userID, listingID int64) error
	CountForListing(ctx context.Context, listingID int64) (int, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.ListingWatch, error)
}

type watchRepository struct {
	*BaseRepository
}

func NewWatchRepository(db *bun.DB) WatchRepository {
	return &watchRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *watchRepository) Add(ctx context.Context, userID, listingID int64) error {
	watch := &models.ListingWatch{
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}

	result, err := r.GetDB().NewInsert().
		Model(watch).
		On("CONFLICT (user_id, listing_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return r.HandleError("add", "watch", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return &ConflictError{Entity: "watch", Field: "listing_id", Value: listingID}
	}
	return nil
}

func (r *watchRepository) Remove(ctx context.Context, userID, listingID int64) error {
	result, err := r.GetDB().NewDelete().
		Model((*models.ListingWatch)(nil)).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Exec(ctx)
	if err != nil {
		return r.HandleError("remove", "watch", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return &NotFoundError{Entity: "watch", ID: listingID}
	}
	return nil
}

func (r *watchRepository) CountForListing(ctx context.Context, listingID int64) (int, error) {
	return r.Count(ctx, "watch", r.GetDB().NewSelect().
		Model((*models.ListingWatch)(nil)).
		Where("listing_id = ?", listingID))
}

func (r *watchRepository) ListForUser(ctx context.Context, userID int64) ([]*models.ListingWatch, error) {
	var watches []*models.ListingWatch
	err := r.GetDB().NewSelect().
		Model(&watches).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list_for_user", "watch", err)
	}
	return watches, nil
}
