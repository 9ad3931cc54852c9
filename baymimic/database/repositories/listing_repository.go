package repositories

import (
	"context"
	"time"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/uptrace/bun"
)

type ListingRepository interface {
	DB() *bun.DB
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id int64) (*models.Listing, error)
	GetBySellerID(ctx context.Context, sellerID int64) ([]*models.Listing, error)
	GetActive(ctx context.Context) ([]*models.Listing, error)
	GetExpiredIDs(ctx context.Context) ([]int64, error)
	IncrementViewCount(ctx context.Context, id int64) error
}

type listingRepository struct {
	*BaseRepository
}

func NewListingRepository(db *bun.DB) ListingRepository {
	return &listingRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *listingRepository) DB() *bun.DB {
	return r.GetDB()
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	if listing.Title == "" {
		return &ValidationError{Entity: "listing", Field: "title", Reason: "must not be empty"}
	}
	if listing.StartPrice <= 0 {
		return &ValidationError{Entity: "listing", Field: "start_price", Reason: "must be positive"}
	}
	if listing.Quantity <= 0 {
		listing.Quantity = 1
	}

	listing.Status = models.ListingStatusActive
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = time.Now()

	_, err := r.GetDB().NewInsert().Model(listing).Exec(ctx)
	return r.HandleError("create", "listing", err)
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	listing := new(models.Listing)
	err := r.GetDB().NewSelect().
		Model(listing).
		Where("listing_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "listing", id, err)
	}
	return listing, nil
}

func (r *listingRepository) GetBySellerID(ctx context.Context, sellerID int64) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.GetDB().NewSelect().
		Model(&listings).
		Where("seller_id = ?", sellerID).
		Order("end_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get_by_seller", "listing", err)
	}
	return listings, nil
}

func (r *listingRepository) GetActive(ctx context.Context) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.GetDB().NewSelect().
		Model(&listings).
		Where("listing_status = ?", models.ListingStatusActive).
		Where("end_date > ?", time.Now()).
		Order("end_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get_active", "listing", err)
	}
	return listings, nil
}

// GetExpiredIDs returns active listings whose end date has passed. Callers
// finalize each one individually; a listing settled by a concurrent sweep in
// the meantime fails its finalize with a clean not-active error.
func (r *listingRepository) GetExpiredIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.GetDB().NewSelect().
		Model((*models.Listing)(nil)).
		Column("listing_id").
		Where("listing_status = ?", models.ListingStatusActive).
		Where("end_date <= ?", time.Now()).
		Order("end_date ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, r.HandleError("get_expired", "listing", err)
	}
	return ids, nil
}

func (r *listingRepository) IncrementViewCount(ctx context.Context, id int64) error {
	result, err := r.GetDB().NewUpdate().
		Model((*models.Listing)(nil)).
		Set("view_count = view_count + 1").
		Where("listing_id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("increment_views", "listing", id, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return &NotFoundError{Entity: "listing", ID: id}
	}
	return nil
}
