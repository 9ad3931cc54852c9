package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/uptrace/bun"
)

type BidRepository interface {
	DB() *bun.DB
	GetByID(ctx context.Context, id int64) (*models.Bid, error)
	GetForListing(ctx context.Context, listingID int64) ([]*models.Bid, error)
	GetHighestForListing(ctx context.Context, listingID int64) (*models.Bid, error)
	GetByBidder(ctx context.Context, bidderID int64) ([]*models.Bid, error)
}

type bidRepository struct {
	*BaseRepository
}

func NewBidRepository(db *bun.DB) BidRepository {
	return &bidRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *bidRepository) DB() *bun.DB {
	return r.GetDB()
}

func (r *bidRepository) GetByID(ctx context.Context, id int64) (*models.Bid, error) {
	bid := new(models.Bid)
	err := r.GetDB().NewSelect().
		Model(bid).
		Where("bid_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "bid", id, err)
	}
	return bid, nil
}

// GetForListing returns all bids on a listing, highest first; amount ties
// order by earliest bid time.
func (r *bidRepository) GetForListing(ctx context.Context, listingID int64) ([]*models.Bid, error) {
	var bids []*models.Bid
	err := r.GetDB().NewSelect().
		Model(&bids).
		Where("listing_id = ?", listingID).
		Order("bid_amount DESC", "bid_time ASC", "bid_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get_for_listing", "bid", err)
	}
	return bids, nil
}

// GetHighestForListing returns the current best bid, or nil when the listing
// has no bids.
func (r *bidRepository) GetHighestForListing(ctx context.Context, listingID int64) (*models.Bid, error) {
	bid := new(models.Bid)
	err := r.GetDB().NewSelect().
		Model(bid).
		Where("listing_id = ?", listingID).
		Order("bid_amount DESC", "bid_time ASC", "bid_id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.HandleError("get_highest", "bid", err)
	}
	return bid, nil
}

func (r *bidRepository) GetByBidder(ctx context.Context, bidderID int64) ([]*models.Bid, error) {
	var bids []*models.Bid
	err := r.GetDB().NewSelect().
		Model(&bids).
		Where("bidder_id = ?", bidderID).
		Order("bid_time DESC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get_by_bidder", "bid", err)
	}
	return bids, nil
}
