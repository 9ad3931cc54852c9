package listings

import (
	"context"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/gavelworks/baymimic/baymimic/database/repositories"
)

// domains should have their own model, not use the same as database
// using the database one for now

type Repository interface {
	GetBySellerID(ctx context.Context, sellerID int64) ([]*models.Listing, error)
	GetBidsForListing(ctx context.Context, listingID int64) ([]*models.Bid, error)
	CountWatchers(ctx context.Context, listingID int64) (int, error)
}

type repository struct {
	listings repositories.ListingRepository
	bids     repositories.BidRepository
	watches  repositories.WatchRepository
}

func NewRepository(
	listings repositories.ListingRepository,
	bids repositories.BidRepository,
	watches repositories.WatchRepository,
) Repository {
	return &repository{
		listings: listings,
		bids:     bids,
		watches:  watches,
	}
}

func (r *repository) GetBySellerID(ctx context.Context, sellerID int64) ([]*models.Listing, error) {
	return r.listings.GetBySellerID(ctx, sellerID)
}

func (r *repository) GetBidsForListing(ctx context.Context, listingID int64) ([]*models.Bid, error) {
	return r.bids.GetForListing(ctx, listingID)
}

func (r *repository) CountWatchers(ctx context.Context, listingID int64) (int, error) {
	return r.watches.CountForListing(ctx, listingID)
}
