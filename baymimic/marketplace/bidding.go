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

// BidManager validates and records bids. All checks and the insert run in a
// single transaction holding a row lock on the listing, so two concurrent
// bids at the same amount cannot both pass the minimum check.
type BidManager struct {
	db       *bun.DB
	listings repositories.ListingRepository
}

func NewBidManager(db *bun.DB, listings repositories.ListingRepository) *BidManager {
	return &BidManager{
		db:       db,
		listings: listings,
	}
}

// PlaceBid records a bid and returns its ID. The minimum acceptable amount
// is the start price when the listing has no bids, otherwise one unit above
// the current maximum. Accepting a bid demotes the listing's previously
// active bids to outbid.
func (m *BidManager) PlaceBid(ctx context.Context, listingID, bidderID, amount int64, isProxy bool) (int64, error) {
	if amount <= 0 {
		return 0, &repositories.ValidationError{Entity: "bid", Field: "bid_amount", Reason: "must be positive"}
	}

	var bidID int64
	err := m.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		listing := new(models.Listing)
		err := tx.NewSelect().
			Model(listing).
			Where("listing_id = ?", listingID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &repositories.NotFoundError{Entity: "listing", ID: listingID}
			}
			return err
		}

		now := time.Now()
		if err := CheckBiddable(listing, bidderID, now); err != nil {
			return err
		}

		var currentMax int64
		err = tx.NewSelect().
			Model((*models.Bid)(nil)).
			ColumnExpr("COALESCE(MAX(bid_amount), 0)").
			Where("listing_id = ?", listingID).
			Where("bid_status != ?", models.BidStatusRetracted).
			Scan(ctx, &currentMax)
		if err != nil {
			return err
		}

		if err := CheckBidAmount(listingID, amount, listing.StartPrice, currentMax); err != nil {
			return err
		}

		_, err = tx.NewUpdate().
			Model((*models.Bid)(nil)).
			Set("bid_status = ?", models.BidStatusOutbid).
			Where("listing_id = ?", listingID).
			Where("bid_status = ?", models.BidStatusActive).
			Exec(ctx)
		if err != nil {
			return err
		}

		bid := &models.Bid{
			ListingID: listingID,
			BidderID:  bidderID,
			Amount:    amount,
			BidTime:   now,
			Status:    models.BidStatusActive,
			IsProxy:   isProxy,
		}
		if _, err := tx.NewInsert().Model(bid).Exec(ctx); err != nil {
			return err
		}
		bidID = bid.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Bid accepted",
		"type", "market",
		"bid_id", bidID,
		"listing_id", listingID,
		"bidder_id", bidderID,
		"amount", amount,
	)
	return bidID, nil
}
