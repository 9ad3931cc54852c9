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

// Finalizer settles listings whose bidding window has closed. Each listing
// is settled in its own transaction under a row lock; the active-status
// guard makes settling idempotent, so a second finalize of the same listing
// fails cleanly instead of producing a second sale.
type Finalizer struct {
	db       *bun.DB
	listings repositories.ListingRepository
}

func NewFinalizer(db *bun.DB, listings repositories.ListingRepository) *Finalizer {
	return &Finalizer{
		db:       db,
		listings: listings,
	}
}

// Finalize settles one listing. With no bids the listing moves to ended and
// the returned ID is nil; otherwise the winning bid (highest amount, ties to
// the earliest bid, then the lowest ID) produces a transaction and the
// listing moves to sold. The returned ID is the new transaction's.
func (f *Finalizer) Finalize(ctx context.Context, listingID int64) (*int64, error) {
	var txnID *int64
	var winnerID int64
	err := f.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
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

		if err := CheckFinalizable(listing); err != nil {
			return err
		}

		var bids []*models.Bid
		err = tx.NewSelect().
			Model(&bids).
			Where("listing_id = ?", listingID).
			Order("bid_amount DESC", "bid_time ASC", "bid_id ASC").
			Scan(ctx)
		if err != nil {
			return err
		}

		now := time.Now()
		winner := SelectWinner(bids)
		if winner == nil {
			return f.setStatus(ctx, tx, listingID, models.ListingStatusEnded, now)
		}
		winnerID = winner.ID

		txn := &models.Transaction{
			BidID:          winner.ID,
			ListingID:      listingID,
			BuyerID:        winner.BidderID,
			SellerID:       listing.SellerID,
			FinalPrice:     winner.Amount,
			PaymentStatus:  models.PaymentStatusPending,
			ShippingStatus: models.ShippingStatusPending,
			TrackingCode:   TrackingCode(winner.ID),
			SaleDate:       now,
		}
		if _, err := tx.NewInsert().Model(txn).Exec(ctx); err != nil {
			return err
		}

		_, err = tx.NewUpdate().
			Model((*models.Bid)(nil)).
			Set("bid_status = ?", models.BidStatusWinning).
			Where("bid_id = ?", winner.ID).
			Exec(ctx)
		if err != nil {
			return err
		}
		_, err = tx.NewUpdate().
			Model((*models.Bid)(nil)).
			Set("bid_status = ?", models.BidStatusOutbid).
			Where("listing_id = ?", listingID).
			Where("bid_id != ?", winner.ID).
			Where("bid_status != ?", models.BidStatusRetracted).
			Exec(ctx)
		if err != nil {
			return err
		}

		if err := f.setStatus(ctx, tx, listingID, models.ListingStatusSold, now); err != nil {
			return err
		}
		txnID = &txn.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if txnID == nil {
		slog.Info("Listing ended without bids",
			"type", "market",
			"listing_id", listingID,
		)
	} else {
		slog.Info("Listing sold",
			"type", "market",
			"listing_id", listingID,
			"transaction_id", *txnID,
			"winning_bid_id", winnerID,
		)
	}
	return txnID, nil
}

func (f *Finalizer) setStatus(ctx context.Context, tx bun.Tx, listingID int64, status models.ListingStatus, now time.Time) error {
	_, err := tx.NewUpdate().
		Model((*models.Listing)(nil)).
		Set("listing_status = ?", status).
		Set("updated_at = ?", now).
		Where("listing_id = ?", listingID).
		Exec(ctx)
	return err
}

// SweepExpired settles every active listing whose end date has passed and
// returns the number settled. A listing settled by a concurrent sweep
// between the scan and its finalize is skipped, not an error.
func (f *Finalizer) SweepExpired(ctx context.Context) (int, error) {
	ids, err := f.listings.GetExpiredIDs(ctx)
	if err != nil {
		return 0, err
	}

	settled := 0
	for _, id := range ids {
		if _, err := f.Finalize(ctx, id); err != nil {
			if IsListingNotActive(err) {
				continue
			}
			slog.Error("Failed to finalize expired listing",
				"type", "market",
				"listing_id", id,
				"error", err,
			)
			continue
		}
		settled++
	}

	if settled > 0 {
		slog.Info("Expired listing sweep complete",
			"type", "market",
			"expired", len(ids),
			"settled", settled,
		)
	}
	return settled, nil
}
