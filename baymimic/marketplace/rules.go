package marketplace

import (
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gavelworks/baymimic/baymimic/database/models"
)

// MinimumBid returns the smallest acceptable bid for a listing: the start
// price when no bids exist, otherwise one unit above the current maximum.
func MinimumBid(startPrice, currentMax int64) int64 {
	if currentMax < startPrice {
		return startPrice
	}
	return currentMax + 1
}

// SelectWinner picks the winning bid from a slice: highest amount, amount
// ties broken by earliest bid time, then by lowest bid ID. Returns nil when
// the slice is empty.
func SelectWinner(bids []*models.Bid) *models.Bid {
	var winner *models.Bid
	for _, bid := range bids {
		if bid.Status == models.BidStatusRetracted {
			continue
		}
		if winner == nil || beats(bid, winner) {
			winner = bid
		}
	}
	return winner
}

func beats(a, b *models.Bid) bool {
	if a.Amount != b.Amount {
		return a.Amount > b.Amount
	}
	if !a.BidTime.Equal(b.BidTime) {
		return a.BidTime.Before(b.BidTime)
	}
	return a.ID < b.ID
}

// RoundRating rounds a mean rating to two decimal places.
func RoundRating(mean float64) float64 {
	return math.Round(mean*100) / 100
}

// SentimentForRating maps a 1-5 star rating to its sentiment bucket.
func SentimentForRating(rating int) models.Sentiment {
	switch {
	case rating >= 4:
		return models.SentimentPositive
	case rating == 3:
		return models.SentimentNeutral
	default:
		return models.SentimentNegative
	}
}

// TrackingCode derives a shipment tracking code from the winning bid ID.
// The encoding is stable, so re-running a finalize that already produced a
// transaction would yield the same code.
func TrackingCode(bidID int64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(bidID))
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf[:])
	return fmt.Sprintf("BM-%s", encoded)
}

// CanTransition reports whether a listing may move between two statuses.
// Active listings can end, sell or be cancelled; ended, sold and cancelled
// are terminal.
func CanTransition(from, to models.ListingStatus) bool {
	if from != models.ListingStatusActive {
		return false
	}
	switch to {
	case models.ListingStatusEnded, models.ListingStatusSold, models.ListingStatusCancelled:
		return true
	}
	return false
}

// Expired reports whether a listing's bidding window has closed at the given
// instant.
func Expired(listing *models.Listing, now time.Time) bool {
	return !listing.EndDate.After(now)
}

// CheckBiddable reports why a listing cannot accept a bid from the given
// bidder at the given instant, or nil when it can. Callers run this under
// the listing's row lock so the answer holds until the bid commits.
func CheckBiddable(listing *models.Listing, bidderID int64, now time.Time) error {
	if listing.Status != models.ListingStatusActive {
		return &ListingNotBiddableError{ListingID: listing.ID, Reason: fmt.Sprintf("status is %s", listing.Status)}
	}
	if Expired(listing, now) {
		return &ListingNotBiddableError{ListingID: listing.ID, Reason: "bidding window closed"}
	}
	if listing.SellerID == bidderID {
		return &ListingNotBiddableError{ListingID: listing.ID, Reason: "sellers cannot bid on their own listings"}
	}
	return nil
}

// CheckBidAmount rejects an amount below the listing's current minimum,
// carrying the computed minimum in the error.
func CheckBidAmount(listingID, amount, startPrice, currentMax int64) error {
	minimum := MinimumBid(startPrice, currentMax)
	if amount < minimum {
		return &BidTooLowError{ListingID: listingID, Amount: amount, Minimum: minimum}
	}
	return nil
}

// CheckFinalizable is the settle-at-most-once guard: any status other than
// active means the listing was already settled or withdrawn.
func CheckFinalizable(listing *models.Listing) error {
	if listing.Status != models.ListingStatusActive {
		return &ListingNotActiveError{ListingID: listing.ID, Status: string(listing.Status)}
	}
	return nil
}

// CheckFeedbackUnique rejects a second feedback row for a (transaction,
// author) pair; exists is the result of the in-transaction lookup.
func CheckFeedbackUnique(transactionID, authorID int64, exists bool) error {
	if exists {
		return &DuplicateFeedbackError{TransactionID: transactionID, AuthorID: authorID}
	}
	return nil
}
