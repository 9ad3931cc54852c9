package marketplace

import (
	"testing"
	"time"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/stretchr/testify/assert"
)

func activeListing(id, sellerID int64, startPrice int64, now time.Time) *models.Listing {
	return &models.Listing{
		ID:         id,
		SellerID:   sellerID,
		StartPrice: startPrice,
		Status:     models.ListingStatusActive,
		EndDate:    now.Add(time.Hour),
	}
}

func TestCheckBiddable(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("OpenListingAcceptsBids", func(t *testing.T) {
		assert.NoError(t, CheckBiddable(activeListing(1, 10, 50, now), 20, now))
	})

	t.Run("PastEndDateRejects", func(t *testing.T) {
		listing := activeListing(1, 10, 50, now)
		listing.EndDate = now.Add(-time.Minute)
		err := CheckBiddable(listing, 20, now)
		assert.True(t, IsListingNotBiddable(err))
	})

	t.Run("SoldListingRejects", func(t *testing.T) {
		listing := activeListing(1, 10, 50, now)
		listing.Status = models.ListingStatusSold
		err := CheckBiddable(listing, 20, now)
		assert.True(t, IsListingNotBiddable(err))
	})

	t.Run("SellerCannotBidOnOwnListing", func(t *testing.T) {
		err := CheckBiddable(activeListing(1, 10, 50, now), 10, now)
		assert.True(t, IsListingNotBiddable(err))
	})
}

func TestCheckBidAmount(t *testing.T) {
	t.Run("FirstBidAtStartPricePasses", func(t *testing.T) {
		assert.NoError(t, CheckBidAmount(1, 50, 50, 0))
	})

	t.Run("BelowMinimumCarriesComputedMinimum", func(t *testing.T) {
		// Start price 50, current best 60: a late 55 loses to minimum 61.
		err := CheckBidAmount(1, 55, 50, 60)
		assert.True(t, IsBidTooLow(err))
		var tooLow *BidTooLowError
		assert.ErrorAs(t, err, &tooLow)
		assert.Equal(t, int64(61), tooLow.Minimum)
		assert.Equal(t, int64(55), tooLow.Amount)
	})

	t.Run("EqualToCurrentMaxRejects", func(t *testing.T) {
		assert.True(t, IsBidTooLow(CheckBidAmount(1, 60, 50, 60)))
	})
}

// A listing is settled at most once: the settle path flips status away from
// active under the row lock, so a repeat call sees the flipped status and
// gets the typed failure instead of a second transaction.
func TestCheckFinalizableIsIdempotencyGuard(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	listing := activeListing(1, 10, 50, now)

	assert.NoError(t, CheckFinalizable(listing))

	listing.Status = models.ListingStatusSold
	err := CheckFinalizable(listing)
	assert.True(t, IsListingNotActive(err))
	var notActive *ListingNotActiveError
	assert.ErrorAs(t, err, &notActive)
	assert.Equal(t, "sold", notActive.Status)

	listing.Status = models.ListingStatusEnded
	assert.True(t, IsListingNotActive(CheckFinalizable(listing)))

	listing.Status = models.ListingStatusCancelled
	assert.True(t, IsListingNotActive(CheckFinalizable(listing)))
}

func TestCheckFeedbackUnique(t *testing.T) {
	assert.NoError(t, CheckFeedbackUnique(3, 9, false))

	err := CheckFeedbackUnique(3, 9, true)
	assert.True(t, IsDuplicateFeedback(err))
	var dup *DuplicateFeedbackError
	assert.ErrorAs(t, err, &dup)
	assert.Equal(t, int64(3), dup.TransactionID)
	assert.Equal(t, int64(9), dup.AuthorID)
}
