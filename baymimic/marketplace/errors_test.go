package marketplace

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	notBiddable := &ListingNotBiddableError{ListingID: 7, Reason: "status is sold"}
	tooLow := &BidTooLowError{ListingID: 7, Amount: 40, Minimum: 101}
	notActive := &ListingNotActiveError{ListingID: 7, Status: "ended"}
	duplicate := &DuplicateFeedbackError{TransactionID: 3, AuthorID: 9}

	assert.True(t, IsListingNotBiddable(notBiddable))
	assert.True(t, IsBidTooLow(tooLow))
	assert.True(t, IsListingNotActive(notActive))
	assert.True(t, IsDuplicateFeedback(duplicate))

	// Helpers distinguish the types from each other.
	assert.False(t, IsListingNotBiddable(tooLow))
	assert.False(t, IsBidTooLow(notActive))
	assert.False(t, IsListingNotActive(duplicate))
	assert.False(t, IsDuplicateFeedback(notBiddable))
	assert.False(t, IsBidTooLow(nil))
}

func TestErrorClassificationThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("placing bid: %w", &BidTooLowError{ListingID: 1, Amount: 5, Minimum: 10})
	assert.True(t, IsBidTooLow(wrapped))
	assert.False(t, IsListingNotBiddable(wrapped))
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&BidTooLowError{ListingID: 7, Amount: 40, Minimum: 101}).Error(), "minimum of 101")
	assert.Contains(t, (&ListingNotActiveError{ListingID: 7, Status: "sold"}).Error(), "sold")
	assert.Contains(t, (&DuplicateFeedbackError{TransactionID: 3, AuthorID: 9}).Error(), "transaction 3")
}
