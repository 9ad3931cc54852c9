package marketplace

import (
	"errors"
	"fmt"
)

// ListingNotBiddableError rejects a bid on a listing that cannot accept one,
// either because its status left active or its end date has passed.
type ListingNotBiddableError struct {
	ListingID int64
	Reason    string
}

func (e *ListingNotBiddableError) Error() string {
	return fmt.Sprintf("listing %d cannot accept bids: %s", e.ListingID, e.Reason)
}

// BidTooLowError rejects a bid below the listing's current minimum.
type BidTooLowError struct {
	ListingID int64
	Amount    int64
	Minimum   int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid of %d on listing %d is below the minimum of %d", e.Amount, e.ListingID, e.Minimum)
}

// ListingNotActiveError rejects an operation that requires an active listing,
// such as finalizing a listing that has already been settled.
type ListingNotActiveError struct {
	ListingID int64
	Status    string
}

func (e *ListingNotActiveError) Error() string {
	return fmt.Sprintf("listing %d is not active (status %s)", e.ListingID, e.Status)
}

// DuplicateFeedbackError rejects a second feedback row from the same author
// on the same transaction.
type DuplicateFeedbackError struct {
	TransactionID int64
	AuthorID      int64
}

func (e *DuplicateFeedbackError) Error() string {
	return fmt.Sprintf("user %d already left feedback on transaction %d", e.AuthorID, e.TransactionID)
}

func IsListingNotBiddable(err error) bool {
	var target *ListingNotBiddableError
	return errors.As(err, &target)
}

func IsBidTooLow(err error) bool {
	var target *BidTooLowError
	return errors.As(err, &target)
}

func IsListingNotActive(err error) bool {
	var target *ListingNotActiveError
	return errors.As(err, &target)
}

func IsDuplicateFeedback(err error) bool {
	var target *DuplicateFeedbackError
	return errors.As(err, &target)
}
