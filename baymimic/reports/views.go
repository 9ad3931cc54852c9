package reports

import (
	"context"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/gavelworks/baymimic/baymimic/database/repositories"
	"github.com/gavelworks/baymimic/baymimic/marketplace"
)

// ListingPriceView is the live price report for one listing. CurrentPrice is
// the highest bid when bids exist, otherwise the start price.
type ListingPriceView struct {
	ListingID    int64
	Title        string
	Status       models.ListingStatus
	CurrentPrice int64
	BidCount     int
	Watchers     int
}

// FeedbackSummaryView aggregates the feedback targeting one account.
type FeedbackSummaryView struct {
	AccountID     int64
	FeedbackCount int
	MeanRating    float64
	PositiveCount int
}

// Reporter serves the live views. Nothing here is cached: every call
// recomputes from current rows, in contrast to the session snapshots.
type Reporter struct {
	listings repositories.ListingRepository
	bids     repositories.BidRepository
	watches  repositories.WatchRepository
	feedback repositories.FeedbackRepository
}

func NewReporter(
	listings repositories.ListingRepository,
	bids repositories.BidRepository,
	watches repositories.WatchRepository,
	feedback repositories.FeedbackRepository,
) *Reporter {
	return &Reporter{
		listings: listings,
		bids:     bids,
		watches:  watches,
		feedback: feedback,
	}
}

func (r *Reporter) ListingPrice(ctx context.Context, listingID int64) (*ListingPriceView, error) {
	listing, err := r.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	bids, err := r.bids.GetForListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	price := listing.StartPrice
	if len(bids) > 0 {
		price = bids[0].Amount
	}

	watchers, err := r.watches.CountForListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	return &ListingPriceView{
		ListingID:    listing.ID,
		Title:        listing.Title,
		Status:       listing.Status,
		CurrentPrice: price,
		BidCount:     len(bids),
		Watchers:     watchers,
	}, nil
}

func (r *Reporter) FeedbackSummary(ctx context.Context, accountID int64) (*FeedbackSummaryView, error) {
	rows, err := r.feedback.GetForTarget(ctx, accountID)
	if err != nil {
		return nil, err
	}

	summary := &FeedbackSummaryView{AccountID: accountID}
	if len(rows) == 0 {
		return summary, nil
	}

	total := 0
	for _, fb := range rows {
		total += fb.Rating
		if fb.Sentiment == models.SentimentPositive {
			summary.PositiveCount++
		}
	}
	summary.FeedbackCount = len(rows)
	summary.MeanRating = marketplace.RoundRating(float64(total) / float64(len(rows)))
	return summary, nil
}
