package marketplace

import (
	"strings"
	"testing"
	"time"

	"github.com/gavelworks/baymimic/baymimic/database/models"
)

func TestMinimumBid(t *testing.T) {
	tests := []struct {
		name       string
		startPrice int64
		currentMax int64
		want       int64
	}{
		{name: "NoBids", startPrice: 100, currentMax: 0, want: 100},
		{name: "MaxBelowStart", startPrice: 100, currentMax: 40, want: 100},
		{name: "MaxEqualsStart", startPrice: 100, currentMax: 100, want: 101},
		{name: "MaxAboveStart", startPrice: 100, currentMax: 250, want: 251},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinimumBid(tt.startPrice, tt.currentMax); got != tt.want {
				t.Errorf("MinimumBid(%d, %d) = %d, want %d", tt.startPrice, tt.currentMax, got, tt.want)
			}
		})
	}
}

func TestSelectWinner(t *testing.T) {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	bid := func(id int64, amount int64, offset time.Duration, status models.BidStatus) *models.Bid {
		return &models.Bid{ID: id, Amount: amount, BidTime: base.Add(offset), Status: status}
	}

	tests := []struct {
		name   string
		bids   []*models.Bid
		wantID int64
	}{
		{
			name:   "Empty",
			bids:   nil,
			wantID: 0,
		},
		{
			name: "HighestAmountWins",
			bids: []*models.Bid{
				bid(1, 50, 0, models.BidStatusOutbid),
				bid(2, 80, time.Minute, models.BidStatusActive),
				bid(3, 65, 2*time.Minute, models.BidStatusOutbid),
			},
			wantID: 2,
		},
		{
			name: "AmountTieGoesToEarliestBid",
			bids: []*models.Bid{
				bid(4, 80, 5*time.Minute, models.BidStatusActive),
				bid(2, 80, time.Minute, models.BidStatusOutbid),
			},
			wantID: 2,
		},
		{
			name: "FullTieGoesToLowestID",
			bids: []*models.Bid{
				bid(9, 80, time.Minute, models.BidStatusActive),
				bid(4, 80, time.Minute, models.BidStatusOutbid),
			},
			wantID: 4,
		},
		{
			name: "RetractedBidsNeverWin",
			bids: []*models.Bid{
				bid(1, 200, 0, models.BidStatusRetracted),
				bid(2, 80, time.Minute, models.BidStatusActive),
			},
			wantID: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectWinner(tt.bids)
			if tt.wantID == 0 {
				if got != nil {
					t.Errorf("SelectWinner() = %+v, want nil", got)
				}
				return
			}
			if got == nil || got.ID != tt.wantID {
				t.Errorf("SelectWinner() = %+v, want bid %d", got, tt.wantID)
			}
		})
	}
}

func TestRoundRating(t *testing.T) {
	tests := []struct {
		name string
		mean float64
		want float64
	}{
		{name: "Zero", mean: 0, want: 0},
		{name: "Whole", mean: 4, want: 4},
		{name: "Half", mean: 3.5, want: 3.5},
		{name: "RepeatingThirds", mean: 14.0 / 3.0, want: 4.67},
		{name: "RepeatingSixths", mean: 25.0 / 6.0, want: 4.17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundRating(tt.mean); got != tt.want {
				t.Errorf("RoundRating(%v) = %v, want %v", tt.mean, got, tt.want)
			}
		})
	}
}

func TestSentimentForRating(t *testing.T) {
	tests := []struct {
		rating int
		want   models.Sentiment
	}{
		{rating: 1, want: models.SentimentNegative},
		{rating: 2, want: models.SentimentNegative},
		{rating: 3, want: models.SentimentNeutral},
		{rating: 4, want: models.SentimentPositive},
		{rating: 5, want: models.SentimentPositive},
	}

	for _, tt := range tests {
		if got := SentimentForRating(tt.rating); got != tt.want {
			t.Errorf("SentimentForRating(%d) = %s, want %s", tt.rating, got, tt.want)
		}
	}
}

func TestTrackingCode(t *testing.T) {
	code := TrackingCode(42)

	if !strings.HasPrefix(code, "BM-") {
		t.Errorf("TrackingCode(42) = %q, want BM- prefix", code)
	}
	if code != TrackingCode(42) {
		t.Errorf("TrackingCode is not deterministic: %q != %q", code, TrackingCode(42))
	}
	if code == TrackingCode(43) {
		t.Errorf("TrackingCode collision between adjacent IDs: %q", code)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from models.ListingStatus
		to   models.ListingStatus
		want bool
	}{
		{name: "ActiveToEnded", from: models.ListingStatusActive, to: models.ListingStatusEnded, want: true},
		{name: "ActiveToSold", from: models.ListingStatusActive, to: models.ListingStatusSold, want: true},
		{name: "ActiveToCancelled", from: models.ListingStatusActive, to: models.ListingStatusCancelled, want: true},
		{name: "ActiveToActive", from: models.ListingStatusActive, to: models.ListingStatusActive, want: false},
		{name: "SoldIsTerminal", from: models.ListingStatusSold, to: models.ListingStatusActive, want: false},
		{name: "EndedIsTerminal", from: models.ListingStatusEnded, to: models.ListingStatusSold, want: false},
		{name: "CancelledIsTerminal", from: models.ListingStatusCancelled, to: models.ListingStatusEnded, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	open := &models.Listing{EndDate: now.Add(time.Hour)}
	if Expired(open, now) {
		t.Error("Expired() = true for a listing ending in the future")
	}

	closed := &models.Listing{EndDate: now.Add(-time.Hour)}
	if !Expired(closed, now) {
		t.Error("Expired() = false for a listing past its end date")
	}

	boundary := &models.Listing{EndDate: now}
	if !Expired(boundary, now) {
		t.Error("Expired() = false at the exact end instant")
	}
}
