package listings

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
)

const ListingsPerPage = 10

type Service interface {
	GetSellerListings(sellerID int64, filters FilterInfo) ([]Listing, int, error)
}

type service struct {
	repository Repository
}

func NewService(repository Repository) *service {
	return &service{
		repository: repository,
	}
}

// decouple filters later
func (s *service) GetSellerListings(sellerID int64, filters FilterInfo) ([]Listing, int, error) {
	rows, err := s.repository.GetBySellerID(context.Background(), sellerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch listings")
	}

	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no listings found")
	}

	result := make([]Listing, 0, len(rows))
	for _, row := range rows {
		// Apply filters
		// Should do on query
		if filters.Title != "" && !strings.Contains(strings.ToLower(row.Title), strings.ToLower(filters.Title)) {
			continue
		}
		if filters.Status != "" && string(row.Status) != filters.Status {
			continue
		}

		bids, err := s.repository.GetBidsForListing(context.Background(), row.ID)
		if err != nil {
			continue
		}
		if filters.WithBids && len(bids) == 0 {
			continue
		}

		price := row.StartPrice
		if len(bids) > 0 {
			price = bids[0].Amount
		}

		watchers, err := s.repository.CountWatchers(context.Background(), row.ID)
		if err != nil {
			watchers = 0
		}

		result = append(result, Listing{
			ID:           row.ID,
			Title:        row.Title,
			CategoryID:   row.CategoryID,
			Status:       string(row.Status),
			StartPrice:   row.StartPrice,
			CurrentPrice: price,
			BidCount:     len(bids),
			Watchers:     watchers,
			EndDate:      row.EndDate,
		})
	}

	if len(result) == 0 {
		return nil, 0, fmt.Errorf("no listings match your criteria")
	}

	// Sort by soonest-ending first, then by title
	sort.Slice(result, func(i, j int) bool {
		if !result[i].EndDate.Equal(result[j].EndDate) {
			return result[i].EndDate.Before(result[j].EndDate)
		}
		return result[i].Title < result[j].Title
	})

	pages := int(math.Ceil(float64(len(result)) / float64(ListingsPerPage)))

	return result, pages, nil
}
