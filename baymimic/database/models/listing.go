package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusEnded     ListingStatus = "ended"
	ListingStatusCancelled ListingStatus = "cancelled"
	ListingStatusSold      ListingStatus = "sold"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusActive, ListingStatusEnded, ListingStatusCancelled, ListingStatusSold:
		return true
	}
	return false
}

// Listing is an item up for auction. ReservePrice and BuyNowPrice are
// advisory seller-set fields; no procedure enforces them.
type Listing struct {
	bun.BaseModel `bun:"table:listings,alias:l"`

	ID          int64  `bun:"listing_id,pk,autoincrement"`
	SellerID    int64  `bun:"seller_id,notnull"`
	CategoryID  int64  `bun:"category_id,notnull"`
	Title       string `bun:"title,notnull"`
	Description string `bun:"description"`

	StartPrice   int64  `bun:"start_price,notnull"`
	ReservePrice *int64 `bun:"reserve_price"`
	BuyNowPrice  *int64 `bun:"buy_now_price"`
	Quantity     int    `bun:"quantity,notnull,default:1"`

	Status    ListingStatus `bun:"listing_status,notnull"`
	StartDate time.Time     `bun:"start_date,notnull"`
	EndDate   time.Time     `bun:"end_date,notnull"`
	ViewCount int64         `bun:"view_count,notnull,default:0"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
