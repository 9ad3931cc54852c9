package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BidStatus string

const (
	BidStatusActive    BidStatus = "active"
	BidStatusRetracted BidStatus = "retracted"
	BidStatusWinning   BidStatus = "winning"
	BidStatusOutbid    BidStatus = "outbid"
)

// Bid is an immutable offer on a listing. Status is maintained by the bidding
// and finalization paths: a newly accepted bid demotes prior active bids to
// outbid, and finalization marks the selected bid winning.
type Bid struct {
	bun.BaseModel `bun:"table:bids,alias:b"`

	ID        int64     `bun:"bid_id,pk,autoincrement"`
	ListingID int64     `bun:"listing_id,notnull"`
	BidderID  int64     `bun:"bidder_id,notnull"`
	Amount    int64     `bun:"bid_amount,notnull"`
	BidTime   time.Time `bun:"bid_time,notnull"`
	Status    BidStatus `bun:"bid_status,notnull"`
	IsProxy   bool      `bun:"is_proxy,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
