package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPaid || s == PaymentStatusRefunded
}

type ShippingStatus string

const (
	ShippingStatusPending   ShippingStatus = "pending"
	ShippingStatusShipped   ShippingStatus = "shipped"
	ShippingStatusDelivered ShippingStatus = "delivered"
)

func (s ShippingStatus) Valid() bool {
	return s == ShippingStatusPending || s == ShippingStatusShipped || s == ShippingStatusDelivered
}

// Transaction records a completed sale, derived 1:1 from the winning bid.
// BidID is unique so a bid can settle at most one sale.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID         int64 `bun:"transaction_id,pk,autoincrement"`
	BidID      int64 `bun:"bid_id,notnull,unique"`
	ListingID  int64 `bun:"listing_id,notnull"`
	BuyerID    int64 `bun:"buyer_id,notnull"`
	SellerID   int64 `bun:"seller_id,notnull"`
	FinalPrice int64 `bun:"final_price,notnull"`

	PaymentStatus  PaymentStatus  `bun:"payment_status,notnull"`
	ShippingStatus ShippingStatus `bun:"shipping_status,notnull"`
	TrackingCode   string         `bun:"tracking_code"`

	SaleDate  time.Time `bun:"sale_date,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
