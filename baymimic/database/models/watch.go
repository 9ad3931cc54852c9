package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ListingWatch is a user's bookmark on a listing, unique per (user, listing)
// pair. It has no lifecycle beyond creation and deletion.
type ListingWatch struct {
	bun.BaseModel `bun:"table:listing_watches,alias:w"`

	ID        int64     `bun:"watch_id,pk,autoincrement"`
	UserID    int64     `bun:"user_id,notnull,unique:listing_watches_user_listing"`
	ListingID int64     `bun:"listing_id,notnull,unique:listing_watches_user_listing"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
