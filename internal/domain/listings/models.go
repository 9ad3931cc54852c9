package listings

import "time"

type Listing struct {
	ID           int64
	Title        string
	CategoryID   int64
	Status       string
	StartPrice   int64
	CurrentPrice int64
	BidCount     int
	Watchers     int
	EndDate      time.Time
}

type FilterInfo struct {
	Title    string
	Status   string
	WithBids bool
}
