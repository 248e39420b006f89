package domain

import (
	"time"
)

// Listing is one item for sale. The owner is the principal that created it
// and never changes; CurrentPrice only moves up, through accepted bids.
type Listing struct {
	ID            uint64 `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartingPrice uint64 `json:"starting_price"`
	CurrentPrice  uint64 `json:"current_price"`
	Sold          bool   `json:"sold"`
	Owner         string `json:"owner"`
}

// CreateListing carries only the fields a caller may choose at creation.
// Identifier, owner and price state are derived server-side.
type CreateListing struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartingPrice uint64 `json:"starting_price"`
}

// EditListing deliberately omits the price fields and the owner so they
// cannot be replaced through the edit path.
type EditListing struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Sold        bool   `json:"sold"`
}

type ListingEvent struct {
	ID        string           `json:"id"`
	Type      ListingEventType `json:"type"`
	ListingID uint64           `json:"listing_id"`
	Actor     string           `json:"actor"`
	Price     uint64           `json:"price"`
	Timestamp time.Time        `json:"timestamp"`
}

type ListingEventType string

const (
	ListingCreated ListingEventType = "listing_created"
	PriceChanged   ListingEventType = "price_changed"
	ListingUpdated ListingEventType = "listing_updated"
)
