package domain

import (
	"context"
)

// Store interfaces
type ListingStore interface {
	// Get returns the listing at id, or found=false if the id is unknown.
	Get(ctx context.Context, id uint64) (*Listing, bool, error)
	// Put inserts or overwrites the record at id and reports whether a
	// record already existed at that key.
	Put(ctx context.Context, id uint64, listing *Listing) (bool, error)
	Count(ctx context.Context) (uint64, error)
}

// SequenceAllocator hands out dense listing identifiers starting at zero.
// Next returns the current counter value and advances it; the counter is
// persisted so a restart can never re-issue an identifier.
type SequenceAllocator interface {
	Next(ctx context.Context) (uint64, error)
}

// Event interfaces
type EventPublisher interface {
	PublishListingEvent(ctx context.Context, event *ListingEvent) error
}

type EventSubscriber interface {
	SubscribeToListingEvents(ctx context.Context, handler EventHandler) error
}

type EventHandler func(event *ListingEvent) error

// Leader election interface
type LeaderElection interface {
	BecomeLeader(ctx context.Context, instanceID string) (bool, error)
	IsLeader(ctx context.Context, instanceID string) (bool, error)
	ReleaseLeadership(ctx context.Context, instanceID string) error
}

// WebSocket interfaces
type WebSocketConnection interface {
	Send(message interface{}) error
	Close() error
	WatcherID() string
	ListingID() uint64
}

type ConnectionManager interface {
	RegisterConnection(watcherID string, listingID uint64, conn WebSocketConnection) error
	UnregisterConnection(watcherID string, listingID uint64) error
	GetConnectionsForListing(listingID uint64) []WebSocketConnection
	BroadcastToListing(listingID uint64, message interface{}) error
}
