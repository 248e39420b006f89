package memory

import (
	"context"

	"auction-ledger/internal/domain"
)

// ListingStore is a map-backed store with the same contract as the MySQL
// one. It backs unit tests; it does not survive a restart.
type ListingStore struct {
	listings map[uint64]*domain.Listing
}

func NewListingStore() *ListingStore {
	return &ListingStore{
		listings: make(map[uint64]*domain.Listing),
	}
}

func (s *ListingStore) Get(ctx context.Context, id uint64) (*domain.Listing, bool, error) {
	listing, found := s.listings[id]
	if !found {
		return nil, false, nil
	}
	copied := *listing
	return &copied, true, nil
}

func (s *ListingStore) Put(ctx context.Context, id uint64, listing *domain.Listing) (bool, error) {
	_, existed := s.listings[id]
	copied := *listing
	s.listings[id] = &copied
	return existed, nil
}

func (s *ListingStore) Count(ctx context.Context) (uint64, error) {
	return uint64(len(s.listings)), nil
}

// SequenceAllocator is the volatile counterpart of the persisted sequence
// store, for tests only.
type SequenceAllocator struct {
	next uint64
}

func NewSequenceAllocator() *SequenceAllocator {
	return &SequenceAllocator{}
}

func (a *SequenceAllocator) Next(ctx context.Context) (uint64, error) {
	id := a.next
	a.next++
	return id, nil
}
