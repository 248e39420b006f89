package services

import (
	"context"
	"sync"
	"time"

	"auction-ledger/internal/domain"
	"auction-ledger/pkg/logger"
	"auction-ledger/pkg/utils"
)

// LedgerService implements the auction operations over the durable listing
// store. A single mutex serializes every read-validate-write sequence, so
// the store observes operations one at a time in dispatch order and no
// operation ever sees a half-applied mutation.
type LedgerService struct {
	store     domain.ListingStore
	allocator domain.SequenceAllocator
	eventPub  domain.EventPublisher
	mu        sync.Mutex
	log       logger.Logger
}

func NewLedgerService(
	store domain.ListingStore,
	allocator domain.SequenceAllocator,
	eventPub domain.EventPublisher,
	log logger.Logger,
) *LedgerService {
	return &LedgerService{
		store:     store,
		allocator: allocator,
		eventPub:  eventPub,
		log:       log,
	}
}

// CreateListing allocates the next identifier and stores a fresh listing
// owned by the caller. It has no validation failure path.
func (s *LedgerService) CreateListing(ctx context.Context, input domain.CreateListing, caller string) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.allocator.Next(ctx)
	if err != nil {
		return nil, err
	}

	listing := &domain.Listing{
		ID:            id,
		Title:         input.Title,
		Description:   input.Description,
		StartingPrice: input.StartingPrice,
		CurrentPrice:  input.StartingPrice,
		Sold:          false,
		Owner:         caller,
	}

	if _, err := s.store.Put(ctx, id, listing); err != nil {
		return nil, err
	}

	s.log.Info("Listing created", "listing_id", id, "owner", caller)
	s.publishEvent(ctx, domain.ListingCreated, listing, caller)
	return listing, nil
}

// GetListing is a pure lookup; listings are publicly readable.
func (s *LedgerService) GetListing(ctx context.Context, id uint64) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, found, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrListingNotFound
	}
	return listing, nil
}

// EditListing replaces title, description and the sold flag. Only the owner
// may apply it; the price fields and the owner are carried over from the
// stored record no matter what, the input type cannot even express them.
func (s *LedgerService) EditListing(ctx context.Context, id uint64, input domain.EditListing, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, found, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrListingNotFound
	}

	if caller != existing.Owner {
		s.log.Info("Edit rejected", "listing_id", id, "owner", existing.Owner, "caller", caller)
		return domain.ErrAccessRejected
	}

	updated := &domain.Listing{
		ID:            existing.ID,
		Title:         input.Title,
		Description:   input.Description,
		StartingPrice: existing.StartingPrice,
		CurrentPrice:  existing.CurrentPrice,
		Sold:          input.Sold,
		Owner:         existing.Owner,
	}

	existed, err := s.store.Put(ctx, id, updated)
	if err != nil {
		s.log.Error("Failed to write edited listing", "listing_id", id, "error", err)
		return domain.ErrUpdateFailed
	}
	if !existed {
		// The record vanished between the read and the write. The execution
		// model forbids this, treat it as an environment fault.
		s.log.Error("Listing missing at write time", "listing_id", id)
		return domain.ErrUpdateFailed
	}

	s.log.Info("Listing edited", "listing_id", id, "sold", updated.Sold)
	s.publishEvent(ctx, domain.ListingUpdated, updated, caller)
	return nil
}

// PlaceBid raises the current price. Preconditions in order: the listing
// exists, it is not sold, and the bid strictly exceeds the current price.
// There is no ownership check, the owner may bid on their own listing.
func (s *LedgerService) PlaceBid(ctx context.Context, id uint64, price uint64, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, found, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrListingNotFound
	}

	if existing.Sold {
		return domain.ErrListingAlreadySold
	}

	if price <= existing.CurrentPrice {
		return domain.ErrMinimalPriceNotMet
	}

	updated := *existing
	updated.CurrentPrice = price

	existed, err := s.store.Put(ctx, id, &updated)
	if err != nil {
		s.log.Error("Failed to write bid", "listing_id", id, "error", err)
		return domain.ErrUpdateFailed
	}
	if !existed {
		s.log.Error("Listing missing at write time", "listing_id", id)
		return domain.ErrUpdateFailed
	}

	s.log.Info("Bid accepted", "listing_id", id, "price", price, "bidder", caller)
	s.publishEvent(ctx, domain.PriceChanged, &updated, caller)
	return nil
}

// CountListings reports the number of stored listings.
func (s *LedgerService) CountListings(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Count(ctx)
}

// publishEvent is best effort: the store write has already committed and a
// lost event must not fail the operation.
func (s *LedgerService) publishEvent(ctx context.Context, eventType domain.ListingEventType, listing *domain.Listing, actor string) {
	if s.eventPub == nil {
		return
	}

	event := &domain.ListingEvent{
		ID:        utils.GenerateID("event"),
		Type:      eventType,
		ListingID: listing.ID,
		Actor:     actor,
		Price:     listing.CurrentPrice,
		Timestamp: time.Now(),
	}

	if err := s.eventPub.PublishListingEvent(ctx, event); err != nil {
		s.log.Error("Failed to publish listing event", "listing_id", listing.ID,
			"type", eventType, "error", err)
	}
}
