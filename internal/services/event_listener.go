package services

import (
	"context"
	"fmt"

	"auction-ledger/internal/domain"
	"auction-ledger/pkg/logger"
)

// EventListener relays published listing events to the websocket watchers
// of the affected listing.
type EventListener struct {
	connectionManager domain.ConnectionManager
	log               logger.Logger
}

func NewEventListener(connectionManager domain.ConnectionManager, log logger.Logger) *EventListener {
	return &EventListener{
		connectionManager: connectionManager,
		log:               log,
	}
}

func (el *EventListener) Start(ctx context.Context, subscriber domain.EventSubscriber) error {
	el.log.Info("Starting event listener")
	return subscriber.SubscribeToListingEvents(ctx, el.handleListingEvent)
}

func (el *EventListener) handleListingEvent(event *domain.ListingEvent) error {
	el.log.Info("Handling listing event", "type", event.Type, "listing_id", event.ListingID)

	switch event.Type {
	case domain.ListingCreated:
		// Nobody can be watching a listing before it exists
		return nil
	case domain.PriceChanged:
		return el.connectionManager.BroadcastToListing(event.ListingID, map[string]interface{}{
			"type":          "price_update",
			"listing_id":    event.ListingID,
			"current_price": event.Price,
			"timestamp":     event.Timestamp,
		})
	case domain.ListingUpdated:
		return el.connectionManager.BroadcastToListing(event.ListingID, map[string]interface{}{
			"type":       "listing_update",
			"listing_id": event.ListingID,
			"timestamp":  event.Timestamp,
		})
	}

	return fmt.Errorf("unknown event type %+v", *event)
}
