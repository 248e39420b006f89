package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"auction-ledger/internal/domain"
	"auction-ledger/pkg/logger"

	"github.com/go-redis/redis/v8"
)

type RedisEventSubscriber struct {
	client *redis.Client
	log    logger.Logger
}

func NewRedisEventSubscriber(client *redis.Client, log logger.Logger) *RedisEventSubscriber {
	return &RedisEventSubscriber{
		client: client,
		log:    log,
	}
}

func (r *RedisEventSubscriber) SubscribeToListingEvents(ctx context.Context, handler domain.EventHandler) error {
	pubsub := r.client.Subscribe(ctx, listingEventsChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	r.log.Info("Subscribed to listing events")

	for {
		select {
		case msg := <-ch:
			event, err := ParseEventData(msg.Payload)
			if err != nil {
				r.log.Error("Failed to parse event", "payload", msg.Payload, "error", err)
				continue
			}

			if err := handler(event); err != nil {
				r.log.Error("Failed to handle event", "event", event, "error", err)
			}

		case <-ctx.Done():
			r.log.Info("Event subscriber stopped")
			return ctx.Err()
		}
	}
}

// ParseEventData parses "listingID:type:price:timestamp:actor".
func ParseEventData(payload string) (*domain.ListingEvent, error) {
	parts := strings.SplitN(payload, ":", 5)
	if len(parts) < 5 {
		return nil, fmt.Errorf("invalid event format: %s", payload)
	}

	listingID, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return nil, err
	}

	price, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return nil, err
	}

	timestamp, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return nil, err
	}

	return &domain.ListingEvent{
		ListingID: listingID,
		Type:      domain.ListingEventType(parts[1]),
		Price:     price,
		Timestamp: time.Unix(timestamp, 0),
		Actor:     parts[4],
	}, nil
}
