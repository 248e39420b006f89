package redis

import (
	"context"
	"fmt"

	"auction-ledger/internal/domain"

	"github.com/go-redis/redis/v8"
)

const listingEventsChannel = "listing_events"

type RedisEventPublisher struct {
	client *redis.Client
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{client: client}
}

func (r *RedisEventPublisher) PublishListingEvent(ctx context.Context, event *domain.ListingEvent) error {
	// The actor principal is opaque and may contain separators, so it goes
	// last and the subscriber splits with a field limit.
	eventData := fmt.Sprintf("%d:%s:%d:%d:%s",
		event.ListingID, event.Type, event.Price, event.Timestamp.Unix(), event.Actor)

	return r.client.Publish(ctx, listingEventsChannel, eventData).Err()
}
