package pagecache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Triaksa-Space/be-landing-cms/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type invalidationMessage struct {
	Origin string `json:"origin"`
	Tag    string `json:"tag"`
}

// RedisBroadcaster invalidates the local cache and fans the invalidation out
// to every other process subscribed to the same redis channel. Without a
// redis client it only invalidates locally and peers fall back to their TTL.
type RedisBroadcaster struct {
	client     *redis.Client
	channel    string
	local      Invalidator
	instanceID string
	log        logger.Logger
}

func NewRedisBroadcaster(client *redis.Client, channel string, local Invalidator, log logger.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{
		client:     client,
		channel:    channel,
		local:      local,
		instanceID: uuid.New().String(),
		log:        log.WithComponent("cache_broadcast"),
	}
}

// InvalidateTag drops the tag locally, then publishes it. A publish failure
// is logged and not returned: the local cache is already coherent.
func (b *RedisBroadcaster) InvalidateTag(ctx context.Context, tag string) error {
	if err := b.local.InvalidateTag(ctx, tag); err != nil {
		return err
	}
	if b.client == nil {
		return nil
	}

	payload, err := json.Marshal(invalidationMessage{Origin: b.instanceID, Tag: tag})
	if err != nil {
		return fmt.Errorf("encode invalidation: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		b.log.Warn("Failed to broadcast cache invalidation", logger.Tag(tag), logger.Err(err))
	}
	return nil
}

// Listen applies invalidations published by other processes until ctx is
// done.
func (b *RedisBroadcaster) Listen(ctx context.Context) error {
	if b.client == nil {
		return nil
	}

	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	b.log.Info("Listening for cache invalidations", logger.String("channel", b.channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var inv invalidationMessage
			if err := json.Unmarshal([]byte(msg.Payload), &inv); err != nil {
				b.log.Warn("Ignoring malformed invalidation message", logger.Err(err))
				continue
			}
			if inv.Origin == b.instanceID {
				continue
			}
			if err := b.local.InvalidateTag(ctx, inv.Tag); err != nil {
				b.log.Warn("Failed to apply remote invalidation", logger.Tag(inv.Tag), logger.Err(err))
				continue
			}
			b.log.Debug("Applied remote invalidation", logger.Tag(inv.Tag))
		}
	}
}
