package pagecache

import (
	"context"
	"testing"
	"time"

	"github.com/Triaksa-Space/be-landing-cms/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBroadcaster_LocalOnlyWithoutClient(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("k", "v", 0, "landing-page")

	b := NewRedisBroadcaster(nil, "cms:invalidate", c, logger.Nop())
	require.NoError(t, b.InvalidateTag(context.Background(), "landing-page"))

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.NoError(t, b.Listen(context.Background()))
}

func TestRedisBroadcaster_PropagatesToPeers(t *testing.T) {
	mr := miniredis.RunT(t)

	newClient := func() *redis.Client {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return client
	}

	writerCache := New[string](time.Minute)
	peerCache := New[string](time.Minute)

	writer := NewRedisBroadcaster(newClient(), "cms:invalidate", writerCache, logger.Nop())
	peer := NewRedisBroadcaster(newClient(), "cms:invalidate", peerCache, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- peer.Listen(ctx) }()

	// Publishing before the subscription is live loses the message, so keep
	// re-seeding and re-publishing until the peer observes one.
	require.Eventually(t, func() bool {
		peerCache.Set("k", "v", 0, "landing-page")
		_ = writer.InvalidateTag(context.Background(), "landing-page")
		time.Sleep(10 * time.Millisecond)
		_, ok := peerCache.Get("k")
		return !ok
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestRedisBroadcaster_IgnoresOwnMessages(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := New[string](time.Minute)
	b := NewRedisBroadcaster(client, "cms:invalidate", c, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = b.Listen(ctx) }()

	require.NoError(t, b.InvalidateTag(context.Background(), "landing-page"))
	gen := c.Generation()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, gen, c.Generation())
}
