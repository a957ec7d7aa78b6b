package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Channel carries the change signal over a Redis pub/sub channel so cart
// store instances in different processes observe each other's writes.
//
// Every message is the publisher's origin UUID. A Channel drops messages
// carrying its own origin, mirroring how browser storage events fire in
// every tab except the one that wrote.
type Channel struct {
	client *goredis.Client
	name   string
	origin string
	pubsub *goredis.PubSub

	mu       sync.Mutex
	handlers []func()
}

// NewChannel subscribes to the named channel and starts dispatching
// incoming signals. The Channel takes ownership of client: Close tears
// down both the subscription and the client, so callers must hand it a
// dedicated client rather than one shared with a storage backend.
func NewChannel(ctx context.Context, client *goredis.Client, name string) (*Channel, error) {
	pubsub := client.Subscribe(ctx, name)
	// Force the SUBSCRIBE round-trip so a broken connection fails here
	// instead of silently losing signals later.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	c := &Channel{
		client: client,
		name:   name,
		origin: uuid.NewString(),
		pubsub: pubsub,
	}
	go c.listen()
	return c, nil
}

// NotifyChanged publishes this instance's origin ID on the channel.
func (c *Channel) NotifyChanged(ctx context.Context) error {
	return c.client.Publish(ctx, c.name, c.origin).Err()
}

// OnExternalChange registers a handler for signals from other instances.
func (c *Channel) OnExternalChange(handler func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Close unsubscribes, stops the dispatch goroutine, and closes the owned
// client.
func (c *Channel) Close() error {
	err := c.pubsub.Close()
	if cerr := c.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func (c *Channel) listen() {
	for msg := range c.pubsub.Channel() {
		if msg.Payload == c.origin {
			continue
		}
		c.mu.Lock()
		handlers := make([]func(), len(c.handlers))
		copy(handlers, c.handlers)
		c.mu.Unlock()

		for _, h := range handlers {
			h()
		}
	}
	slog.Debug("broadcast: redis channel closed", "channel", c.name)
}
