package broadcast

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestChannelCloseClosesOwnedClient(t *testing.T) {
	// No server needed: construction is lazy and Close must release the
	// client regardless of connection state.
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:0"})
	c := &Channel{
		client: client,
		name:   "cart-changed",
		origin: "origin-1",
		pubsub: client.Subscribe(context.Background(), "cart-changed"),
	}

	require.NoError(t, c.Close())

	err := client.Ping(context.Background()).Err()
	require.ErrorContains(t, err, "closed")
}
