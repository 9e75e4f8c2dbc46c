package revalidate

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newSignaler(t *testing.T) (*Signaler, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb), mr, rdb
}

func TestMarkStaleDropsMatchingKeys(t *testing.T) {
	s, mr, _ := newSignaler(t)
	ctx := context.Background()

	mr.Set(KeyPrefix+"post:hello:/api/v1/posts/hello", "cached")
	mr.Set(KeyPrefix+"post:hello:/api/v1/posts/hello/comments", "cached")
	mr.Set(KeyPrefix+"post:other:/api/v1/posts/other", "cached")

	s.MarkStale(ctx, PostView("hello"))

	require.False(t, mr.Exists(KeyPrefix+"post:hello:/api/v1/posts/hello"))
	require.False(t, mr.Exists(KeyPrefix+"post:hello:/api/v1/posts/hello/comments"))
	require.True(t, mr.Exists(KeyPrefix+"post:other:/api/v1/posts/other"))
}

func TestMarkStalePublishes(t *testing.T) {
	s, _, rdb := newSignaler(t)
	ctx := context.Background()

	sub := rdb.Subscribe(ctx, Channel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	s.MarkStale(ctx, DashboardView())

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	require.Equal(t, "dashboard", msg.Payload)
}

func TestNilSignalerIsSafe(t *testing.T) {
	var s *Signaler
	s.MarkStale(context.Background(), PostListView())
}
