package revalidate

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Cached read views are stored under KeyPrefix + view + ":" + request URI.
// Write paths call MarkStale with the views they touched; cached copies are
// dropped and the change is announced on Channel so other processes can react.
const (
	KeyPrefix = "inkwell:view:"
	Channel   = "inkwell:view:stale"
)

// View names for the read surfaces the platform caches.
func PostView(slug string) string { return "post:" + slug }

func PostListView() string { return "posts" }

func DashboardView() string { return "dashboard" }

func GalleryView(ownerID string) string { return "gallery:" + ownerID }

// Signaler marks logical views stale.
type Signaler struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Signaler { return &Signaler{rdb: rdb} }

// MarkStale drops every cached copy of the given views and publishes their
// names. A nil signaler or redis failure is silent; serving a stale view is
// acceptable, failing the write is not.
func (s *Signaler) MarkStale(ctx context.Context, views ...string) {
	if s == nil || s.rdb == nil {
		return
	}
	for _, view := range views {
		if view == "" {
			continue
		}
		s.purge(ctx, KeyPrefix+view+":*")
		_ = s.rdb.Publish(ctx, Channel, view).Err()
	}
}

func (s *Signaler) purge(ctx context.Context, pattern string) {
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			_ = s.rdb.Del(ctx, keys...).Err()
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
