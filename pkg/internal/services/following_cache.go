package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
)

const DefaultFollowingCacheTTL = 5 * time.Minute

func GetFollowedAuthorsCacheKey(follower uint) string {
	return fmt.Sprintf("followed-authors#%d", follower)
}

// CachedRelationships keeps the followed author set of each follower in a cache and
// evicts it whenever that follower follows or unfollows someone.
type CachedRelationships struct {
	*RelationshipStore

	marshal *marshaler.Marshaler
	ttl     time.Duration
}

func NewCachedRelationships(source *RelationshipStore, s store.StoreInterface, ttl time.Duration) *CachedRelationships {
	if ttl <= 0 {
		ttl = DefaultFollowingCacheTTL
	}
	return &CachedRelationships{
		RelationshipStore: source,
		marshal:           marshaler.New(cache.New[any](s)),
		ttl:               ttl,
	}
}

func (c *CachedRelationships) ListFollowedAuthors(ctx context.Context, follower uint) ([]uint, error) {
	key := GetFollowedAuthorsCacheKey(follower)
	if hit, err := c.marshal.Get(ctx, key, new([]uint)); err == nil {
		if idx, ok := hit.(*[]uint); ok {
			return *idx, nil
		}
	}

	idx, err := c.RelationshipStore.ListFollowedAuthors(ctx, follower)
	if err != nil {
		return idx, err
	}
	if err := c.marshal.Set(
		ctx,
		key,
		idx,
		store.WithExpiration(c.ttl),
		store.WithTags([]string{"followed-authors", fmt.Sprintf("user#%d", follower)}),
	); err != nil {
		log.Warn().Err(err).Uint("follower", follower).Msg("Unable to cache followed authors...")
	}
	return idx, nil
}

func (c *CachedRelationships) Follow(ctx context.Context, follower, author uint) error {
	if err := c.RelationshipStore.Follow(ctx, follower, author); err != nil {
		return err
	}
	c.evict(ctx, follower)
	return nil
}

func (c *CachedRelationships) Unfollow(ctx context.Context, follower, author uint) (bool, error) {
	removed, err := c.RelationshipStore.Unfollow(ctx, follower, author)
	if err != nil {
		return removed, err
	}
	if removed {
		c.evict(ctx, follower)
	}
	return removed, nil
}

func (c *CachedRelationships) evict(ctx context.Context, follower uint) {
	if err := c.marshal.Delete(ctx, GetFollowedAuthorsCacheKey(follower)); err != nil {
		log.Warn().Err(err).Uint("follower", follower).Msg("Unable to evict followed authors cache...")
	}
}
