package cache

import (
	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/store"
	redisStore "github.com/eko/gocache/store/redis/v4"
	ristrettoStore "github.com/eko/gocache/store/ristretto/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var S store.StoreInterface

// NewStore picks redis when an address is given, an in-process ristretto cache otherwise.
func NewStore(redisAddr string) error {
	if len(redisAddr) > 0 {
		S = redisStore.NewRedis(redis.NewClient(&redis.Options{Addr: redisAddr}))
		log.Info().Str("addr", redisAddr).Msg("Cache store set up with redis.")
		return nil
	}

	ristrettoCache, err := NewRistretto()
	if err != nil {
		return err
	}
	S = ristrettoStore.NewRistretto(ristrettoCache)
	log.Info().Msg("Cache store set up with ristretto.")
	return nil
}

func NewRistretto() (*ristretto.Cache, error) {
	return ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,
		MaxCost:     1 << 27,
		BufferItems: 64,
	})
}
