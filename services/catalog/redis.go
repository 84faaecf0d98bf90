package catalog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
)

const (
	useCacheFlag = "use-catalog-cache"
	cacheTTLFlag = "catalog-cache-ttl"
)

// RegisterFlags registers the catalog cache flags. Redis connection flags
// are registered with cs.RegisterRedisClientFlags.
func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.BoolFlag{
			Name:   useCacheFlag,
			Usage:  "cache catalog responses in redis",
			EnvVar: "USE_CATALOG_CACHE",
		},
		cli.DurationFlag{
			Name:   cacheTTLFlag,
			Usage:  "catalog search cache ttl",
			EnvVar: "CATALOG_CACHE_TTL",
			Value:  15 * time.Minute,
		},
	)
}

type RedisCache struct {
	cl redis.UniversalClient
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(cl redis.UniversalClient) *RedisCache {
	return &RedisCache{cl: cl}
}

func (s *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.cl.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get")
	}
	return data, true, nil
}

func (s *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.Wrap(s.cl.Set(ctx, key, value, ttl).Err(), "redis set")
}

// Wrap puts a redis-backed cache in front of cat if the cache is enabled.
// The returned closer must be called on shutdown.
func Wrap(c *cli.Context, cat Catalog) (Catalog, func()) {
	if !c.Bool(useCacheFlag) {
		return cat, func() {}
	}
	rc := cs.NewRedisClient(c)
	log.Info("catalog cache enabled")
	return NewCached(cat, NewRedisCache(rc.Get()), c.Duration(cacheTTLFlag)), rc.Close
}
