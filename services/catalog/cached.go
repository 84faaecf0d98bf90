package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/popcorn/models"
)

// Cache stores serialized catalog responses
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Cached struct {
	inner     Catalog
	cache     Cache
	searchTTL time.Duration
	detailTTL time.Duration
}

var _ Catalog = (*Cached)(nil)

func NewCached(inner Catalog, cache Cache, ttl time.Duration) *Cached {
	return &Cached{
		inner:     inner,
		cache:     cache,
		searchTTL: ttl,
		detailTTL: 4 * ttl,
	}
}

func (s *Cached) Search(ctx context.Context, query string) ([]models.SearchResultItem, error) {
	key := fmt.Sprintf("popcorn:search:%v", strings.ToLower(strings.TrimSpace(query)))
	var items []models.SearchResultItem
	if s.load(ctx, key, &items) {
		return items, nil
	}
	items, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, items, s.searchTTL)
	return items, nil
}

func (s *Cached) GetByID(ctx context.Context, id string) (*models.MovieDetail, error) {
	key := fmt.Sprintf("popcorn:detail:%v", id)
	var md models.MovieDetail
	if s.load(ctx, key, &md) {
		return &md, nil
	}
	res, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, res, s.detailTTL)
	return res, nil
}

func (s *Cached) load(ctx context.Context, key string, v any) bool {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to read catalog cache")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to decode cached catalog response")
		return false
	}
	return true
}

func (s *Cached) store(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to encode catalog response")
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to write catalog cache")
	}
}
