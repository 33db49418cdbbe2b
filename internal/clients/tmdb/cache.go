package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"topmovies/proj/internal/domain/models"
	"topmovies/proj/internal/services/catalog"

	"github.com/redis/go-redis/v9"
)

const (
	searchKeyPrefix  = "tmdb:search:"
	detailsKeyPrefix = "tmdb:movie:"
	cacheOpTimeout   = 3 * time.Second
)

// CachedProvider is a read-through Redis cache in front of another provider.
// Only successful responses are cached and a cache outage degrades to direct
// upstream calls.
type CachedProvider struct {
	log    *slog.Logger
	next   catalog.MetadataProvider
	client *redis.Client
	ttl    time.Duration
}

func NewCachedProvider(log *slog.Logger, next catalog.MetadataProvider, client *redis.Client, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		log:    log,
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

func (c *CachedProvider) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	key := searchKeyPrefix + strings.ToLower(strings.TrimSpace(query))
	var candidates []models.Candidate
	if c.load(ctx, key, &candidates) {
		return candidates, nil
	}
	candidates, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, candidates)
	return candidates, nil
}

func (c *CachedProvider) GetDetails(ctx context.Context, externalID int) (*models.MovieDetails, error) {
	key := detailsKeyPrefix + strconv.Itoa(externalID)
	var details models.MovieDetails
	if c.load(ctx, key, &details) {
		return &details, nil
	}
	fetched, err := c.next.GetDetails(ctx, externalID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fetched)
	return fetched, nil
}

func (c *CachedProvider) load(ctx context.Context, key string, dst any) bool {
	const op = "tmdb.CachedProvider.load"
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache read failed", "op", op, "key", key, "errMsg", err.Error())
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn("dropping undecodable cache entry", "op", op, "key", key, "errMsg", err.Error())
		c.client.Del(ctx, key)
		return false
	}
	c.log.Debug("cache hit", "key", key)
	return true
}

func (c *CachedProvider) store(ctx context.Context, key string, value any) {
	const op = "tmdb.CachedProvider.store"
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache encode failed", "op", op, "key", key, "errMsg", err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", "op", op, "key", key, "errMsg", err.Error())
	}
}
