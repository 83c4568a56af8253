package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/folio-app/folio/internal/platform/constants"
	"github.com/folio-app/folio/pkg/slug"
)

// ResultCache is the optional volatile cache for whole search result sets.
//
// It is strictly best-effort: the orchestrator treats every failure as a
// cache miss and never lets the cache block or fail a search.
type ResultCache interface {

	// Get returns the cached result set for a search, or (nil, nil) on a miss.
	Get(context context.Context, query string, options SearchOptions) ([]*Book, error)

	// Set stores a result set for a search with the platform TTL.
	Set(context context.Context, query string, options SearchOptions, results []*Book) error
}

// RedisResultCache implements [ResultCache] on Redis.
type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisResultCache creates a Redis-backed search result cache.
func NewRedisResultCache(client *redis.Client) *RedisResultCache {
	return &RedisResultCache{
		client: client,
		ttl:    constants.SearchCacheTTL,
	}
}

/*
Get returns the cached result set for a search.

Description: Returns (nil, nil) when the key is absent or expired, so callers
can treat miss and failure alike.

Parameters:
  - context: context.Context
  - query: string
  - options: SearchOptions

Returns:
  - []*Book: Cached records, or nil on a miss
  - error: Connectivity or decoding failures
*/
func (cache *RedisResultCache) Get(context context.Context, query string, options SearchOptions) ([]*Book, error) {
	key := cacheKey(query, options)

	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_search_cache_get_failed: %w", err)
	}

	var results []*Book
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, fmt.Errorf("redis_search_cache_decode_failed: %w", err)
	}

	return results, nil
}

/*
Set stores a result set for a search.

Parameters:
  - context: context.Context
  - query: string
  - options: SearchOptions
  - results: []*Book

Returns:
  - error: Encoding or connectivity failures
*/
func (cache *RedisResultCache) Set(context context.Context, query string, options SearchOptions, results []*Book) error {
	key := cacheKey(query, options)

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("redis_search_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, key, payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_search_cache_set_failed: %w", err)
	}

	return nil
}

// cacheKey folds the query so "Dune  " and "dune" share an entry, and
// namespaces by the options that change the result set.
func cacheKey(query string, options SearchOptions) string {
	return fmt.Sprintf("%s%s:%d:%t",
		constants.RedisPrefixSearch, slug.From(query), options.MaxResults, options.IncludeExternal)
}
