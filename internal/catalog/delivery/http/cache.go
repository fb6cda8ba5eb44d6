package http

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nurtai/product-catalog/pkg/logger"
)

const cacheKeyPrefix = "catalog:cache:"

// ResponseCache caches GET responses in Redis. A nil *ResponseCache or a nil
// client disables caching without any branching at call sites.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache. client may be nil.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// cacheRecorder buffers the response so a 200 can be stored after serving.
type cacheRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (cr *cacheRecorder) WriteHeader(code int) {
	cr.statusCode = code
	cr.ResponseWriter.WriteHeader(code)
}

func (cr *cacheRecorder) Write(b []byte) (int, error) {
	cr.body.Write(b)
	return cr.ResponseWriter.Write(b)
}

// Middleware serves cached bodies for GET requests and stores fresh 200
// responses under the request's cache key.
func (c *ResponseCache) Middleware(next http.HandlerFunc) http.HandlerFunc {
	if c == nil || c.client == nil {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := cacheKey(r)
		ctx := r.Context()

		if cached, err := c.client.Get(ctx, key).Bytes(); err == nil && len(cached) > 0 {
			logger.Debug(ctx).Str("path", r.URL.Path).Msg("Cache hit")
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write(cached)
			return
		}

		rec := &cacheRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		rec.Header().Set("X-Cache", "MISS")
		next.ServeHTTP(rec, r)

		if rec.statusCode == http.StatusOK {
			if err := c.client.Set(ctx, key, rec.body.Bytes(), c.ttl).Err(); err != nil {
				logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to cache response")
			}
		}
	}
}

// Invalidate drops every cached response. Called after mutations so reads
// never serve a deleted or stale record for the TTL duration.
func (c *ResponseCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, cacheKeyPrefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
		logger.Debug(ctx).Int("count", len(keys)).Msg("Response cache invalidated")
	}
	return nil
}

// cacheKey hashes method, path and query into a fixed-length Redis key.
func cacheKey(r *http.Request) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", r.Method, r.URL.Path, r.URL.RawQuery)))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
