package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultCache stores finished analyses keyed by their input.
type ResultCache interface {
	Get(ctx context.Context, key string) (*Result, bool, error)
	Set(ctx context.Context, key string, r *Result) error
}

const cacheKeyPrefix = "erx:analysis:"

// RedisCache keeps results in Redis with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Result, bool, error) {
	b, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var r Result
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, false, fmt.Errorf("decode cached result: %w", err)
	}
	return &r, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, r *Result) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

type noopCache struct{}

// NoopCache never stores anything.
func NoopCache() ResultCache { return noopCache{} }

func (noopCache) Get(context.Context, string) (*Result, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, string, *Result) error         { return nil }

// cacheKey hashes everything that can change a result: the joined note
// text, the normalized allergy set and the elderly flag.
func cacheKey(text string, p Patient) string {
	allergies := make([]string, 0, len(p.Allergies))
	for _, a := range p.Allergies {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			allergies = append(allergies, a)
		}
	}
	sort.Strings(allergies)

	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(allergies, ",")))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(p.Age >= elderlyAge)))
	return hex.EncodeToString(h.Sum(nil))
}
