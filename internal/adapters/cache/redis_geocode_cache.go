package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache stores resolved coordinates per normalized address.
// Geocode results change rarely, so entries carry a long TTL rather than
// explicit invalidation.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{
		Client: client,
		TTL:    30 * 24 * time.Hour,
	}
}

// Fetch cached coordinates for the given addresses. Addresses without a
// cached value are simply absent from the result.
func (c *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("geocode cache: client is nil")
	}

	if len(addresses) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	keys := make([]string, 0, len(addresses))
	for _, a := range addresses {
		keys = append(keys, geocodeKeyPrefix+a)
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(addresses))
	for i, v := range vals {
		if v == nil {
			continue
		}

		raw, ok := v.(string)
		if !ok {
			continue
		}

		var coord domain.Coordinates
		if err := json.Unmarshal([]byte(raw), &coord); err != nil {
			// Treat a corrupt entry as a miss; the provider re-resolves
			// and overwrites it.
			continue
		}

		out[addresses[i]] = coord
	}

	return out, nil
}

// Store coordinates for many addresses in one round trip.
func (c *RedisGeocodeCache) PutMany(
	ctx context.Context,
	coords map[string]domain.Coordinates,
) error {
	if c.Client == nil {
		return errors.New("geocode cache: client is nil")
	}

	if len(coords) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for addr, coord := range coords {
		if addr == "" {
			return errors.New("insert geocode cache: empty address key")
		}

		payload, err := json.Marshal(coord)
		if err != nil {
			return fmt.Errorf("insert geocode cache addr=%q: marshal: %w", addr, err)
		}

		pipe.Set(ctx, geocodeKeyPrefix+addr, payload, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: pipeline exec: %w", err)
	}

	return nil
}
