package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes the Redis connection. Redis is optional; callers
// degrade gracefully when the client is nil.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when unavailable)
func GetClient() *redis.Client {
	return client
}

// geocodeKey buckets coordinates to ~11m so nearby fixes share a cache slot.
func geocodeKey(lat, lon float64) string {
	return fmt.Sprintf("geo:%.4f:%.4f", lat, lon)
}

// GetGeocode returns a cached reverse-geocode result for rounded coordinates.
func GetGeocode(ctx context.Context, lat, lon float64) (string, bool) {
	if client == nil {
		return "", false
	}
	val, err := client.Get(ctx, geocodeKey(lat, lon)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// SetGeocode caches a reverse-geocode result with the given TTL.
func SetGeocode(ctx context.Context, lat, lon float64, payload string, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, geocodeKey(lat, lon), payload, ttl)
}
