package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"weigh-backend/internal/cache"
	"weigh-backend/internal/metrics"
)

// UnknownLocation is returned whenever the upstream service cannot be
// reached or answers garbage. Reverse geocoding is best-effort by contract.
const UnknownLocation = "Unknown Location"

// minInterval is the upstream ToS gate: at most one lookup per second.
const minInterval = time.Second

// Location is the reverse-geocoded place for a coordinate pair.
type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type Client struct {
	baseURL  string
	cacheTTL time.Duration
	httpc    *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

func NewClient(baseURL string, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		cacheTTL: cacheTTL,
		httpc:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Reverse resolves lat/lon to an address. It never returns an error: any
// upstream failure degrades to the UnknownLocation fallback. Results are
// cached in Redis keyed by rounded coordinates; the upstream call itself
// is throttled to one per second.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) Location {
	if payload, ok := cache.GetGeocode(ctx, lat, lon); ok {
		var loc Location
		if json.Unmarshal([]byte(payload), &loc) == nil {
			metrics.GeocodeLookupsTotal.WithLabelValues("hit").Inc()
			return loc
		}
	}

	if err := c.throttle(ctx); err != nil {
		metrics.GeocodeLookupsTotal.WithLabelValues("fallback").Inc()
		return Location{Address: UnknownLocation}
	}

	loc, err := c.fetch(ctx, lat, lon)
	if err != nil {
		log.Printf("[Geocode] Lookup failed for %.6f,%.6f: %v", lat, lon, err)
		metrics.GeocodeLookupsTotal.WithLabelValues("fallback").Inc()
		return Location{Address: UnknownLocation}
	}

	if payload, err := json.Marshal(loc); err == nil {
		cache.SetGeocode(ctx, lat, lon, string(payload), c.cacheTTL)
	}

	metrics.GeocodeLookupsTotal.WithLabelValues("miss").Inc()
	return loc
}

// throttle blocks until a full second has passed since the previous
// upstream call, or the context is done.
func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	wait := minInterval - time.Since(c.lastCall)
	c.lastCall = time.Now().Add(wait)
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (Location, error) {
	url := fmt.Sprintf("%s?format=json&lat=%.6f&lon=%.6f", c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}, err
	}
	req.Header.Set("User-Agent", "weigh-backend/1.0")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			Country string `json:"country"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, err
	}

	if body.DisplayName == "" {
		return Location{}, fmt.Errorf("empty geocoder response")
	}

	city := body.Address.City
	if city == "" {
		city = body.Address.Town
	}
	if city == "" {
		city = body.Address.Village
	}

	return Location{
		Address: body.DisplayName,
		City:    city,
		Country: body.Address.Country,
	}, nil
}
