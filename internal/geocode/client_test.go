package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestReverse_parsesNominatimShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("missing format=json, query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"display_name": "Jl. Jend. Sudirman, Jakarta, Indonesia",
			"address": {"city": "Jakarta", "country": "Indonesia"}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)
	loc := c.Reverse(context.Background(), -6.2, 106.816666)

	if loc.Address != "Jl. Jend. Sudirman, Jakarta, Indonesia" {
		t.Errorf("Address = %q", loc.Address)
	}
	if loc.City != "Jakarta" || loc.Country != "Indonesia" {
		t.Errorf("City/Country = %q/%q", loc.City, loc.Country)
	}
}

func TestReverse_townFallsBackForCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"display_name": "Somewhere rural",
			"address": {"town": "Cikarang", "country": "Indonesia"}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)
	loc := c.Reverse(context.Background(), -6.3, 107.1)

	if loc.City != "Cikarang" {
		t.Errorf("City = %q, want the town fallback", loc.City)
	}
}

func TestReverse_upstreamErrorDegradesToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)
	loc := c.Reverse(context.Background(), -6.2, 106.8)

	if loc.Address != UnknownLocation {
		t.Errorf("Address = %q, want %q", loc.Address, UnknownLocation)
	}
}

func TestReverse_unreachableDegradesToUnknown(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Minute)
	loc := c.Reverse(context.Background(), -6.2, 106.8)

	if loc.Address != UnknownLocation {
		t.Errorf("Address = %q, want %q", loc.Address, UnknownLocation)
	}
}

func TestReverse_throttleSpacing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"display_name": "X", "address": {}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)
	start := time.Now()
	c.Reverse(context.Background(), 1, 1)
	c.Reverse(context.Background(), 2, 2)
	elapsed := time.Since(start)

	if elapsed < minInterval {
		t.Errorf("two upstream calls completed in %v, want at least %v apart", elapsed, minInterval)
	}
}

func TestReverse_cancelledContextDegradesToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"display_name": "X", "address": {}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute)
	c.Reverse(context.Background(), 1, 1) // prime the throttle

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loc := c.Reverse(ctx, 2, 2)

	if loc.Address != UnknownLocation {
		t.Errorf("Address = %q, want %q", loc.Address, UnknownLocation)
	}
}
