package location

import (
	"context"
	"errors"
	"log"
	"time"

	"weigh-backend/internal/geocode"
	"weigh-backend/internal/models"
)

// Acquisition failures. Callers classify with errors.Is.
var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrUnavailable      = errors.New("location unavailable")
	ErrTimeout          = errors.New("location acquisition timed out")
)

// State of the acquire/fallback machine.
type State string

const (
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
	StateManual  State = "manual"
)

// AcquireTimeout bounds a single GPS request.
const AcquireTimeout = 15 * time.Second

// AcquireOptions mirror the device fix request: high-accuracy, bounded,
// and never satisfied from a cached fix (MaxAge zero).
type AcquireOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaxAge       time.Duration
}

// Source abstracts the device positioning hardware.
type Source interface {
	Acquire(ctx context.Context, opts AcquireOptions) (models.LocationSample, error)
}

// PreferenceStore persists the permission-denial memory. It is injected at
// construction so the denial behavior is testable without a storage mock
// of the whole settings layer.
type PreferenceStore interface {
	PermissionDenied(ctx context.Context) (bool, error)
	SetPermissionDenied(ctx context.Context, denied bool) error
}

// Geocoder resolves coordinates to an address, best effort.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) geocode.Location
}

type Provider struct {
	source   Source
	prefs    PreferenceStore
	geocoder Geocoder

	state State
}

func NewProvider(source Source, prefs PreferenceStore, geocoder Geocoder) *Provider {
	return &Provider{
		source:   source,
		prefs:    prefs,
		geocoder: geocoder,
		state:    StateLoading,
	}
}

// State returns the current machine state.
func (p *Provider) State() State {
	return p.state
}

// Acquire requests a fresh high-accuracy fix. When permission was denied
// on an earlier session the request is skipped entirely and the caller is
// routed to manual entry until a successful fix clears the flag.
func (p *Provider) Acquire(ctx context.Context) (models.LocationSample, error) {
	p.state = StateLoading

	if denied, err := p.prefs.PermissionDenied(ctx); err == nil && denied {
		p.state = StateManual
		return models.LocationSample{}, ErrPermissionDenied
	}

	sample, err := p.source.Acquire(ctx, AcquireOptions{
		HighAccuracy: true,
		Timeout:      AcquireTimeout,
		MaxAge:       0,
	})
	if err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			if perr := p.prefs.SetPermissionDenied(ctx, true); perr != nil {
				log.Printf("[Location] Failed to persist denial flag: %v", perr)
			}
			p.state = StateManual
		} else {
			p.state = StateError
		}
		return models.LocationSample{}, err
	}

	// A successful fix clears the denial memory.
	if perr := p.prefs.SetPermissionDenied(ctx, false); perr != nil {
		log.Printf("[Location] Failed to clear denial flag: %v", perr)
	}

	// Reverse geocoding is best effort; coordinates alone are a success.
	if p.geocoder != nil {
		loc := p.geocoder.Reverse(ctx, sample.Latitude, sample.Longitude)
		sample.Address = loc.Address
		sample.City = loc.City
		sample.Country = loc.Country
	}

	p.state = StateSuccess
	return sample, nil
}

// Manual produces the lat=lon=0 sentinel sample for textual address entry.
// Always available, whatever the machine state.
func (p *Provider) Manual(address string) models.LocationSample {
	p.state = StateSuccess
	return models.LocationSample{
		Latitude:    0,
		Longitude:   0,
		Accuracy:    0,
		CapturedAt:  time.Now(),
		Address:     address,
		ManualEntry: true,
	}
}
