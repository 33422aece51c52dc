package location

import (
	"context"
	"errors"
	"testing"

	"weigh-backend/internal/geocode"
	"weigh-backend/internal/models"
)

type fakeSource struct {
	sample models.LocationSample
	err    error
	calls  int
}

func (f *fakeSource) Acquire(ctx context.Context, opts AcquireOptions) (models.LocationSample, error) {
	f.calls++
	return f.sample, f.err
}

type memPrefs struct {
	denied bool
}

func (m *memPrefs) PermissionDenied(ctx context.Context) (bool, error) { return m.denied, nil }
func (m *memPrefs) SetPermissionDenied(ctx context.Context, denied bool) error {
	m.denied = denied
	return nil
}

type fakeGeocoder struct {
	loc geocode.Location
}

func (f *fakeGeocoder) Reverse(ctx context.Context, lat, lon float64) geocode.Location {
	return f.loc
}

func TestAcquire_success(t *testing.T) {
	source := &fakeSource{sample: models.LocationSample{Latitude: -6.2, Longitude: 106.8, Accuracy: 12}}
	geocoder := &fakeGeocoder{loc: geocode.Location{Address: "Jl. Sudirman", City: "Jakarta", Country: "Indonesia"}}
	p := NewProvider(source, &memPrefs{}, geocoder)

	sample, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if p.State() != StateSuccess {
		t.Errorf("state = %v, want success", p.State())
	}
	if sample.Address != "Jl. Sudirman" || sample.City != "Jakarta" {
		t.Errorf("geocode not applied: %+v", sample)
	}
	if !sample.HasCoordinates() {
		t.Error("sample should carry coordinates")
	}
}

func TestAcquire_denialPersistsAndShortCircuits(t *testing.T) {
	source := &fakeSource{err: ErrPermissionDenied}
	prefs := &memPrefs{}
	p := NewProvider(source, prefs, nil)

	_, err := p.Acquire(context.Background())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want permission denied", err)
	}
	if p.State() != StateManual {
		t.Errorf("state = %v, want manual", p.State())
	}
	if !prefs.denied {
		t.Error("denial must be persisted")
	}

	// Second acquire must not touch the hardware at all.
	_, err = p.Acquire(context.Background())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want permission denied", err)
	}
	if source.calls != 1 {
		t.Errorf("source called %d times, want 1", source.calls)
	}
}

func TestAcquire_successClearsDenialMemory(t *testing.T) {
	source := &fakeSource{sample: models.LocationSample{Latitude: 1, Longitude: 2}}
	prefs := &memPrefs{}
	p := NewProvider(source, prefs, nil)

	// Manually-cleared flag simulates the user re-granting permission in
	// device settings before the next session.
	prefs.denied = false

	if _, err := p.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if prefs.denied {
		t.Error("successful fix must clear the denial flag")
	}
}

func TestAcquire_hardwareErrorIsNotDenial(t *testing.T) {
	source := &fakeSource{err: ErrUnavailable}
	prefs := &memPrefs{}
	p := NewProvider(source, prefs, nil)

	_, err := p.Acquire(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
	if p.State() != StateError {
		t.Errorf("state = %v, want error", p.State())
	}
	if prefs.denied {
		t.Error("a hardware failure must not set the denial flag")
	}
}

func TestManual_sentinel(t *testing.T) {
	p := NewProvider(&fakeSource{}, &memPrefs{}, nil)

	sample := p.Manual("Gudang Cakung")
	if sample.Latitude != 0 || sample.Longitude != 0 {
		t.Errorf("manual sample coordinates = %f,%f, want the 0,0 sentinel", sample.Latitude, sample.Longitude)
	}
	if !sample.ManualEntry {
		t.Error("manual sample must be flagged")
	}
	if sample.Address != "Gudang Cakung" {
		t.Errorf("address = %q", sample.Address)
	}
	if sample.HasCoordinates() {
		t.Error("manual sentinel must not report coordinates")
	}
}
