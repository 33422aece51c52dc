package barcode

import (
	"errors"
	"testing"

	"weigh-backend/internal/apperrors"
)

type countingPulser struct{ pulses int }

func (p *countingPulser) Pulse() { p.pulses++ }

func TestDecoder_acceptsAfterMinOccurrences(t *testing.T) {
	pulser := &countingPulser{}
	d := NewDecoder(DefaultPolicy, pulser)

	if _, ok := d.Observe("JT1234567890"); ok {
		t.Fatal("accepted after one observation")
	}
	if _, ok := d.Observe("JT1234567890"); ok {
		t.Fatal("accepted after two observations")
	}

	code, ok := d.Observe("JT1234567890")
	if !ok {
		t.Fatal("not accepted after three observations")
	}
	if code != "JT1234567890" {
		t.Errorf("code = %q", code)
	}
	if pulser.pulses != 1 {
		t.Errorf("pulses = %d, want 1", pulser.pulses)
	}
	if !d.Stopped() {
		t.Error("decoder should stop after acceptance")
	}
}

func TestDecoder_toleratesJitterFrames(t *testing.T) {
	d := NewDecoder(DefaultPolicy, nil)

	// Misreads interleaved with the true code still accept within the window.
	frames := []string{"JT1234567890", "JT1234567BAD", "JT1234567890", "XX", "JT1234567890"}
	var accepted string
	for _, f := range frames {
		if code, ok := d.Observe(f); ok {
			accepted = code
		}
	}
	if accepted != "JT1234567890" {
		t.Errorf("accepted = %q, want the repeated code", accepted)
	}
}

func TestDecoder_windowEviction(t *testing.T) {
	d := NewDecoder(Policy{WindowSize: 3, MinOccurrences: 3}, nil)

	// Two hits, then enough noise to push them out of the window.
	d.Observe("JT1234567890")
	d.Observe("JT1234567890")
	d.Observe("noise1")
	d.Observe("noise2")
	d.Observe("noise3")

	if _, ok := d.Observe("JT1234567890"); ok {
		t.Error("evicted occurrences must not count toward acceptance")
	}
}

func TestDecoder_stoppedIgnoresFrames(t *testing.T) {
	d := NewDecoder(Policy{WindowSize: 5, MinOccurrences: 1}, nil)

	if _, ok := d.Observe("JT1234567890"); !ok {
		t.Fatal("single-occurrence policy should accept immediately")
	}
	if _, ok := d.Observe("JT1234567890"); ok {
		t.Error("stopped decoder must ignore further frames")
	}
}

func TestDecoder_resetResumesDecoding(t *testing.T) {
	d := NewDecoder(Policy{WindowSize: 5, MinOccurrences: 1}, nil)
	d.Observe("NOTVALID")
	d.Reset()

	if d.Stopped() {
		t.Error("reset decoder should not be stopped")
	}
	if _, ok := d.Observe("JT1234567890"); !ok {
		t.Error("decoder should accept again after reset")
	}
}

func TestDecoder_ignoresEmptyFrames(t *testing.T) {
	d := NewDecoder(Policy{WindowSize: 5, MinOccurrences: 1}, nil)
	if _, ok := d.Observe(""); ok {
		t.Error("empty frame must never be accepted")
	}
}

func TestValidateFormat(t *testing.T) {
	valid := []string{"JT12345678", "ABCDEFGHIJ1234567890", "0001112223"}
	for _, code := range valid {
		if err := ValidateFormat(code); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", code, err)
		}
	}

	invalid := []string{"", "SHORT", "JT12345678901234567890X", "JT-12345678", "JT 12345678"}
	for _, code := range invalid {
		err := ValidateFormat(code)
		if err == nil {
			t.Errorf("ValidateFormat(%q) = nil, want error", code)
			continue
		}
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("ValidateFormat(%q) = %v, want validation error", code, err)
		}
	}
}
