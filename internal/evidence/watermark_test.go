package evidence

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"weigh-backend/internal/models"
)

func TestOverlayLines_nilSample(t *testing.T) {
	lines := OverlayLines(nil, "2026-08-31 14:00:00 WIB")
	if len(lines) != 1 || lines[0] != "2026-08-31 14:00:00 WIB" {
		t.Errorf("lines = %v, want just the timestamp", lines)
	}
}

func TestOverlayLines_gpsSample(t *testing.T) {
	sample := &models.LocationSample{
		Latitude:  -6.2,
		Longitude: 106.816666,
		Accuracy:  12.4,
		Address:   "Jl. Sudirman No. 1",
		City:      "Jakarta",
		Country:   "Indonesia",
	}
	lines := OverlayLines(sample, "ts")

	if len(lines) != 4 {
		t.Fatalf("len(lines) = %d, want 4: %v", len(lines), lines)
	}
	if !strings.Contains(lines[1], "-6.200000") || !strings.Contains(lines[1], "106.816666") {
		t.Errorf("coordinate line = %q", lines[1])
	}
	if lines[2] != "Jl. Sudirman No. 1, Jakarta, Indonesia" {
		t.Errorf("address line = %q", lines[2])
	}
	if !strings.Contains(lines[3], "12") {
		t.Errorf("accuracy line = %q", lines[3])
	}
}

func TestOverlayLines_manualSample(t *testing.T) {
	sample := &models.LocationSample{Address: "Gudang Cakung", ManualEntry: true}
	lines := OverlayLines(sample, "ts")

	// Manual marker instead of coordinates, no accuracy line.
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3: %v", len(lines), lines)
	}
	if lines[1] != "Lokasi manual" {
		t.Errorf("marker line = %q", lines[1])
	}
	if lines[2] != "Gudang Cakung" {
		t.Errorf("address line = %q", lines[2])
	}
}

func TestOverlayLines_longAddressTruncated(t *testing.T) {
	sample := &models.LocationSample{
		Latitude:  -6.2,
		Longitude: 106.8,
		Address:   strings.Repeat("Jl. Panjang Sekali ", 10),
	}
	lines := OverlayLines(sample, "ts")

	addr := lines[2]
	if len([]rune(addr)) > maxAddressRunes {
		t.Errorf("address line is %d runes, want <= %d", len([]rune(addr)), maxAddressRunes)
	}
	if !strings.HasSuffix(addr, "…") {
		t.Errorf("truncated address should end with an ellipsis: %q", addr)
	}
}

func TestBandRenderer_outputDecodesWithSameBounds(t *testing.T) {
	r := NewBandRenderer()
	photo := testJPEG(t, 640, 480)

	out, err := r.Render(photo, []string{"2026-08-31 14:00:00 WIB", "-6.200000, 106.816666"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 480 {
		t.Errorf("bounds = %v, want 640x480", img.Bounds())
	}
}

func TestBandRenderer_noLinesIsPassthrough(t *testing.T) {
	r := NewBandRenderer()
	photo := testJPEG(t, 100, 100)

	out, err := r.Render(photo, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(out, photo) {
		t.Error("no overlay lines should return the photo unchanged")
	}
}

func TestBandRenderer_invalidPhoto(t *testing.T) {
	r := NewBandRenderer()
	if _, err := r.Render([]byte("junk"), []string{"ts"}); err == nil {
		t.Error("expected error for undecodable photo")
	}
}
