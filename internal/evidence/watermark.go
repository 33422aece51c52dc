package evidence

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"weigh-backend/internal/models"
	"weigh-backend/internal/timeutil"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// Compositor stamps context metadata onto a photo and returns JPEG bytes.
type Compositor interface {
	Render(photo []byte, lines []string) ([]byte, error)
}

// maxAddressRunes bounds the address line; longer addresses are cut with
// an ellipsis so the band never overflows four lines.
const maxAddressRunes = 64

// OverlayLines builds the watermark text for a capture, top to bottom:
// timestamp, coordinates (or the manual-entry marker), address, accuracy
// radius. A missing sample still yields the timestamp line so evidence is
// never stamped blank.
func OverlayLines(sample *models.LocationSample, capturedAt string) []string {
	lines := []string{capturedAt}
	if sample == nil {
		return lines
	}

	if sample.ManualEntry {
		lines = append(lines, "Lokasi manual")
	} else if sample.HasCoordinates() {
		lines = append(lines, fmt.Sprintf("%.6f, %.6f", sample.Latitude, sample.Longitude))
	}

	if addr := placeLine(sample); addr != "" {
		lines = append(lines, truncateRunes(addr, maxAddressRunes))
	}

	if !sample.ManualEntry && sample.Accuracy > 0 {
		lines = append(lines, fmt.Sprintf("Akurasi ±%.0f m", sample.Accuracy))
	}
	return lines
}

func placeLine(sample *models.LocationSample) string {
	addr := sample.Address
	if sample.City != "" && !strings.Contains(addr, sample.City) {
		if addr != "" {
			addr += ", "
		}
		addr += sample.City
	}
	if sample.Country != "" && !strings.Contains(addr, sample.Country) {
		if addr != "" {
			addr += ", "
		}
		addr += sample.Country
	}
	return addr
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// CaptureTimestamp formats the stamp time in WIB for the overlay.
func CaptureTimestamp() string {
	return timeutil.Now().Format(timeutil.DateTimeLayout) + " WIB"
}

// BandRenderer draws the text lines on a dark band along the bottom edge.
// The band is rendered at the bitmap font's native scale and resized to
// the photo's width so the text stays readable on large captures.
type BandRenderer struct {
	quality int
}

func NewBandRenderer() *BandRenderer {
	return &BandRenderer{quality: 95}
}

const (
	bandPadding  = 6
	bandLineH    = 18 // inconsolata.Bold8x16 glyph height plus leading
	bandMinWidth = 320
)

func (r *BandRenderer) Render(photo []byte, lines []string) ([]byte, error) {
	if len(lines) == 0 {
		return photo, nil
	}

	img, err := imaging.Decode(bytes.NewReader(photo), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding photo for watermark: %w", err)
	}

	strip := r.renderStrip(lines)

	// Scale the strip to the photo width, then pin it to the bottom.
	w := img.Bounds().Dx()
	if w < bandMinWidth {
		w = bandMinWidth
	}
	scaled := imaging.Resize(strip, w, 0, imaging.Lanczos)
	out := imaging.Overlay(img, scaled, image.Pt(0, img.Bounds().Dy()-scaled.Bounds().Dy()), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(r.quality)); err != nil {
		return nil, fmt.Errorf("encoding watermarked photo: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *BandRenderer) renderStrip(lines []string) *image.NRGBA {
	face := inconsolata.Bold8x16
	width := bandMinWidth
	for _, line := range lines {
		if lw := len(line)*8 + 2*bandPadding; lw > width {
			width = lw
		}
	}
	height := len(lines)*bandLineH + 2*bandPadding

	strip := imaging.New(width, height, color.NRGBA{0, 0, 0, 170})

	for i, line := range lines {
		y := bandPadding + i*bandLineH + face.Ascent
		drawText(strip, line, bandPadding+1, y+1, color.NRGBA{0, 0, 0, 255}, face)
		drawText(strip, line, bandPadding, y, color.NRGBA{255, 255, 255, 255}, face)
	}
	return strip
}

func drawText(dst *image.NRGBA, text string, x, y int, col color.NRGBA, face font.Face) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
