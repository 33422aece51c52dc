package evidence

import (
	"bytes"
	"image"
	"log"

	"weigh-backend/internal/metrics"

	"github.com/disintegration/imaging"
)

// sizeTier maps an input size band to its compression targets. Targets
// are bands, not exact ratios: large phone photos tolerate more loss.
type sizeTier struct {
	maxInput     int64 // exclusive upper bound on input size, 0 = unbounded
	targetSize   int64
	maxDimension int
}

var sizeTiers = []sizeTier{
	{maxInput: 1 << 20, targetSize: 512 << 10, maxDimension: 2048},  // <1MB
	{maxInput: 3 << 20, targetSize: 1228 << 10, maxDimension: 2048}, // 1-3MB -> 1.2MB
	{maxInput: 5 << 20, targetSize: 1843 << 10, maxDimension: 2048}, // 3-5MB -> 1.8MB
	{maxInput: 10 << 20, targetSize: 3 << 20, maxDimension: 2560},   // 5-10MB
	{maxInput: 0, targetSize: 4 << 20, maxDimension: 2560},          // >=10MB
}

func tierFor(size int64) sizeTier {
	for _, t := range sizeTiers {
		if t.maxInput == 0 || size < t.maxInput {
			return t
		}
	}
	return sizeTiers[len(sizeTiers)-1]
}

// CompressorPolicy holds the tunable safety thresholds.
type CompressorPolicy struct {
	MaxIterations int
	// MaxReduction is the corruption heuristic: a result smaller than
	// (1-MaxReduction) of the input is treated as likely corrupt.
	MaxReduction float64
}

var DefaultCompressorPolicy = CompressorPolicy{
	MaxIterations: 10,
	MaxReduction:  0.97,
}

// encodeFunc produces JPEG bytes at a quality level. Swappable in tests.
type encodeFunc func(img image.Image, quality int) ([]byte, error)

func jpegEncode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type Compressor struct {
	policy CompressorPolicy
	encode encodeFunc
}

func NewCompressor(policy CompressorPolicy) *Compressor {
	if policy.MaxIterations <= 0 {
		policy = DefaultCompressorPolicy
	}
	return &Compressor{policy: policy, encode: jpegEncode}
}

// Compress reduces the photo toward its size-tier target. The returned
// bytes are ALWAYS usable evidence: if compression errors, produces an
// empty result, grows the file, or reduces it beyond the corruption
// threshold, the original bytes are returned unchanged. The pipeline must
// never silently drop or corrupt evidence.
func (c *Compressor) Compress(data []byte) []byte {
	out, err := c.compress(data)
	if err != nil {
		log.Printf("[Compressor] Falling back to original: %v", err)
		metrics.CompressionFallbacksTotal.Inc()
		return data
	}
	if !c.safe(int64(len(out)), int64(len(data))) {
		metrics.CompressionFallbacksTotal.Inc()
		return data
	}
	return out
}

func (c *Compressor) compress(data []byte) ([]byte, error) {
	tier := tierFor(int64(len(data)))

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	if b := img.Bounds(); b.Dx() > tier.maxDimension || b.Dy() > tier.maxDimension {
		img = imaging.Fit(img, tier.maxDimension, tier.maxDimension, imaging.Lanczos)
	}

	quality := 85
	var out []byte
	for i := 0; i < c.policy.MaxIterations; i++ {
		out, err = c.encode(img, quality)
		if err != nil {
			return nil, err
		}
		if int64(len(out)) <= tier.targetSize {
			return out, nil
		}

		quality -= 8
		if quality < 30 {
			// Quality floor reached; shed pixels instead.
			quality = 30
			b := img.Bounds()
			img = imaging.Resize(img, b.Dx()*85/100, 0, imaging.Lanczos)
		}
	}

	// Did not converge within the iteration budget; the last attempt is
	// still the best-effort result and the safety policy judges it.
	return out, nil
}

// safe is the post-compression policy: all three checks must hold or the
// caller keeps the original.
func (c *Compressor) safe(compressed, original int64) bool {
	if compressed <= 0 {
		return false
	}
	if compressed > original {
		return false
	}
	reduction := 1 - float64(compressed)/float64(original)
	return reduction <= c.policy.MaxReduction
}
