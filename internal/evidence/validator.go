package evidence

import (
	"fmt"

	"weigh-backend/internal/apperrors"
)

// MaxUploadSize is the hard pre-compression ceiling.
const MaxUploadSize = 10 << 20 // 10MB

// Validation failures, distinguishable with errors.Is. Both are also
// apperrors.ErrValidation for HTTP mapping.
var (
	ErrImageTooLarge     = fmt.Errorf("%w: image exceeds the size ceiling", apperrors.ErrValidation)
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported image format", apperrors.ErrValidation)
)

// allowedMIMETypes is the fixed allow-list for evidence photos.
var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// Validate rejects oversized or unsupported files before any compression
// work is spent on them.
func Validate(size int64, mimeType string) error {
	if size > MaxUploadSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrImageTooLarge, size, int64(MaxUploadSize))
	}
	if !allowedMIMETypes[mimeType] {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, mimeType)
	}
	return nil
}
