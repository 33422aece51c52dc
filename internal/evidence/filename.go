package evidence

import (
	"fmt"
	"strings"

	"weigh-backend/internal/apperrors"
)

// invalidFilenameChars are replaced with underscore; they are unsafe in
// object keys and filesystems alike.
const invalidFilenameChars = `/\:*?"<>|`

const maxReceiptRunes = 50

// DeriveName builds the deterministic evidence filename for a receipt
// number and photo slot: "{sanitized}_foto{slot}.{ext}". Filename identity
// ties the photo to its business key, so an empty receipt number is an
// error rather than a fallback to an arbitrary name.
func DeriveName(receiptNumber string, slot int, ext string) (string, error) {
	if receiptNumber == "" {
		return "", fmt.Errorf("%w: receipt number is required for evidence naming", apperrors.ErrValidation)
	}
	if slot != 1 && slot != 2 {
		return "", fmt.Errorf("%w: photo slot must be 1 or 2", apperrors.ErrValidation)
	}

	sanitized := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) {
			return '_'
		}
		return r
	}, receiptNumber)

	runes := []rune(sanitized)
	if len(runes) > maxReceiptRunes {
		sanitized = string(runes[:maxReceiptRunes])
	}

	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "jpg"
	}

	return fmt.Sprintf("%s_foto%d.%s", sanitized, slot, ext), nil
}
