package evidence

import (
	"errors"
	"testing"

	"weigh-backend/internal/apperrors"
)

func TestValidate_acceptsSupportedTypes(t *testing.T) {
	for _, mime := range []string{"image/jpeg", "image/png", "image/webp", "image/heic", "image/heif"} {
		if err := Validate(1024, mime); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", mime, err)
		}
	}
}

func TestValidate_rejectsUnsupportedTypes(t *testing.T) {
	for _, mime := range []string{"image/gif", "application/pdf", "text/plain", ""} {
		err := Validate(1024, mime)
		if err == nil {
			t.Errorf("Validate(%q) = nil, want error", mime)
			continue
		}
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Validate(%q) = %v, want unsupported-format error", mime, err)
		}
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("Validate(%q) = %v, must also be a validation error", mime, err)
		}
	}
}

func TestValidate_sizeCeiling(t *testing.T) {
	if err := Validate(MaxUploadSize, "image/jpeg"); err != nil {
		t.Errorf("exactly at the ceiling should pass, got %v", err)
	}

	err := Validate(MaxUploadSize+1, "image/jpeg")
	if err == nil {
		t.Fatal("one byte over the ceiling should fail")
	}
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("err = %v, want size error", err)
	}
}
