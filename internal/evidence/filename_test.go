package evidence

import (
	"errors"
	"strings"
	"testing"

	"weigh-backend/internal/apperrors"
)

func TestDeriveName_basic(t *testing.T) {
	name, err := DeriveName("JT1234567890", 1, "jpg")
	if err != nil {
		t.Fatalf("DeriveName failed: %v", err)
	}
	if name != "JT1234567890_foto1.jpg" {
		t.Errorf("name = %q, want %q", name, "JT1234567890_foto1.jpg")
	}
}

func TestDeriveName_sanitizesUnsafeChars(t *testing.T) {
	name, err := DeriveName(`JT/123:ABC`, 1, "jpg")
	if err != nil {
		t.Fatalf("DeriveName failed: %v", err)
	}
	if name != "JT_123_ABC_foto1.jpg" {
		t.Errorf("name = %q, want %q", name, "JT_123_ABC_foto1.jpg")
	}
}

func TestDeriveName_allUnsafeChars(t *testing.T) {
	name, err := DeriveName(`a\b*c?d"e<f>g|h`, 2, "jpg")
	if err != nil {
		t.Fatalf("DeriveName failed: %v", err)
	}
	if name != "a_b_c_d_e_f_g_h_foto2.jpg" {
		t.Errorf("name = %q", name)
	}
}

func TestDeriveName_truncatesLongReceipt(t *testing.T) {
	long := strings.Repeat("A", 80)
	name, err := DeriveName(long, 1, "jpg")
	if err != nil {
		t.Fatalf("DeriveName failed: %v", err)
	}
	want := strings.Repeat("A", 50) + "_foto1.jpg"
	if name != want {
		t.Errorf("name = %q, want %q", name, want)
	}
}

func TestDeriveName_emptyReceipt(t *testing.T) {
	_, err := DeriveName("", 1, "jpg")
	if err == nil {
		t.Fatal("expected error for empty receipt number")
	}
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestDeriveName_invalidSlot(t *testing.T) {
	for _, slot := range []int{0, 3, -1} {
		if _, err := DeriveName("JT1234567890", slot, "jpg"); err == nil {
			t.Errorf("expected error for slot %d", slot)
		}
	}
}

func TestDeriveName_defaultExtension(t *testing.T) {
	name, err := DeriveName("JT1234567890", 2, "")
	if err != nil {
		t.Fatalf("DeriveName failed: %v", err)
	}
	if name != "JT1234567890_foto2.jpg" {
		t.Errorf("name = %q", name)
	}
}

func TestDeriveName_deterministic(t *testing.T) {
	a, _ := DeriveName("JT1234567890", 1, "jpg")
	b, _ := DeriveName("JT1234567890", 1, "jpg")
	if a != b {
		t.Errorf("same inputs produced %q and %q", a, b)
	}
}
