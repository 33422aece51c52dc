package barcode

import (
	"fmt"
	"regexp"

	"weigh-backend/internal/apperrors"
)

// Policy is the sliding-confidence acceptance policy: a code is accepted
// once it has been seen MinOccurrences times within the last WindowSize
// observations. Kept as a named, tunable type because scan environments
// vary; DefaultPolicy matches field testing.
type Policy struct {
	WindowSize     int
	MinOccurrences int
}

var DefaultPolicy = Policy{
	WindowSize:     10,
	MinOccurrences: 3,
}

// Pulser fires a short haptic pulse on accept. Best effort; the default
// implementation is a no-op for devices without a vibration motor.
type Pulser interface {
	Pulse()
}

type noopPulser struct{}

func (noopPulser) Pulse() {}

// Decoder consumes the per-frame decode candidates of a live scan and
// emits a code once the policy's confidence threshold is met. Not safe
// for concurrent use; each scan session owns one Decoder.
type Decoder struct {
	policy  Policy
	pulser  Pulser
	window  []string
	stopped bool
}

func NewDecoder(policy Policy, pulser Pulser) *Decoder {
	if policy.WindowSize <= 0 {
		policy = DefaultPolicy
	}
	if pulser == nil {
		pulser = noopPulser{}
	}
	return &Decoder{policy: policy, pulser: pulser}
}

// Observe records one decoded frame candidate. It returns the accepted
// code and true once the same value has appeared MinOccurrences times in
// the current window; decoding then stops until Reset.
func (d *Decoder) Observe(code string) (string, bool) {
	if d.stopped || code == "" {
		return "", false
	}

	d.window = append(d.window, code)
	if len(d.window) > d.policy.WindowSize {
		d.window = d.window[1:]
	}

	occurrences := 0
	for _, seen := range d.window {
		if seen == code {
			occurrences++
		}
	}

	if occurrences < d.policy.MinOccurrences {
		return "", false
	}

	d.stopped = true
	d.window = nil
	d.pulser.Pulse()
	return code, true
}

// Stopped reports whether the decoder has accepted a code.
func (d *Decoder) Stopped() bool {
	return d.stopped
}

// Reset clears the window and resumes decoding, e.g. after the accepted
// code failed format validation.
func (d *Decoder) Reset() {
	d.window = nil
	d.stopped = false
}

var receiptFormat = regexp.MustCompile(`^[A-Za-z0-9]{10,20}$`)

// ValidateFormat checks the business format for a decoded receipt number:
// alphanumeric, length 10-20.
func ValidateFormat(code string) error {
	if !receiptFormat.MatchString(code) {
		return fmt.Errorf("%w: receipt number must be 10-20 alphanumeric characters", apperrors.ErrValidation)
	}
	return nil
}
