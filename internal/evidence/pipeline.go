package evidence

import (
	"context"
	"fmt"
	"log"

	"weigh-backend/internal/apperrors"
	"weigh-backend/internal/metrics"
	"weigh-backend/internal/models"
)

// CaptureInput is one photo slot's raw capture plus its surrounding
// context. Slot 1 is mandatory evidence, slot 2 optional.
type CaptureInput struct {
	ReceiptNumber string
	Slot          int
	Data          []byte
	MimeType      string
	UploadedName  string
	Location      *models.LocationSample
}

// CaptureResult is the stored evidence record for one slot.
type CaptureResult struct {
	Slot      int    `json:"slot"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Size      int    `json:"size"`
	StaleName bool   `json:"stale_name"`
}

// Pipeline runs a capture through validate -> name -> compress ->
// watermark -> upload. Compression and watermarking degrade gracefully;
// validation and upload failures are terminal.
type Pipeline struct {
	compressor *Compressor
	compositor Compositor
	uploader   Uploader
}

func NewPipeline(compressor *Compressor, compositor Compositor, uploader Uploader) *Pipeline {
	return &Pipeline{
		compressor: compressor,
		compositor: compositor,
		uploader:   uploader,
	}
}

func (p *Pipeline) Process(ctx context.Context, in CaptureInput) (*CaptureResult, error) {
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: empty photo payload", apperrors.ErrValidation)
	}
	// Every evidence photo is stamped with its capture context; a manual
	// address satisfies this as well as a GPS fix does.
	if in.Location == nil {
		return nil, fmt.Errorf("%w: location sample is required", apperrors.ErrValidation)
	}
	if err := Validate(int64(len(in.Data)), in.MimeType); err != nil {
		return nil, err
	}

	name, err := DeriveName(in.ReceiptNumber, in.Slot, "jpg")
	if err != nil {
		return nil, err
	}
	// A client that uploads under a name derived from an older receipt
	// number is flagged, not rejected: the server-side name wins.
	staleName := in.UploadedName != "" && in.UploadedName != name

	data := p.compressor.Compress(in.Data)

	stamped, err := p.compositor.Render(data, OverlayLines(in.Location, CaptureTimestamp()))
	if err != nil {
		// The unstamped photo is still valid evidence.
		log.Printf("[Evidence] Watermark failed for %s, storing unstamped: %v", name, err)
	} else {
		data = stamped
	}

	url, err := p.uploader.Upload(ctx, name, data, "image/jpeg")
	if err != nil {
		metrics.EvidenceUploadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: slot %d: %v", apperrors.ErrUpload, in.Slot, err)
	}
	metrics.EvidenceUploadsTotal.WithLabelValues("success").Inc()

	return &CaptureResult{
		Slot:      in.Slot,
		Name:      name,
		URL:       url,
		Size:      len(data),
		StaleName: staleName,
	}, nil
}
