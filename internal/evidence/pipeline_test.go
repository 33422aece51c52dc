package evidence

import (
	"context"
	"errors"
	"testing"

	"weigh-backend/internal/apperrors"
	"weigh-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	name        string
	data        []byte
	contentType string
	err         error
}

func (f *fakeUploader) Upload(_ context.Context, name string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.name, f.data, f.contentType = name, data, contentType
	return "https://cdn.example.com/" + name, nil
}

func newTestPipeline(u Uploader) *Pipeline {
	return NewPipeline(NewCompressor(DefaultCompressorPolicy), NewBandRenderer(), u)
}

func TestPipeline_fullFlow(t *testing.T) {
	uploader := &fakeUploader{}
	p := newTestPipeline(uploader)

	result, err := p.Process(context.Background(), CaptureInput{
		ReceiptNumber: "JT1234567890",
		Slot:          1,
		Data:          testJPEG(t, 640, 480),
		MimeType:      "image/jpeg",
		Location: &models.LocationSample{
			Latitude:  -6.2,
			Longitude: 106.816666,
			Address:   "Jl. Sudirman No. 1",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "JT1234567890_foto1.jpg", result.Name)
	assert.Equal(t, "https://cdn.example.com/JT1234567890_foto1.jpg", result.URL)
	assert.Equal(t, 1, result.Slot)
	assert.False(t, result.StaleName)
	assert.Equal(t, "image/jpeg", uploader.contentType)
	assert.NotEmpty(t, uploader.data)
}

func TestPipeline_staleNameFlagged(t *testing.T) {
	p := newTestPipeline(&fakeUploader{})

	result, err := p.Process(context.Background(), CaptureInput{
		ReceiptNumber: "JT0000000002",
		Slot:          1,
		Data:          testJPEG(t, 200, 150),
		MimeType:      "image/jpeg",
		UploadedName:  "JT0000000001_foto1.jpg", // derived from an older receipt
		Location:      &models.LocationSample{Address: "Gudang Cakung", ManualEntry: true},
	})
	require.NoError(t, err)

	assert.True(t, result.StaleName)
	assert.Equal(t, "JT0000000002_foto1.jpg", result.Name)
}

func TestPipeline_emptyPayloadRejected(t *testing.T) {
	p := newTestPipeline(&fakeUploader{})

	_, err := p.Process(context.Background(), CaptureInput{
		ReceiptNumber: "JT1234567890",
		Slot:          1,
		MimeType:      "image/jpeg",
		Location:      &models.LocationSample{Address: "x", ManualEntry: true},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestPipeline_missingLocationRejected(t *testing.T) {
	p := newTestPipeline(&fakeUploader{})

	_, err := p.Process(context.Background(), CaptureInput{
		ReceiptNumber: "JT1234567890",
		Slot:          1,
		Data:          testJPEG(t, 200, 150),
		MimeType:      "image/jpeg",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestPipeline_unsupportedTypeRejected(t *testing.T) {
	p := newTestPipeline(&fakeUploader{})

	_, err := p.Process(context.Background(), CaptureInput{
		ReceiptNumber: "JT1234567890",
		Slot:          1,
		Data:          []byte("GIF89a"),
		MimeType:      "image/gif",
		Location:      &models.LocationSample{Address: "x", ManualEntry: true},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestPipeline_uploadFailureTagged(t *testing.T) {
	p := newTestPipeline(&fakeUploader{err: errors.New("bucket unreachable")})

	_, err := p.Process(context.Background(), CaptureInput{
		ReceiptNumber: "JT1234567890",
		Slot:          2,
		Data:          testJPEG(t, 200, 150),
		MimeType:      "image/jpeg",
		Location:      &models.LocationSample{Address: "x", ManualEntry: true},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpload))
	assert.Contains(t, err.Error(), "slot 2")
}

func TestPipeline_undecodablePhotoStillUploads(t *testing.T) {
	// Compression and watermarking both fall back for a payload that
	// passes MIME validation but does not decode; the original bytes are
	// stored rather than losing the evidence.
	uploader := &fakeUploader{}
	p := newTestPipeline(uploader)

	raw := []byte("declared jpeg but not decodable")
	result, err := p.Process(context.Background(), CaptureInput{
		ReceiptNumber: "JT1234567890",
		Slot:          1,
		Data:          raw,
		MimeType:      "image/jpeg",
		Location:      &models.LocationSample{Address: "x", ManualEntry: true},
	})
	require.NoError(t, err)

	assert.Equal(t, raw, uploader.data)
	assert.Equal(t, len(raw), result.Size)
}
