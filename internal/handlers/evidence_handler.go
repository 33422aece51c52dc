package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"weigh-backend/internal/apperrors"
	"weigh-backend/internal/evidence"
	"weigh-backend/internal/geocode"
	"weigh-backend/internal/models"
	"weigh-backend/pkg/utils"
)

// Geocoder resolves coordinates to a human-readable place. The concrete
// client never fails; it falls back to an unknown-location value.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) geocode.Location
}

type EvidenceHandler struct {
	Pipeline *evidence.Pipeline
	Geocoder Geocoder
}

func NewEvidenceHandler(pipeline *evidence.Pipeline, geocoder Geocoder) *EvidenceHandler {
	return &EvidenceHandler{Pipeline: pipeline, Geocoder: geocoder}
}

// Upload accepts one evidence photo as multipart form data. Form fields:
// photo (file, required), receipt_number (required), slot (1 or 2,
// default 1), uploaded_name (client's filename, for stale-name
// detection), latitude/longitude/accuracy, manual_address.
func (h *EvidenceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(evidence.MaxUploadSize + 1<<20); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Photo file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, evidence.MaxUploadSize+1))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Failed to read photo")
		return
	}

	slot := 1
	if s := r.FormValue("slot"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			slot = n
		}
	}

	in := evidence.CaptureInput{
		ReceiptNumber: r.FormValue("receipt_number"),
		Slot:          slot,
		Data:          data,
		MimeType:      header.Header.Get("Content-Type"),
		UploadedName:  r.FormValue("uploaded_name"),
		Location:      h.locationFromForm(r),
	}

	result, err := h.Pipeline.Process(r.Context(), in)
	if err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, result)
}

// locationFromForm rebuilds the capture-time location sample from form
// fields. Manual address takes priority; coordinates are reverse-geocoded
// when the client did not already resolve them.
func (h *EvidenceHandler) locationFromForm(r *http.Request) *models.LocationSample {
	if addr := r.FormValue("manual_address"); addr != "" {
		return &models.LocationSample{Address: addr, ManualEntry: true}
	}

	latStr, lonStr := r.FormValue("latitude"), r.FormValue("longitude")
	if latStr == "" || lonStr == "" {
		return nil
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil {
		return nil
	}

	sample := &models.LocationSample{Latitude: lat, Longitude: lon}
	if acc, err := strconv.ParseFloat(r.FormValue("accuracy"), 64); err == nil {
		sample.Accuracy = acc
	}

	if h.Geocoder != nil {
		loc := h.Geocoder.Reverse(r.Context(), lat, lon)
		sample.Address, sample.City, sample.Country = loc.Address, loc.City, loc.Country
	}
	return sample
}
