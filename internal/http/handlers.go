package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wellworld/internal/services/geo"
	"wellworld/internal/services/search"

	"github.com/go-chi/chi/v5"
)

// Converter is the pipeline operation the handler exposes.
type Converter interface {
	Convert(ctx context.Context, req geo.ConvertRequest) ([]geo.Location, error)
}

// GeoHandler handles geo conversion HTTP requests.
type GeoHandler struct {
	converter Converter
}

func NewGeoHandler(converter Converter) *GeoHandler {
	return &GeoHandler{converter: converter}
}

// RegisterRoutes registers all geo routes.
func (h *GeoHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/geo", func(r chi.Router) {
		r.Get("/convert", h.Convert)
	})
}

// Convert turns volunteer links for a country into geocoded records.
func (h *GeoHandler) Convert(w http.ResponseWriter, r *http.Request) {
	req := geo.ConvertRequest{
		Country: r.URL.Query().Get("country"),
		Model:   r.URL.Query().Get("model"),
	}

	if req.Country == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "country parameter is required")
		return
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 200 {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, "invalid limit value (must be 1-200)")
			return
		}
		req.Limit = limit
	}

	locations, err := h.converter.Convert(r.Context(), req)
	if err != nil {
		var statusErr *search.StatusError
		switch {
		case errors.As(err, &statusErr):
			writeError(w, statusErr.Status, ErrCodeUpstream, statusErr.Message)
		case errors.Is(err, geo.ErrUpstreamUnavailable), errors.Is(err, geo.ErrUpstreamUnparsable):
			writeError(w, http.StatusBadGateway, ErrCodeUpstream, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to process request")
		}
		return
	}

	if locations == nil {
		locations = []geo.Location{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(locations); err != nil {
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(NewErrorResponse(code, message))
}
