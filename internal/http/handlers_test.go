package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wellworld/internal/services/geo"
	"wellworld/internal/services/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverter struct {
	locations []geo.Location
	err       error
	lastReq   geo.ConvertRequest
}

func (f *fakeConverter) Convert(ctx context.Context, req geo.ConvertRequest) ([]geo.Location, error) {
	f.lastReq = req
	return f.locations, f.err
}

func newTestServer(converter Converter) *Router {
	router := NewRouter([]string{"*"})
	router.RegisterGeoRoutes(NewGeoHandler(converter))
	router.RegisterHealthRoutes()
	return router
}

func TestConvert_Success(t *testing.T) {
	converter := &fakeConverter{locations: []geo.Location{
		{
			LatLon:  geo.LatLon{35.68, 139.69},
			Country: "japan",
			Link:    "https://a.example/teach-english",
			Name:    "Teach English",
		},
	}}
	router := newTestServer(converter)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/geo/convert?country=Japan&limit=10&model=fast-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, geo.ConvertRequest{Country: "Japan", Limit: 10, Model: "fast-1"}, converter.lastReq)

	var locations []geo.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &locations))
	require.Len(t, locations, 1)
	assert.Equal(t, "japan", locations[0].Country)
	assert.Equal(t, "https://a.example/teach-english", locations[0].Link)
}

func TestConvert_MissingCountry(t *testing.T) {
	router := newTestServer(&fakeConverter{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/geo/convert", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeValidation, body.Error.Code)
}

func TestConvert_InvalidLimit(t *testing.T) {
	router := newTestServer(&fakeConverter{})

	for _, limit := range []string{"0", "201", "-5", "abc"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/geo/convert?country=Japan&limit="+limit, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", limit)
	}
}

func TestConvert_UpstreamErrorsMapTo502(t *testing.T) {
	for _, upstreamErr := range []error{geo.ErrUpstreamUnavailable, geo.ErrUpstreamUnparsable} {
		router := newTestServer(&fakeConverter{err: upstreamErr})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/geo/convert?country=Japan", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, ErrCodeUpstream, body.Error.Code)
	}
}

func TestConvert_SearchStatusErrorPassesThrough(t *testing.T) {
	router := newTestServer(&fakeConverter{err: &search.StatusError{
		Status:  http.StatusNotFound,
		Message: "unknown country",
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/geo/convert?country=Nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unknown country", body.Error.Message)
}

func TestConvert_NilResultEncodesAsEmptyArray(t *testing.T) {
	router := newTestServer(&fakeConverter{locations: nil})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/geo/convert?country=Japan", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestHealthRoutes(t *testing.T) {
	router := newTestServer(&fakeConverter{})

	for _, path := range []string{"/health", "/api/health", "/ready"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusOK, w.Code, "path=%s", path)
	}
}
