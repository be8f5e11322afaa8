package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsurispot/geoaudit/internal/model"
	"github.com/tsurispot/geoaudit/internal/region"
	"github.com/tsurispot/geoaudit/internal/verify"
	"github.com/tsurispot/geoaudit/pkg/nominatim"
)

// stubGeocoder answers every reverse lookup with a fixed coastal place.
type stubGeocoder struct{}

func (stubGeocoder) Reverse(ctx context.Context, lat, lng float64) (*nominatim.Place, error) {
	return &nominatim.Place{
		Category:    "leisure",
		Type:        "fishing",
		DisplayName: "大黒海づり施設, 横浜市, 神奈川県",
	}, nil
}

func (stubGeocoder) BoundedSearch(ctx context.Context, query string, box nominatim.Viewbox, limit int) ([]nominatim.Place, error) {
	return nil, nil
}

func (stubGeocoder) ForwardSearch(ctx context.Context, query string, limit int) ([]nominatim.Place, error) {
	return nil, nil
}

func testRouter() http.Handler {
	v := verify.NewVerifier(stubGeocoder{}, region.Default())
	return newRouter(v)
}

func TestRouter_Health(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Validate(t *testing.T) {
	payload, _ := json.Marshal(map[string]float64{"lat": 35.4548, "lng": 139.6827})

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var verdict model.Verdict
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verdict))
	assert.True(t, verdict.IsValid)
	assert.True(t, verdict.IsNearWater)
	assert.Equal(t, "leisure/fishing", verdict.PlaceType)
}

func TestRouter_Validate_OutOfCountry(t *testing.T) {
	// Swapped lat/lng is outside the country box; no lookup is attempted.
	payload, _ := json.Marshal(map[string]float64{"lat": 139.6827, "lng": 35.4548})

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var verdict model.Verdict
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verdict))
	assert.False(t, verdict.IsValid)
	assert.NotEmpty(t, verdict.Warnings)
}

func TestRouter_Validate_MissingFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader([]byte(`{"lat": 35.0}`)))
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "required")
}

func TestRouter_Validate_BadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader([]byte(`{not json`)))
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/validate", nil)
	req.Header.Set("Origin", "https://tsurispot.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
