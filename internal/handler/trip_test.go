package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tripResp struct {
	ID             uint64  `json:"id"`
	Title          string  `json:"title"`
	Price          float64 `json:"price"`
	Duration       string  `json:"duration"`
	Description    string  `json:"description"`
	AvailableSlots int     `json:"available_slots"`
}

func TestTripCatalogPublicReads(t *testing.T) {
	ts := newTestServer(t)
	id := ts.seedTrip(t, "Bali Escape", 12)
	ts.seedTrip(t, "Alps Trek", 8)

	// No token needed for catalog reads.
	rec := ts.do(t, http.MethodGet, "/api/trips", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trips []tripResp
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &trips))
	assert.Len(t, trips, 2)

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/trips/%d", id), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trip tripResp
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &trip))
	assert.Equal(t, "Bali Escape", trip.Title)
	assert.Equal(t, 12, trip.AvailableSlots)

	rec = ts.do(t, http.MethodGet, "/api/trips/9999", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Trip not found", decode(t, rec).Error)
}

// Catalog mutations require admin credentials; anonymous and plain-user
// requests both get the auth-level 401.
func TestTripMutationsAdminGate(t *testing.T) {
	ts := newTestServer(t)
	_, user := ts.register(t, "Alice", "alice@test.com", "s3cret")
	body := map[string]interface{}{
		"title": "New Trip", "price": 500.0, "duration": "3 days",
		"description": "short break", "available_slots": 5,
	}

	rec := ts.do(t, http.MethodPost, "/api/trips", "", body)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized - login required", decode(t, rec).Error)

	rec = ts.do(t, http.MethodPost, "/api/trips", user, body)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized - admin access required", decode(t, rec).Error)
}

func TestTripCreateUpdateDelete(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken(t)

	rec := ts.do(t, http.MethodPost, "/api/trips", admin, map[string]interface{}{
		"title": "Bali Escape", "price": 1299.0, "duration": "10 days",
		"description": "Beaches and temples.", "available_slots": 12,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created tripResp
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	require.NotZero(t, created.ID)

	// available_slots: 0 is a legal value, a missing field is not.
	rec = ts.do(t, http.MethodPost, "/api/trips", admin, map[string]interface{}{
		"title": "Sold Out", "price": 100.0, "duration": "1 day",
		"description": "full", "available_slots": 0,
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = ts.do(t, http.MethodPost, "/api/trips", admin, map[string]interface{}{
		"title": "Broken", "price": 100.0, "duration": "1 day", "description": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	path := fmt.Sprintf("/api/trips/%d", created.ID)

	rec = ts.do(t, http.MethodPatch, path, admin, map[string]interface{}{"price": 999.0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated tripResp
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &updated))
	assert.Equal(t, 999.0, updated.Price)
	assert.Equal(t, "Bali Escape", updated.Title, "partial update leaves other fields alone")

	rec = ts.do(t, http.MethodPatch, path, admin, map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields to update", decode(t, rec).Error)

	rec = ts.do(t, http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = ts.do(t, http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
