package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/naomimt/TravelMate/internal/repository"
	"github.com/naomimt/TravelMate/internal/utils"
)

// TripHandler serves the public catalog reads and the admin catalog
// mutations.  Admin gating happens in middleware; these methods only
// implement the operations themselves.
type TripHandler struct {
	Trips *repository.TripRepo
}

func NewTripHandler(t *repository.TripRepo) *TripHandler { return &TripHandler{Trips: t} }

type createTripReq struct {
	Title          string   `json:"title" validate:"required"`
	Price          *float64 `json:"price" validate:"required"`
	Duration       string   `json:"duration" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	AvailableSlots *int     `json:"available_slots" validate:"required,min=0"`
}

type updateTripReq struct {
	Title          *string  `json:"title"`
	Price          *float64 `json:"price"`
	Duration       *string  `json:"duration"`
	Description    *string  `json:"description"`
	AvailableSlots *int     `json:"available_slots" validate:"omitempty,min=0"`
}

func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}

// List handles GET /api/trips.
func (h *TripHandler) List(c echo.Context) error {
	trips, err := h.Trips.List(c.Request().Context())
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve trips")
	}
	return utils.OK(c, http.StatusOK, trips)
}

// Get handles GET /api/trips/:id.
func (h *TripHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return utils.Fail(c, http.StatusBadRequest, "Invalid trip id")
	}
	trip, err := h.Trips.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Trip not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve trip")
	}
	return utils.OK(c, http.StatusOK, trip)
}

// Create handles POST /api/trips (admin).
func (h *TripHandler) Create(c echo.Context) error {
	var req createTripReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid JSON")
	}
	if err := c.Validate(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest,
			"Missing required fields: title, price, duration, description, available_slots")
	}
	trip, err := h.Trips.Create(c.Request().Context(),
		req.Title, *req.Price, req.Duration, req.Description, *req.AvailableSlots)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "Failed to create trip")
	}
	return utils.Created(c, http.StatusCreated, "Trip created successfully", trip)
}

// Update handles PATCH /api/trips/:id (admin).  Only the provided fields
// change.
func (h *TripHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return utils.Fail(c, http.StatusBadRequest, "Invalid trip id")
	}
	var req updateTripReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid JSON")
	}
	if err := c.Validate(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "available_slots must not be negative")
	}
	upd := repository.TripUpdate{
		Title:          req.Title,
		Price:          req.Price,
		Duration:       req.Duration,
		Description:    req.Description,
		AvailableSlots: req.AvailableSlots,
	}
	if upd.Empty() {
		return utils.Fail(c, http.StatusBadRequest, "No fields to update")
	}
	trip, err := h.Trips.Update(c.Request().Context(), id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Trip not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to update trip")
	}
	return utils.Created(c, http.StatusOK, "Trip updated successfully", trip)
}

// Delete handles DELETE /api/trips/:id (admin).
func (h *TripHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return utils.Fail(c, http.StatusBadRequest, "Invalid trip id")
	}
	if err := h.Trips.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Trip not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to delete trip")
	}
	return c.NoContent(http.StatusNoContent)
}
