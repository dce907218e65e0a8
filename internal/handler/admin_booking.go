package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/naomimt/TravelMate/internal/model"
	"github.com/naomimt/TravelMate/internal/queue"
	"github.com/naomimt/TravelMate/internal/repository"
	"github.com/naomimt/TravelMate/internal/utils"
)

// AdminBookingHandler serves the admin dashboard's booking views and the
// status-transition endpoint.  RequireAdmin middleware gates every route.
type AdminBookingHandler struct {
	Bookings *repository.BookingRepo
	Publish  func(context.Context, queue.BookingEvent) error
}

func NewAdminBookingHandler(b *repository.BookingRepo, publish func(context.Context, queue.BookingEvent) error) *AdminBookingHandler {
	return &AdminBookingHandler{Bookings: b, Publish: publish}
}

// ListAll handles GET /api/admin/bookings: every booking with owner identity
// and trip summary.
func (h *AdminBookingHandler) ListAll(c echo.Context) error {
	details, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve bookings")
	}
	return utils.OK(c, http.StatusOK, details)
}

// UpdateStatus handles PATCH /api/bookings/:id/status.  The transition and
// its slot adjustment commit atomically in the repository; reactivating a
// cancelled booking on a full trip is refused.
func (h *AdminBookingHandler) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return utils.Fail(c, http.StatusBadRequest, "Invalid booking id")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid JSON")
	}
	if !model.ValidStatus(req.Status) {
		return utils.Fail(c, http.StatusBadRequest, "Invalid status. Must be one of: pending, confirmed, cancelled")
	}

	before, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Booking not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to update booking status")
	}
	b, err := h.Bookings.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return utils.Fail(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, repository.ErrNoSlots):
			return utils.Fail(c, http.StatusBadRequest, "No available slots for this trip")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to update booking status")
	}
	if h.Publish != nil && before.Status != b.Status {
		_ = h.Publish(context.Background(), queue.BookingEvent{
			EventID:    uuid.NewString(),
			Type:       queue.EventBookingStatusChanged,
			BookingID:  b.ID,
			Reference:  b.Reference,
			UserID:     b.UserID,
			TripID:     b.TripID,
			OldStatus:  before.Status,
			NewStatus:  b.Status,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return utils.Created(c, http.StatusOK, "Booking status updated successfully", b)
}
