package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/naomimt/TravelMate/internal/middleware"
	"github.com/naomimt/TravelMate/internal/model"
	"github.com/naomimt/TravelMate/internal/queue"
	"github.com/naomimt/TravelMate/internal/repository"
	"github.com/naomimt/TravelMate/internal/utils"
)

// BookingHandler serves the user-scoped booking endpoints.  JWT middleware
// runs before every method; ownership is enforced here and in the
// repository, never by the client.  Publish is the booking-event sink; nil
// disables event publishing (tests, broker-less deployments).
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Publish  func(context.Context, queue.BookingEvent) error
}

func NewBookingHandler(b *repository.BookingRepo, publish func(context.Context, queue.BookingEvent) error) *BookingHandler {
	return &BookingHandler{Bookings: b, Publish: publish}
}

type createBookingReq struct {
	TripID          uint64  `json:"trip_id" validate:"required"`
	BookingDate     string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	Guests          *int    `json:"guests" validate:"omitempty,min=1"`
	SpecialRequests *string `json:"special_requests"`
}

type statusReq struct {
	Status string `json:"status"`
}

func callerClaims(c echo.Context) (utils.TokenClaims, error) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok || claims.UserID == 0 {
		return utils.TokenClaims{}, errors.New("no authenticated user")
	}
	return claims, nil
}

func (h *BookingHandler) emit(evType string, b model.Booking, oldStatus string) {
	if h.Publish == nil {
		return
	}
	_ = h.Publish(context.Background(), queue.BookingEvent{
		EventID:    uuid.NewString(),
		Type:       evType,
		BookingID:  b.ID,
		Reference:  b.Reference,
		UserID:     b.UserID,
		TripID:     b.TripID,
		OldStatus:  oldStatus,
		NewStatus:  b.Status,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// Create handles POST /api/bookings.  The slot decrement and the booking
// insert commit together; when the trip is full no row is created and the
// client sees a 400.
func (h *BookingHandler) Create(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return utils.Fail(c, http.StatusUnauthorized, "Unauthorized - login required")
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid JSON")
	}
	if err := c.Validate(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Missing required fields: trip_id, booking_date")
	}

	b, err := h.Bookings.Create(c.Request().Context(), repository.NewBooking{
		UserID:          claims.UserID,
		TripID:          req.TripID,
		BookingDate:     req.BookingDate,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return utils.Fail(c, http.StatusNotFound, "Trip not found")
		case errors.Is(err, repository.ErrNoSlots):
			return utils.Fail(c, http.StatusBadRequest, "No available slots for this trip")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to create booking")
	}
	h.emit(queue.EventBookingCreated, b, "")
	return utils.Created(c, http.StatusCreated, "Booking created successfully", b)
}

// ListMine handles GET /api/bookings.
func (h *BookingHandler) ListMine(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return utils.Fail(c, http.StatusUnauthorized, "Unauthorized - login required")
	}
	details, err := h.Bookings.ListByUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve bookings")
	}
	return utils.OK(c, http.StatusOK, details)
}

// Get handles GET /api/bookings/:id.  The booking is visible to its owner
// and to admins.  Anyone else gets 403: an existing id is never disguised
// as missing, but its contents are not shown either.
func (h *BookingHandler) Get(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return utils.Fail(c, http.StatusUnauthorized, "Unauthorized - login required")
	}
	id, ok := pathID(c)
	if !ok {
		return utils.Fail(c, http.StatusBadRequest, "Invalid booking id")
	}
	detail, err := h.Bookings.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Booking not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve booking")
	}
	if detail.UserID != claims.UserID && !claims.IsAdmin() {
		return utils.Fail(c, http.StatusForbidden, "Forbidden - you can only view your own bookings")
	}
	return utils.OK(c, http.StatusOK, detail)
}

// SelfUpdateStatus handles PUT /api/bookings/:id.  Owners may move their own
// booking between the three lifecycle states; the slot rule applies exactly
// as it does for the admin endpoint.
func (h *BookingHandler) SelfUpdateStatus(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return utils.Fail(c, http.StatusUnauthorized, "Unauthorized - login required")
	}
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
		return utils.Fail(c, http.StatusInternalServerError, "Failed to update booking")
	}
	b, err := h.Bookings.UpdateStatusForUser(c.Request().Context(), id, claims.UserID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return utils.Fail(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, repository.ErrForbidden):
			return utils.Fail(c, http.StatusForbidden, "Forbidden - you can only update your own bookings")
		case errors.Is(err, repository.ErrNoSlots):
			return utils.Fail(c, http.StatusBadRequest, "No available slots for this trip")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to update booking")
	}
	if before.Status != b.Status {
		h.emit(queue.EventBookingStatusChanged, b, before.Status)
	}
	return utils.Created(c, http.StatusOK, "Booking updated successfully", b)
}

// Delete handles DELETE /api/bookings/:id.  Owner only; the admin role does
// not bypass this check.  Deleting a booking that still holds a slot gives
// the slot back.
func (h *BookingHandler) Delete(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return utils.Fail(c, http.StatusUnauthorized, "Unauthorized - login required")
	}
	id, ok := pathID(c)
	if !ok {
		return utils.Fail(c, http.StatusBadRequest, "Invalid booking id")
	}
	if err := h.Bookings.Delete(c.Request().Context(), id, claims.UserID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return utils.Fail(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, repository.ErrForbidden):
			return utils.Fail(c, http.StatusForbidden, "Forbidden - you can only delete your own bookings")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to delete booking")
	}
	return c.NoContent(http.StatusNoContent)
}
