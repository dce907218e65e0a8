package model

import "time"

// Booking lifecycle states.  There is no terminal state: a cancelled
// booking may be reactivated to pending or confirmed.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the three lifecycle states.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// SlotDelta returns the adjustment to a trip's available slots when a
// booking moves from oldStatus to newStatus:
//
//	out of cancelled -> -1 (the booking takes a slot again)
//	into cancelled   -> +1 (the slot is released)
//	otherwise        ->  0 (pending <-> confirmed both hold a slot)
//
// The rule is applied exactly once per transition, using the status read in
// the same transaction as the update.
func SlotDelta(oldStatus, newStatus string) int {
	switch {
	case oldStatus == StatusCancelled && newStatus != StatusCancelled:
		return -1
	case oldStatus != StatusCancelled && newStatus == StatusCancelled:
		return +1
	default:
		return 0
	}
}

// Booking ties a user to a trip.  Reference is a server-generated UUID shown
// on confirmation pages.  Guests and SpecialRequests are optional details
// supplied at creation time.
type Booking struct {
	ID              uint64    `json:"id"`
	Reference       string    `json:"reference"`
	UserID          uint64    `json:"user_id"`
	TripID          uint64    `json:"trip_id"`
	BookingDate     string    `json:"booking_date"`
	Guests          *int      `json:"guests,omitempty"`
	SpecialRequests *string   `json:"special_requests,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
