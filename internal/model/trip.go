package model

import "time"

// Trip is a bookable catalog entry.  AvailableSlots is the remaining
// inventory; every booking status transition keeps it in lockstep with the
// set of non-cancelled bookings, and it must never go negative.
type Trip struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	Price          float64   `json:"price"`
	Duration       string    `json:"duration"`
	Description    string    `json:"description"`
	AvailableSlots int       `json:"available_slots"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
