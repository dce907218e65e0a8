// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published to the booking.events queue.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is published whenever a booking is created or transitions
// between lifecycle states.  It carries enough information for downstream
// consumers to log, notify, or feed analytics without querying the primary
// database.  OldStatus is empty for creation events.
type BookingEvent struct {
	EventID    string `json:"event_id"`
	Type       string `json:"type"`
	BookingID  uint64 `json:"booking_id"`
	Reference  string `json:"reference"`
	UserID     uint64 `json:"user_id"`
	TripID     uint64 `json:"trip_id"`
	OldStatus  string `json:"old_status,omitempty"`
	NewStatus  string `json:"new_status"`
	OccurredAt string `json:"occurred_at"`
}
