package model

import "time"

// Contact is an inbound contact-form message.  Read defaults to false and
// flips to true when an admin triages the message; marking an already-read
// message is a no-op.
type Contact struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
