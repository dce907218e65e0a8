// Package repository implements raw-SQL data access for users, trips,
// bookings and contact messages.  Sentinel errors defined here let handlers
// map storage failures onto HTTP statuses without inspecting SQL errors.
package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist.  Handlers
// translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by someone else.  Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when registration hits an already-registered
// email address.
var ErrEmailExists = errors.New("email already registered")

// ErrNoSlots is returned when a booking would take a slot on a trip whose
// available_slots counter is already zero.  The counter never goes negative.
var ErrNoSlots = errors.New("no available slots")
