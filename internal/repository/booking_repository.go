package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/naomimt/TravelMate/internal/model"
)

// BookingRepo owns the booking lifecycle and its slot accounting.  Every
// multi-statement operation (slot decrement + booking insert, read-then-write
// status transition, delete + slot release) runs inside a single transaction,
// so two concurrent requests against the last slot of a trip cannot both
// succeed.  The available_slots counter is only ever moved by guarded
// single-statement updates and therefore never goes negative.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// NewBooking carries the client-supplied fields of a booking create request.
type NewBooking struct {
	UserID          uint64
	TripID          uint64
	BookingDate     string
	Guests          *int
	SpecialRequests *string
}

// BookingDetail is a booking joined with the catalog fields of its trip,
// as returned to the owning user.
type BookingDetail struct {
	model.Booking
	TripTitle       string  `json:"title"`
	TripPrice       float64 `json:"price"`
	TripDuration    string  `json:"duration"`
	TripDescription string  `json:"description"`
}

// AdminBookingDetail extends BookingDetail with the owner's identity for the
// admin dashboard.
type AdminBookingDetail struct {
	model.Booking
	TripTitle string  `json:"title"`
	TripPrice float64 `json:"price"`
	UserName  string  `json:"user_name"`
	UserEmail string  `json:"user_email"`
}

// takeSlotTx decrements a trip's available slots by one inside tx.  The
// WHERE guard makes the decrement conditional on remaining inventory, so the
// statement is the atomic check-and-take.  ErrNoSlots when the trip is full,
// ErrNotFound when it does not exist.
func takeSlotTx(ctx context.Context, tx *sql.Tx, tripID uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE trips SET available_slots = available_slots - 1, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND available_slots > 0",
		tripID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists uint64
		err := tx.QueryRowContext(ctx, "SELECT id FROM trips WHERE id = ? LIMIT 1", tripID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return ErrNoSlots
	}
	return nil
}

// releaseSlotTx gives a slot back to the trip.
func releaseSlotTx(ctx context.Context, tx *sql.Tx, tripID uint64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE trips SET available_slots = available_slots + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		tripID)
	return err
}

// Create inserts a pending booking and takes one slot on the trip, both in
// one transaction.  ErrNotFound for an unknown trip, ErrNoSlots when the
// trip is fully booked; in either case no booking row is created.
func (r *BookingRepo) Create(ctx context.Context, nb NewBooking) (model.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := takeSlotTx(ctx, tx, nb.TripID); err != nil {
		return model.Booking{}, err
	}

	ref := uuid.NewString()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (reference, user_id, trip_id, booking_date, guests, special_requests, status) VALUES (?,?,?,?,?,?,?)",
		ref, nb.UserID, nb.TripID, nb.BookingDate, nb.Guests, nb.SpecialRequests, model.StatusPending)
	if err != nil {
		return model.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}
	b, err := scanBookingTx(ctx, tx, uint64(id))
	if err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return b, nil
}

const bookingColumns = "id, reference, user_id, trip_id, booking_date, guests, special_requests, status, created_at, updated_at"

func scanBooking(row interface{ Scan(...interface{}) error }) (model.Booking, error) {
	var b model.Booking
	var date time.Time
	var guests sql.NullInt64
	var requests sql.NullString
	err := row.Scan(&b.ID, &b.Reference, &b.UserID, &b.TripID, &date,
		&guests, &requests, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	b.BookingDate = date.Format("2006-01-02")
	if guests.Valid {
		g := int(guests.Int64)
		b.Guests = &g
	}
	if requests.Valid {
		s := requests.String
		b.SpecialRequests = &s
	}
	return b, nil
}

func scanBookingTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
	return scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ? LIMIT 1", id))
}

// GetByID loads a booking without an ownership filter.  The handler decides
// between 403 and 404 so that a non-owner probing someone else's booking id
// is told "forbidden", not "not found".
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// GetDetail loads a booking joined with its trip.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (BookingDetail, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT b.id, b.reference, b.user_id, b.trip_id, b.booking_date, b.guests,
		       b.special_requests, b.status, b.created_at, b.updated_at,
		       t.title, t.price, t.duration, t.description
		FROM bookings b
		JOIN trips t ON b.trip_id = t.id
		WHERE b.id = ? LIMIT 1`, id)
	d, err := scanBookingDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return BookingDetail{}, ErrNotFound
	}
	return d, err
}

func scanBookingDetail(row interface{ Scan(...interface{}) error }) (BookingDetail, error) {
	var d BookingDetail
	var date time.Time
	var guests sql.NullInt64
	var requests sql.NullString
	err := row.Scan(&d.ID, &d.Reference, &d.UserID, &d.TripID, &date,
		&guests, &requests, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		&d.TripTitle, &d.TripPrice, &d.TripDuration, &d.TripDescription)
	if err != nil {
		return BookingDetail{}, err
	}
	d.BookingDate = date.Format("2006-01-02")
	if guests.Valid {
		g := int(guests.Int64)
		d.Guests = &g
	}
	if requests.Valid {
		s := requests.String
		d.SpecialRequests = &s
	}
	return d, nil
}

// ListByUser returns the caller's bookings joined with trip fields, newest
// first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.id, b.reference, b.user_id, b.trip_id, b.booking_date, b.guests,
		       b.special_requests, b.status, b.created_at, b.updated_at,
		       t.title, t.price, t.duration, t.description
		FROM bookings b
		JOIN trips t ON b.trip_id = t.id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC, b.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListAll returns every booking with owner identity and trip summary, newest
// first.  Admin dashboard only.
func (r *BookingRepo) ListAll(ctx context.Context) ([]AdminBookingDetail, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.id, b.reference, b.user_id, b.trip_id, b.booking_date, b.guests,
		       b.special_requests, b.status, b.created_at, b.updated_at,
		       t.title, t.price, u.name, u.email
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		JOIN trips t ON b.trip_id = t.id
		ORDER BY b.created_at DESC, b.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AdminBookingDetail, 0)
	for rows.Next() {
		var d AdminBookingDetail
		var date time.Time
		var guests sql.NullInt64
		var requests sql.NullString
		err := rows.Scan(&d.ID, &d.Reference, &d.UserID, &d.TripID, &date,
			&guests, &requests, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.TripTitle, &d.TripPrice, &d.UserName, &d.UserEmail)
		if err != nil {
			return nil, err
		}
		d.BookingDate = date.Format("2006-01-02")
		if guests.Valid {
			g := int(guests.Int64)
			d.Guests = &g
		}
		if requests.Valid {
			s := requests.String
			d.SpecialRequests = &s
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateStatus moves a booking to newStatus and applies the slot rule, used
// by the admin status endpoint.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, newStatus string) (model.Booking, error) {
	return r.updateStatus(ctx, id, 0, newStatus)
}

// UpdateStatusForUser is the owner-only variant: ErrForbidden when the
// booking belongs to someone else.
func (r *BookingRepo) UpdateStatusForUser(ctx context.Context, id, userID uint64, newStatus string) (model.Booking, error) {
	return r.updateStatus(ctx, id, userID, newStatus)
}

// updateStatus performs the read-then-write transition in one transaction.
// The slot delta is computed from the status read under the same tx, so the
// rule fires exactly once per transition regardless of concurrent updates.
// owner == 0 skips the ownership check.
func (r *BookingRepo) updateStatus(ctx context.Context, id, owner uint64, newStatus string) (model.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var ownerID, tripID uint64
	var oldStatus string
	err = tx.QueryRowContext(ctx,
		"SELECT user_id, trip_id, status FROM bookings WHERE id = ? LIMIT 1", id).
		Scan(&ownerID, &tripID, &oldStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	if owner != 0 && ownerID != owner {
		return model.Booking{}, ErrForbidden
	}

	switch model.SlotDelta(oldStatus, newStatus) {
	case -1:
		// Reactivation takes a slot again and fails when the trip is full.
		if err := takeSlotTx(ctx, tx, tripID); err != nil {
			return model.Booking{}, err
		}
	case +1:
		if err := releaseSlotTx(ctx, tx, tripID); err != nil {
			return model.Booking{}, err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		newStatus, id); err != nil {
		return model.Booking{}, err
	}
	b, err := scanBookingTx(ctx, tx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return b, nil
}

// Delete removes a booking owned by userID.  A booking that still holds a
// slot (status other than cancelled) releases it in the same transaction.
// ErrForbidden for any other caller, admins included.
func (r *BookingRepo) Delete(ctx context.Context, id, userID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var ownerID, tripID uint64
	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT user_id, trip_id, status FROM bookings WHERE id = ? LIMIT 1", id).
		Scan(&ownerID, &tripID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}

	if status != model.StatusCancelled {
		if err := releaseSlotTx(ctx, tx, tripID); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
