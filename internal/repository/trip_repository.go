package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/naomimt/TravelMate/internal/model"
)

type TripRepo struct{ DB *sql.DB }

func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{DB: db} }

const tripColumns = "id, title, price, duration, description, available_slots, created_at, updated_at"

func scanTrip(row interface{ Scan(...interface{}) error }) (model.Trip, error) {
	var t model.Trip
	err := row.Scan(&t.ID, &t.Title, &t.Price, &t.Duration, &t.Description,
		&t.AvailableSlots, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// List returns the whole catalog, newest first.
func (r *TripRepo) List(ctx context.Context) ([]model.Trip, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+tripColumns+" FROM trips ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]model.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// GetByID fetches a single trip.
func (r *TripRepo) GetByID(ctx context.Context, id uint64) (model.Trip, error) {
	t, err := scanTrip(r.DB.QueryRowContext(ctx,
		"SELECT "+tripColumns+" FROM trips WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Trip{}, ErrNotFound
	}
	return t, err
}

// Create inserts a catalog entry and returns the stored row.
func (r *TripRepo) Create(ctx context.Context, title string, price float64, duration, description string, slots int) (model.Trip, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO trips (title, price, duration, description, available_slots) VALUES (?,?,?,?,?)",
		title, price, duration, description, slots)
	if err != nil {
		return model.Trip{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Trip{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// TripUpdate carries the optional fields of a partial catalog update.  Nil
// means "leave unchanged".
type TripUpdate struct {
	Title          *string
	Price          *float64
	Duration       *string
	Description    *string
	AvailableSlots *int
}

// Empty reports whether the update changes nothing.
func (u TripUpdate) Empty() bool {
	return u.Title == nil && u.Price == nil && u.Duration == nil &&
		u.Description == nil && u.AvailableSlots == nil
}

// Update applies a partial update and returns the new row.  ErrNotFound when
// the trip does not exist.
func (r *TripRepo) Update(ctx context.Context, id uint64, upd TripUpdate) (model.Trip, error) {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *upd.Price)
	}
	if upd.Duration != nil {
		sets = append(sets, "duration = ?")
		args = append(args, *upd.Duration)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.AvailableSlots != nil {
		sets = append(sets, "available_slots = ?")
		args = append(args, *upd.AvailableSlots)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := r.DB.ExecContext(ctx,
		"UPDATE trips SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return model.Trip{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Distinguish a missing row from a no-op update on an existing one.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Trip{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a trip.  ErrNotFound when the trip does not exist.
func (r *TripRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
