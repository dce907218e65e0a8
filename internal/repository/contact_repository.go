package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/naomimt/TravelMate/internal/model"
)

type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

// `read` is quoted everywhere because it is a reserved word in MySQL.
const contactColumns = "id, name, email, message, `read`, created_at"

func scanContact(row interface{ Scan(...interface{}) error }) (model.Contact, error) {
	var m model.Contact
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Read, &m.CreatedAt)
	return m, err
}

// Create stores a contact-form submission.  New messages are always unread.
func (r *ContactRepo) Create(ctx context.Context, name, email, message string) (model.Contact, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO contacts (name, email, message) VALUES (?,?,?)",
		name, email, message)
	if err != nil {
		return model.Contact{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Contact{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// List returns all messages, newest first.
func (r *ContactRepo) List(ctx context.Context) ([]model.Contact, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+contactColumns+" FROM contacts ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Contact, 0)
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID fetches one message.
func (r *ContactRepo) GetByID(ctx context.Context, id uint64) (model.Contact, error) {
	m, err := scanContact(r.DB.QueryRowContext(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, ErrNotFound
	}
	return m, err
}

// MarkRead flags a message as read and returns the row.  Idempotent: a
// second call on an already-read message succeeds with the same result.
// Existence is checked by the read-back rather than RowsAffected, which
// MySQL reports as zero for no-op updates.
func (r *ContactRepo) MarkRead(ctx context.Context, id uint64) (model.Contact, error) {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE contacts SET `read` = true WHERE id = ?", id); err != nil {
		return model.Contact{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a message.  ErrNotFound when the id does not exist.
func (r *ContactRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
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
