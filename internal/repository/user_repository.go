package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/naomimt/TravelMate/internal/model"
	"github.com/naomimt/TravelMate/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts a new user.  The email is matched
// exactly as submitted; an existing account with the same address yields
// ErrEmailExists.  The role is always set by the caller, never by the client.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role string, cost int) (model.User, error) {
	var exists uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email = ? LIMIT 1", email).Scan(&exists)
	if err == nil {
		return model.User{}, ErrEmailExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.User{}, err
	}

	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
		name, email, hash, role)
	if err != nil {
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches a user by email.  Returns ErrNotFound when no account
// matches; callers must not reveal to clients whether the email existed.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = ? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = ? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}
