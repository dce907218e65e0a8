package handler_test

// End-to-end handler tests: the full route table is registered on a real Echo
// instance backed by an in-memory SQLite database.  Redis and the message
// broker are absent (nil), which the router and handlers tolerate.

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/naomimt/TravelMate/internal/config"
	"github.com/naomimt/TravelMate/internal/handler"
	"github.com/naomimt/TravelMate/internal/model"
	"github.com/naomimt/TravelMate/internal/repository"
	"github.com/naomimt/TravelMate/internal/router"
	"github.com/naomimt/TravelMate/internal/utils"
)

const testSchema = `
CREATE TABLE users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user',
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE trips (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    title           TEXT NOT NULL,
    price           REAL NOT NULL,
    duration        TEXT NOT NULL,
    description     TEXT NOT NULL,
    available_slots INTEGER NOT NULL,
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE bookings (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    reference        TEXT NOT NULL UNIQUE,
    user_id          INTEGER NOT NULL REFERENCES users(id),
    trip_id          INTEGER NOT NULL REFERENCES trips(id),
    booking_date     DATE NOT NULL,
    guests           INTEGER NULL,
    special_requests TEXT NULL,
    status           TEXT NOT NULL DEFAULT 'pending',
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE contacts (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    message    TEXT NOT NULL,
    ` + "`read`" + `   BOOLEAN NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

var ctx = context.Background()

type testServer struct {
	e   *echo.Echo
	db  *sql.DB
	cfg config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	cfg := config.Config{
		Env:          "test",
		JWTSecret:    "handler-test-secret",
		TokenTTLDays: 7,
		BcryptCost:   bcrypt.MinCost,
	}

	users := repository.NewUserRepo(db)
	trips := repository.NewTripRepo(db)
	bookings := repository.NewBookingRepo(db)
	contacts := repository.NewContactRepo(db)

	e := echo.New()
	e.Validator = utils.NewRequestValidator()
	e.Use(echomw.Recover())
	router.RegisterRoutes(e, cfg, router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users),
		Trips:         handler.NewTripHandler(trips),
		Bookings:      handler.NewBookingHandler(bookings, nil),
		AdminBookings: handler.NewAdminBookingHandler(bookings, nil),
		Contacts:      handler.NewContactHandler(contacts),
	}, nil)

	return &testServer{e: e, db: db, cfg: cfg}
}

// do issues a request against the in-memory server.  token may be empty for
// anonymous requests; body may be nil.
func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors the JSON shape every endpoint returns.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// register creates an account through the API and returns its id and token.
func (ts *testServer) register(t *testing.T, name, email, password string) (uint64, string) {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		ID    uint64 `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &resp))
	return resp.ID, resp.Token
}

// adminToken seeds an admin account directly (there is no signup path for
// admins) and returns a bearer token for it.
func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()
	u, err := repository.NewUserRepo(ts.db).Create(ctx,
		"Admin", "admin@test.com", "adminpass", model.RoleAdmin, bcrypt.MinCost)
	require.NoError(t, err)
	tok, err := utils.IssueToken(ts.cfg.JWTSecret, u.ID, u.Email, u.Role, ts.cfg.TokenTTLDays)
	require.NoError(t, err)
	return tok
}

func (ts *testServer) seedTrip(t *testing.T, title string, slots int) uint64 {
	t.Helper()
	res, err := ts.db.Exec(
		"INSERT INTO trips (title, price, duration, description, available_slots) VALUES (?,?,?,?,?)",
		title, 899.00, "5 days", "test trip", slots)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func (ts *testServer) tripSlots(t *testing.T, id uint64) int {
	t.Helper()
	var n int
	require.NoError(t, ts.db.QueryRow("SELECT available_slots FROM trips WHERE id = ?", id).Scan(&n))
	return n
}
