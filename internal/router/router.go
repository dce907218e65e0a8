package router // package router wires HTTP routes to handlers and middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/naomimt/TravelMate/internal/config"
	"github.com/naomimt/TravelMate/internal/handler"
	"github.com/naomimt/TravelMate/internal/middleware"
)

// Handlers collects everything the route table needs.
type Handlers struct {
	Auth          *handler.AuthHandler
	Trips         *handler.TripHandler
	Bookings      *handler.BookingHandler
	AdminBookings *handler.AdminBookingHandler
	Contacts      *handler.ContactHandler
}

// RegisterRoutes registers the full API surface on the provided Echo
// instance.  rdb may be nil, in which case caching and rate limiting are
// disabled and every route still works.
//
// Route protection levels:
//   - public: trips reads, contact submission, auth, health
//   - user (JWT): booking create/list/get/update/delete
//   - admin (JWT + role): trip mutations, booking status + dashboard, inbox
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	auth := middleware.JWTAuth(cfg.JWTSecret)
	admin := middleware.RequireAdmin()

	e.GET("/healthz", handler.Health)

	api := e.Group("/api")

	// Auth: unauthenticated, rate limited against credential stuffing.
	api.POST("/auth/register", h.Auth.Register, limiter)
	api.POST("/auth/login", h.Auth.Login, limiter)

	// Trip catalog: reads are public and cached; mutations are admin only.
	api.GET("/trips", h.Trips.List, cache)
	api.GET("/trips/:id", h.Trips.Get, cache)
	api.POST("/trips", h.Trips.Create, auth, admin)
	api.PATCH("/trips/:id", h.Trips.Update, auth, admin)
	api.DELETE("/trips/:id", h.Trips.Delete, auth, admin)

	// Bookings: owner-scoped, except the admin status transition.
	bookings := api.Group("/bookings", auth)
	bookings.POST("", h.Bookings.Create)
	bookings.GET("", h.Bookings.ListMine)
	bookings.GET("/:id", h.Bookings.Get)
	bookings.PUT("/:id", h.Bookings.SelfUpdateStatus)
	bookings.DELETE("/:id", h.Bookings.Delete)
	bookings.PATCH("/:id/status", h.AdminBookings.UpdateStatus, admin)

	// Contact form: anonymous submission, rate limited against spam.
	api.POST("/contacts", h.Contacts.Submit, limiter)

	// Admin dashboard.
	adminGroup := api.Group("/admin", auth, admin)
	adminGroup.GET("/bookings", h.AdminBookings.ListAll)
	adminGroup.GET("/contacts", h.Contacts.ListAll)
	adminGroup.GET("/contacts/:id", h.Contacts.Get)
	adminGroup.PATCH("/contacts/:id/read", h.Contacts.MarkRead)
	adminGroup.DELETE("/contacts/:id", h.Contacts.Delete)
}
