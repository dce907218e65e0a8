package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/naomimt/TravelMate/internal/config"
	"github.com/naomimt/TravelMate/internal/database"
	"github.com/naomimt/TravelMate/internal/handler"
	"github.com/naomimt/TravelMate/internal/queue"
	"github.com/naomimt/TravelMate/internal/repository"
	"github.com/naomimt/TravelMate/internal/router"
	queue_publisher "github.com/naomimt/TravelMate/internal/service"
	"github.com/naomimt/TravelMate/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	trips := repository.NewTripRepo(db)
	bookings := repository.NewBookingRepo(db)
	contacts := repository.NewContactRepo(db)

	h := router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users),
		Trips:         handler.NewTripHandler(trips),
		Bookings:      handler.NewBookingHandler(bookings, queue_publisher.PublishBookingEvent),
		AdminBookings: handler.NewAdminBookingHandler(bookings, queue_publisher.PublishBookingEvent),
		Contacts:      handler.NewContactHandler(contacts),
	}

	e := echo.New()
	e.Validator = utils.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS()) // fully open, the frontend is served elsewhere
	router.RegisterRoutes(e, cfg, h, rdb)

	// Background audit trail for booking events.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
