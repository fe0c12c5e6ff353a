package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pet-hostel/internal/config"
	"github.com/iliyamo/pet-hostel/internal/database"
	"github.com/iliyamo/pet-hostel/internal/handler"
	"github.com/iliyamo/pet-hostel/internal/middleware"
	"github.com/iliyamo/pet-hostel/internal/queue"
	"github.com/iliyamo/pet-hostel/internal/repository"
	"github.com/iliyamo/pet-hostel/internal/router"
)

func main() {
	// .env is optional; real deployments pass the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	bookings := repository.NewBookingRepo(db)
	analytics := repository.NewAnalyticsRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens, bookings)
	bookingH := handler.NewBookingHandler(bookings)
	analyticsH := handler.NewAnalyticsHandler(analytics)

	e := echo.New()
	e.HideBanner = true

	// The limiter fails open: with no reachable Redis every request passes.
	var protected []echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		protected = append(protected, rl)
	} else {
		log.Println("redis unavailable, rate limiting disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, protected...)
	router.RegisterBookings(e, bookingH, cfg.JWTSecret, protected...)
	router.RegisterAnalytics(e, analyticsH, cfg.JWTSecret, protected...)

	// Audit consumer runs for the lifetime of the process and reconnects on
	// broker failures.
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
