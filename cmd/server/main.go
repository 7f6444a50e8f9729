package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/smart-parking/internal/config"
	"github.com/iliyamo/smart-parking/internal/database"
	"github.com/iliyamo/smart-parking/internal/handler"
	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/queue"
	"github.com/iliyamo/smart-parking/internal/repository"
	"github.com/iliyamo/smart-parking/internal/router"
	"github.com/iliyamo/smart-parking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	slots := repository.NewSlotRepo(db)
	bookings := repository.NewBookingRepo(db)

	seedAdmin(ctx, cfg, users)

	slotSvc := service.NewSlotService(slots)
	bookingSvc := service.NewBookingService(slots, bookings)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	slotH := handler.NewSlotHandler(slotSvc)
	bookingH := handler.NewBookingHandler(bookingSvc, slotSvc)

	// Redis is optional: without it the rate limiter and response cache
	// degrade to pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, rdb)
	router.RegisterPublic(e, slotH, bookingH, rdb)
	router.RegisterUser(e, bookingH, cfg.JWTSecret)
	router.RegisterAdmin(e, slotH, bookingH, authH, cfg.JWTSecret)

	// Background consumer appends booking events to logs/booking.log.
	// It reconnects on its own; a dead broker never blocks the API.
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

// seedAdmin creates the default ADMIN account on a fresh database so
// the inventory can be managed before any registration happens.
func seedAdmin(ctx context.Context, cfg config.Config, users *repository.UserRepo) {
	n, err := users.CountAdmins(ctx)
	if err != nil {
		log.Fatalf("admin lookup failed: %v", err)
	}
	if n > 0 {
		return
	}
	admin := &model.User{
		Username:      cfg.AdminUsername,
		Email:         "admin@parking.local",
		Phone:         "0000000000",
		VehicleNumber: "ADMIN-0000",
		Role:          model.RoleAdmin,
	}
	if _, err := users.Create(ctx, admin, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}
	log.Printf("seeded default admin account %q", cfg.AdminUsername)
}
