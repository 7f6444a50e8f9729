package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/smart-parking/internal/config"
	"github.com/iliyamo/smart-parking/internal/handler"
	"github.com/iliyamo/smart-parking/internal/middleware"
	"github.com/iliyamo/smart-parking/internal/model"
)

// RegisterPublic registers the unauthenticated browse endpoints: the
// available-slot listing and the tariff table.  Both are read-only and
// sit behind the Redis response cache so burst traffic from the slot
// picker does not reach MySQL.
func RegisterPublic(e *echo.Echo, s *handler.SlotHandler, b *handler.BookingHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/v1/slots/available", s.Available, cache)
	e.GET("/v1/tariffs", b.Tariffs, cache)
}

// RegisterUser registers the driver-facing booking endpoints under /v1.
// All routes require a valid JWT; both USER and ADMIN roles may book.
func RegisterUser(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin),
	)
	g.POST("/bookings", b.Book)
	g.POST("/bookings/:id/checkout", b.Checkout)
	g.GET("/bookings/active", b.Active)
	g.GET("/bookings", b.History)
}
