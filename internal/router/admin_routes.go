package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/handler"
	"github.com/iliyamo/smart-parking/internal/middleware"
	"github.com/iliyamo/smart-parking/internal/model"
)

// RegisterAdmin registers operator endpoints under /v1/admin.  All
// routes require a valid JWT carrying the ADMIN role: slot inventory
// management, ledger views, the occupancy dashboard and creation of
// further admin accounts.
func RegisterAdmin(e *echo.Echo, s *handler.SlotHandler, b *handler.BookingHandler, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// Slot inventory.
	g.POST("/slots", s.Create)
	g.GET("/slots", s.List)
	g.PATCH("/slots/:id", s.Update)
	g.DELETE("/slots/:id", s.Delete)
	g.GET("/slots/stats", s.Stats)

	// Booking ledger.
	g.GET("/bookings", b.All)
	g.GET("/bookings/active", b.ActiveAll)
	g.GET("/dashboard", b.Dashboard)

	// Additional operator accounts.
	g.POST("/users", a.CreateAdmin)
}
