package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/pricing"
	"github.com/iliyamo/smart-parking/internal/queue"
	"github.com/iliyamo/smart-parking/internal/repository"
	"github.com/iliyamo/smart-parking/internal/service"
)

// BookingHandler exposes the booking lifecycle: book, checkout, the
// user's active booking and history, plus the admin-side ledger views.
type BookingHandler struct {
	Bookings *service.BookingService
	Slots    *service.SlotService
}

func NewBookingHandler(b *service.BookingService, s *service.SlotService) *BookingHandler {
	return &BookingHandler{Bookings: b, Slots: s}
}

type bookReq struct {
	SlotID        uint64 `json:"slot_id"`
	VehicleNumber string `json:"vehicle_number"`
	Package       string `json:"package"`
	BookingTime   string `json:"booking_time"` // optional, "now" when empty
}

// bookingErrStatus maps booking errors to HTTP statuses.
func bookingErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidVehicleFormat):
		return http.StatusBadRequest, "invalid vehicle number format"
	case errors.Is(err, service.ErrInvalidDateTime):
		return http.StatusBadRequest, "invalid date or time format"
	case errors.Is(err, service.ErrPastBookingTime):
		return http.StatusBadRequest, "booking time cannot be in the past"
	case errors.Is(err, repository.ErrSlotNotFound):
		return http.StatusNotFound, "slot not found"
	case errors.Is(err, repository.ErrSlotUnavailable):
		return http.StatusConflict, "slot is not available"
	case errors.Is(err, repository.ErrDuplicateActiveBooking):
		return http.StatusConflict, "you already have an active booking"
	case errors.Is(err, repository.ErrBookingNotFound):
		return http.StatusNotFound, "no active booking found"
	case errors.Is(err, pricing.ErrMalformedTimestamp):
		return http.StatusInternalServerError, "stored booking time is corrupted"
	}
	return http.StatusInternalServerError, "database error"
}

// Book reserves a slot for the authenticated user.
func (h *BookingHandler) Book(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SlotID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.Book(ctx, uid, req.SlotID, req.VehicleNumber, req.Package, req.BookingTime)
	if err != nil {
		status, msg := bookingErrStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}

	// Best-effort event for downstream consumers; failures never fail
	// the booking itself.
	go func(ev queue.BookingEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue.PublishBookingEvent(pubCtx, ev)
	}(queue.BookingEvent{
		Type:          queue.EventBookingCreated,
		BookingID:     b.ID,
		UserID:        b.UserID,
		SlotID:        b.SlotID,
		SlotCode:      b.SlotCode,
		VehicleNumber: b.VehicleNumber,
		BookingTime:   b.BookingTime,
		PackageType:   b.PackageType,
		PackageCost:   b.PackageCost,
		OccurredAt:    pricing.FormatTimestamp(time.Now()),
	})

	return c.JSON(http.StatusCreated, b)
}

// Checkout completes the caller's booking and returns the settlement
// summary.  Repeating the call answers 404, never a second charge.
func (h *BookingHandler) Checkout(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Bookings.Checkout(ctx, id, uid)
	if err != nil {
		status, msg := bookingErrStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}

	go func(ev queue.BookingEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue.PublishBookingEvent(pubCtx, ev)
	}(queue.BookingEvent{
		Type:          queue.EventBookingCompleted,
		BookingID:     res.BookingID,
		UserID:        uid,
		SlotCode:      res.SlotCode,
		VehicleNumber: res.VehicleNumber,
		BookingTime:   res.BookingTime,
		CheckoutTime:  res.CheckoutTime,
		PackageType:   res.PackageType,
		PackageCost:   res.PackageCost,
		ActualCost:    res.ActualCost,
		OccurredAt:    pricing.FormatTimestamp(time.Now()),
	})

	return c.JSON(http.StatusOK, res)
}

// Active returns the caller's current booking.
func (h *BookingHandler) Active(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.Active(ctx, uid)
	if err != nil {
		status, msg := bookingErrStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusOK, b)
}

// History returns the caller's bookings newest first.  An optional
// ?status=Active|Completed query narrows the result.
func (h *BookingHandler) History(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	status := c.QueryParam("status")
	if status != "" && status != model.BookingActive && status != model.BookingCompleted {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be Active or Completed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookings.History(ctx, uid, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": items, "count": len(items)})
}

// Tariffs returns the package table.  Public, cached.
func (h *BookingHandler) Tariffs(c echo.Context) error {
	type tariffResp struct {
		Key   string  `json:"key"`
		Name  string  `json:"name"`
		Rate  float64 `json:"rate"`
		Hours float64 `json:"hours"`
	}
	tariffs := pricing.Tariffs()
	out := make([]tariffResp, 0, len(tariffs))
	for _, t := range tariffs {
		out = append(out, tariffResp{Key: t.Key, Name: t.Name, Rate: t.Rate, Hours: t.Hours})
	}
	return c.JSON(http.StatusOK, echo.Map{"tariffs": out, "hourly_rate": float64(pricing.HourlyRate)})
}

// ActiveAll lists every active booking with owner contact details (admin).
func (h *BookingHandler) ActiveAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Bookings.ActiveAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": rows, "count": len(rows)})
}

// All lists the full ledger (admin).
func (h *BookingHandler) All(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Bookings.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": rows, "count": len(rows)})
}

// Dashboard combines slot occupancy and ledger counters (admin).
func (h *BookingHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slotStats, err := h.Slots.Statistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bookingStats, err := h.Bookings.Statistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"slots":    slotStats,
		"bookings": bookingStats,
	})
}
