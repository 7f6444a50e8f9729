package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/repository"
	"github.com/iliyamo/smart-parking/internal/service"
)

// SlotHandler exposes the slot inventory: public listings for drivers
// and CRUD plus statistics for admins.
type SlotHandler struct {
	Slots *service.SlotService
}

func NewSlotHandler(s *service.SlotService) *SlotHandler {
	return &SlotHandler{Slots: s}
}

type createSlotReq struct {
	Code     string `json:"code"`
	Category string `json:"category"`
	Floor    uint32 `json:"floor"`
}

type updateSlotReq struct {
	Code     *string `json:"code"`
	Category *string `json:"category"`
	Floor    *uint32 `json:"floor"`
}

// slotErrStatus maps inventory errors to HTTP statuses.  Unknown
// errors fall through to 500.
func slotErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidSlotFormat):
		return http.StatusBadRequest, "invalid slot code format"
	case errors.Is(err, repository.ErrDuplicateSlot):
		return http.StatusConflict, "slot code already exists"
	case errors.Is(err, repository.ErrSlotNotFound):
		return http.StatusNotFound, "slot not found"
	case errors.Is(err, repository.ErrSlotInUse):
		return http.StatusConflict, "slot has an active booking"
	}
	return http.StatusInternalServerError, "database error"
}

// Create adds a slot to the inventory (admin).
func (h *SlotHandler) Create(c echo.Context) error {
	var req createSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slot, err := h.Slots.Add(ctx, req.Code, req.Category, req.Floor)
	if err != nil {
		status, msg := slotErrStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusCreated, slot)
}

// Update applies a partial update to a slot (admin).  Absent fields
// are left untouched.
func (h *SlotHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	var req updateSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Code == nil && req.Category == nil && req.Floor == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Slots.Update(ctx, id, req.Code, req.Category, req.Floor); err != nil {
		status, msg := slotErrStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	slot, err := h.Slots.Get(ctx, id)
	if err != nil {
		status, msg := slotErrStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusOK, slot)
}

// Delete removes a slot (admin).  Slots with an active booking are
// protected and answer 409.
func (h *SlotHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Slots.Remove(ctx, id); err != nil {
		status, msg := slotErrStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns the whole inventory (admin).
func (h *SlotHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slots, err := h.Slots.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": slots, "count": len(slots)})
}

// Available returns bookable slots.  This is the driver-facing listing
// and sits behind the response cache.
func (h *SlotHandler) Available(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slots, err := h.Slots.Available(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": slots, "count": len(slots)})
}

// Stats returns occupancy counters (admin).
func (h *SlotHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st, err := h.Slots.Statistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, st)
}
