package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/repository"
)

// ----- flights -----

type flightReq struct {
	EventID uint64  `json:"event_id"`
	Airline string  `json:"airline"`
	Class   string  `json:"class"`
	Price   float64 `json:"price"`
}

// CreateFlight handles POST /v1/admin/flights.
func (h *AdminHandler) CreateFlight(c echo.Context) error {
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Airline = strings.TrimSpace(req.Airline)
	req.Class = strings.TrimSpace(req.Class)
	if req.Airline == "" || req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id and airline required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Events.GetByID(ctx, req.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	f := &repository.Flight{EventID: req.EventID, Airline: req.Airline, Class: req.Class, Price: req.Price}
	if err := h.Flights.Create(ctx, f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create flight failed"})
	}
	h.invalidate(c, "flights")
	return c.JSON(http.StatusCreated, f)
}

// ListFlights handles GET /v1/admin/events/:id/flights.
func (h *AdminHandler) ListFlights(c echo.Context) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	flights, err := h.Flights.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if flights == nil {
		flights = []repository.Flight{}
	}
	return c.JSON(http.StatusOK, flights)
}

// UpdateFlight handles PUT /v1/admin/flights/:id.
func (h *AdminHandler) UpdateFlight(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Airline = strings.TrimSpace(req.Airline)
	req.Class = strings.TrimSpace(req.Class)
	if req.Airline == "" || req.EventID == 0 || req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id, airline and non-negative price required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	f := &repository.Flight{ID: id, EventID: req.EventID, Airline: req.Airline, Class: req.Class, Price: req.Price}
	switch err := h.Flights.Update(ctx, f); {
	case err == nil:
		h.invalidate(c, "flights")
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	case errors.Is(err, repository.ErrNoChange):
		return c.JSON(http.StatusOK, echo.Map{"status": "unchanged"})
	case errors.Is(err, repository.ErrFlightNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// DeleteFlight handles DELETE /v1/admin/flights/:id.
func (h *AdminHandler) DeleteFlight(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.Flights.Delete(ctx, id); {
	case err == nil:
		h.invalidate(c, "flights")
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrFlightNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}

// ----- lounge passes -----

type loungePassReq struct {
	EventID uint64  `json:"event_id"`
	Variant string  `json:"variant"`
	Price   float64 `json:"price"`
}

// CreateLoungePass handles POST /v1/admin/lounge-passes.
func (h *AdminHandler) CreateLoungePass(c echo.Context) error {
	var req loungePassReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Variant = strings.TrimSpace(req.Variant)
	if req.Variant == "" || req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id and variant required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Events.GetByID(ctx, req.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	lp := &repository.LoungePass{EventID: req.EventID, Variant: req.Variant, Price: req.Price}
	if err := h.LoungePasses.Create(ctx, lp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create lounge pass failed"})
	}
	h.invalidate(c, "lounge-passes")
	return c.JSON(http.StatusCreated, lp)
}

// ListLoungePasses handles GET /v1/admin/events/:id/lounge-passes.
func (h *AdminHandler) ListLoungePasses(c echo.Context) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	passes, err := h.LoungePasses.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if passes == nil {
		passes = []repository.LoungePass{}
	}
	return c.JSON(http.StatusOK, passes)
}

// UpdateLoungePass handles PUT /v1/admin/lounge-passes/:id.
func (h *AdminHandler) UpdateLoungePass(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req loungePassReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Variant = strings.TrimSpace(req.Variant)
	if req.Variant == "" || req.EventID == 0 || req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id, variant and non-negative price required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	lp := &repository.LoungePass{ID: id, EventID: req.EventID, Variant: req.Variant, Price: req.Price}
	switch err := h.LoungePasses.Update(ctx, lp); {
	case err == nil:
		h.invalidate(c, "lounge-passes")
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	case errors.Is(err, repository.ErrNoChange):
		return c.JSON(http.StatusOK, echo.Map{"status": "unchanged"})
	case errors.Is(err, repository.ErrLoungePassNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lounge pass not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// DeleteLoungePass handles DELETE /v1/admin/lounge-passes/:id.
func (h *AdminHandler) DeleteLoungePass(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.LoungePasses.Delete(ctx, id); {
	case err == nil:
		h.invalidate(c, "lounge-passes")
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrLoungePassNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lounge pass not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}
