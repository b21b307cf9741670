package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/repository"
)

// ----- events -----

type eventReq struct {
	Name    string  `json:"name"`
	VenueID *uint64 `json:"venue_id"`
}

// CreateEvent handles POST /v1/admin/events.
func (h *AdminHandler) CreateEvent(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if req.VenueID != nil {
		if _, err := h.Venues.GetByID(ctx, *req.VenueID); err != nil {
			if errors.Is(err, repository.ErrVenueNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}

	e := &repository.Event{Name: req.Name, VenueID: req.VenueID}
	if err := h.Events.Create(ctx, e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	h.invalidate(c, "events")
	return c.JSON(http.StatusCreated, e)
}

// ListEvents handles GET /v1/admin/events.
func (h *AdminHandler) ListEvents(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	events, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if events == nil {
		events = []repository.Event{}
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /v1/admin/events/:id.
func (h *AdminHandler) GetEvent(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, e)
}

// UpdateEvent handles PUT /v1/admin/events/:id.
func (h *AdminHandler) UpdateEvent(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	e := &repository.Event{ID: id, Name: req.Name, VenueID: req.VenueID}
	switch err := h.Events.Update(ctx, e); {
	case err == nil:
		h.invalidate(c, "events")
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	case errors.Is(err, repository.ErrNoChange):
		return c.JSON(http.StatusOK, echo.Map{"status": "unchanged"})
	case errors.Is(err, repository.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// DeleteEvent handles DELETE /v1/admin/events/:id.  Refused while packages,
// flights or lounge passes still reference the event.
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.Events.Delete(ctx, id); {
	case err == nil:
		h.invalidate(c, "events")
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "event still has dependent records"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}

// ----- venues -----

type venueReq struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// CreateVenue handles POST /v1/admin/venues.
func (h *AdminHandler) CreateVenue(c echo.Context) error {
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	v := &repository.Venue{Name: req.Name, City: strings.TrimSpace(req.City), Country: strings.TrimSpace(req.Country)}
	if err := h.Venues.Create(ctx, v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
	}
	h.invalidate(c, "venues")
	return c.JSON(http.StatusCreated, v)
}

// ListVenues handles GET /v1/admin/venues.
func (h *AdminHandler) ListVenues(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	venues, err := h.Venues.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if venues == nil {
		venues = []repository.Venue{}
	}
	return c.JSON(http.StatusOK, venues)
}

// UpdateVenue handles PUT /v1/admin/venues/:id.
func (h *AdminHandler) UpdateVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	v := &repository.Venue{ID: id, Name: req.Name, City: strings.TrimSpace(req.City), Country: strings.TrimSpace(req.Country)}
	switch err := h.Venues.Update(ctx, v); {
	case err == nil:
		h.invalidate(c, "venues", "events")
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	case errors.Is(err, repository.ErrNoChange):
		return c.JSON(http.StatusOK, echo.Map{"status": "unchanged"})
	case errors.Is(err, repository.ErrVenueNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// DeleteVenue handles DELETE /v1/admin/venues/:id.
func (h *AdminHandler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.Venues.Delete(ctx, id); {
	case err == nil:
		h.invalidate(c, "venues")
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrVenueNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "venue still referenced by events"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}
