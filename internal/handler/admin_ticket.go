package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/repository"
)

type ticketReq struct {
	PackageID uint64  `json:"package_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Remaining int     `json:"remaining"`
}

// CreateTicket handles POST /v1/admin/tickets.
func (h *AdminHandler) CreateTicket(c echo.Context) error {
	var req ticketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.PackageID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "package_id and name required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Packages.GetByID(ctx, req.PackageID); err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	t := &repository.Ticket{PackageID: req.PackageID, Name: req.Name, Price: req.Price, Remaining: req.Remaining}
	if err := h.Tickets.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create ticket failed"})
	}
	h.invalidate(c, "tickets")
	return c.JSON(http.StatusCreated, t)
}

// ListTickets handles GET /v1/admin/packages/:id/tickets.
func (h *AdminHandler) ListTickets(c echo.Context) error {
	packageID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	tickets, err := h.Tickets.ListByPackage(ctx, packageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if tickets == nil {
		tickets = []repository.Ticket{}
	}
	return c.JSON(http.StatusOK, tickets)
}

// UpdateTicket handles PUT /v1/admin/tickets/:id.
func (h *AdminHandler) UpdateTicket(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req ticketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.PackageID == 0 || req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "package_id, name and non-negative price required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	t := &repository.Ticket{ID: id, PackageID: req.PackageID, Name: req.Name, Price: req.Price, Remaining: req.Remaining}
	switch err := h.Tickets.Update(ctx, t); {
	case err == nil:
		h.invalidate(c, "tickets")
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	case errors.Is(err, repository.ErrNoChange):
		return c.JSON(http.StatusOK, echo.Map{"status": "unchanged"})
	case errors.Is(err, repository.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// DeleteTicket handles DELETE /v1/admin/tickets/:id.
func (h *AdminHandler) DeleteTicket(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.Tickets.Delete(ctx, id); {
	case err == nil:
		h.invalidate(c, "tickets")
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}
