package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/repository"
)

// ----- packages -----

type packageReq struct {
	EventID uint64 `json:"event_id"`
	Name    string `json:"name"`
	Type    string `json:"type"` // GRANDSTAND | VIP
}

// CreatePackage handles POST /v1/admin/packages.
func (h *AdminHandler) CreatePackage(c echo.Context) error {
	var req packageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	typ := strings.ToUpper(strings.TrimSpace(req.Type))
	if req.Name == "" || req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id and name required"})
	}
	if typ != "GRANDSTAND" && typ != "VIP" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be GRANDSTAND or VIP"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Events.GetByID(ctx, req.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	p := &repository.Package{EventID: req.EventID, Name: req.Name, Type: typ}
	if err := h.Packages.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create package failed"})
	}
	h.invalidate(c, "packages")
	return c.JSON(http.StatusCreated, p)
}

// ListPackages handles GET /v1/admin/events/:id/packages.
func (h *AdminHandler) ListPackages(c echo.Context) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	pkgs, err := h.Packages.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if pkgs == nil {
		pkgs = []repository.Package{}
	}
	return c.JSON(http.StatusOK, pkgs)
}

// UpdatePackage handles PUT /v1/admin/packages/:id.
func (h *AdminHandler) UpdatePackage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req packageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	typ := strings.ToUpper(strings.TrimSpace(req.Type))
	if req.Name == "" || (typ != "GRANDSTAND" && typ != "VIP") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and valid type required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cur, err := h.Packages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	p := &repository.Package{ID: id, EventID: cur.EventID, Name: req.Name, Type: typ}
	switch err := h.Packages.Update(ctx, p); {
	case err == nil:
		h.invalidate(c, "packages")
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	case errors.Is(err, repository.ErrNoChange):
		return c.JSON(http.StatusOK, echo.Map{"status": "unchanged"})
	case errors.Is(err, repository.ErrPackageNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// DeletePackage handles DELETE /v1/admin/packages/:id.
func (h *AdminHandler) DeletePackage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.Packages.Delete(ctx, id); {
	case err == nil:
		h.invalidate(c, "packages")
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrPackageNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "package still has dependent records"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}

// ----- package tiers -----

type tierReq struct {
	Name string `json:"name"`
}

// CreateTier handles POST /v1/admin/packages/:id/tiers.
func (h *AdminHandler) CreateTier(c echo.Context) error {
	packageID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req tierReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Packages.GetByID(ctx, packageID); err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	t := &repository.PackageTier{PackageID: packageID, Name: req.Name}
	switch err := h.Tiers.Create(ctx, t); {
	case err == nil:
		h.invalidate(c, "tiers", "packages")
		return c.JSON(http.StatusCreated, t)
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "tier already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create tier failed"})
	}
}

// ListTiers handles GET /v1/admin/packages/:id/tiers.
func (h *AdminHandler) ListTiers(c echo.Context) error {
	packageID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	tiers, err := h.Tiers.ListByPackage(ctx, packageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if tiers == nil {
		tiers = []repository.PackageTier{}
	}
	return c.JSON(http.StatusOK, tiers)
}

// DeleteTier handles DELETE /v1/admin/tiers/:id.
func (h *AdminHandler) DeleteTier(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.Tiers.Delete(ctx, id); {
	case err == nil:
		h.invalidate(c, "tiers", "packages")
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrTierNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tier not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}
