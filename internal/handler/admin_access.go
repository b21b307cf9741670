package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/repository"
	"github.com/voyago/travel-backoffice/internal/utils"
)

// AccessHandler covers the access administration surface: API keys for
// external integrations, sales contacts that receive booking requests, and
// user account management.
type AccessHandler struct {
	Users         *repository.UserRepo
	APIKeys       *repository.APIKeyRepo
	SalesContacts *repository.SalesContactRepo
}

func NewAccessHandler(u *repository.UserRepo, k *repository.APIKeyRepo, s *repository.SalesContactRepo) *AccessHandler {
	return &AccessHandler{Users: u, APIKeys: k, SalesContacts: s}
}

// ----- API keys -----

type apiKeyReq struct {
	Name string `json:"name"`
}

// CreateAPIKey handles POST /v1/admin/api-keys.  The raw key appears in this
// response only; afterwards only its hash exists.
func (h *AccessHandler) CreateAPIKey(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req apiKeyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	raw, err := utils.NewAPIKey()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate key failed"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	k := &repository.APIKey{Name: req.Name, KeyHash: utils.HashAPIKey(raw), CreatedBy: uid}
	switch err := h.APIKeys.Create(ctx, k); {
	case err == nil:
		return c.JSON(http.StatusCreated, echo.Map{"id": k.ID, "name": k.Name, "key": raw})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "key name already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create key failed"})
	}
}

// ListAPIKeys handles GET /v1/admin/api-keys.
func (h *AccessHandler) ListAPIKeys(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	keys, err := h.APIKeys.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if keys == nil {
		keys = []repository.APIKey{}
	}
	return c.JSON(http.StatusOK, keys)
}

// DeleteAPIKey handles DELETE /v1/admin/api-keys/:id.
func (h *AccessHandler) DeleteAPIKey(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.APIKeys.Delete(ctx, id); {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrAPIKeyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "api key not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}

// ----- sales contacts -----

type salesContactReq struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Region string `json:"region"`
}

// CreateSalesContact handles POST /v1/admin/sales-contacts.
func (h *AccessHandler) CreateSalesContact(c echo.Context) error {
	var req salesContactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	sc := &repository.SalesContact{Name: req.Name, Email: req.Email, Region: strings.TrimSpace(req.Region)}
	switch err := h.SalesContacts.Create(ctx, sc); {
	case err == nil:
		return c.JSON(http.StatusCreated, sc)
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "contact email already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create contact failed"})
	}
}

// ListSalesContacts handles GET /v1/admin/sales-contacts.
func (h *AccessHandler) ListSalesContacts(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	contacts, err := h.SalesContacts.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if contacts == nil {
		contacts = []repository.SalesContact{}
	}
	return c.JSON(http.StatusOK, contacts)
}

// DeleteSalesContact handles DELETE /v1/admin/sales-contacts/:id.
func (h *AccessHandler) DeleteSalesContact(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.SalesContacts.Delete(ctx, id); {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrSalesContactNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "contact not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}

// ----- user accounts -----

// ListUsers handles GET /v1/admin/users.
func (h *AccessHandler) ListUsers(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]echo.Map, 0, len(users))
	for _, u := range users {
		out = append(out, echo.Map{
			"id":        u.ID,
			"email":     u.Email,
			"role":      u.Role,
			"is_active": u.IsActive,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// SetUserActive handles PUT /v1/admin/users/:id/active.  Accounts are
// disabled rather than deleted so the audit trail survives.
func (h *AccessHandler) SetUserActive(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Active *bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "active required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Users.SetActive(ctx, id, *req.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
}
