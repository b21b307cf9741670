package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/repository"
)

// ----- circuit transfers -----

type circuitTransferReq struct {
	HotelID       uint64  `json:"hotel_id"`
	TransportType string  `json:"transport_type"`
	Price         float64 `json:"price"`
}

// CreateCircuitTransfer handles POST /v1/admin/circuit-transfers.
func (h *AdminHandler) CreateCircuitTransfer(c echo.Context) error {
	var req circuitTransferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.TransportType = strings.TrimSpace(req.TransportType)
	if req.TransportType == "" || req.HotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id and transport_type required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Hotels.GetByID(ctx, req.HotelID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	t := &repository.CircuitTransfer{HotelID: req.HotelID, TransportType: req.TransportType, Price: req.Price}
	if err := h.CircuitTransfers.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create transfer failed"})
	}
	h.invalidate(c, "circuit-transfers")
	return c.JSON(http.StatusCreated, t)
}

// ListCircuitTransfers handles GET /v1/admin/hotels/:id/circuit-transfers.
func (h *AdminHandler) ListCircuitTransfers(c echo.Context) error {
	hotelID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	transfers, err := h.CircuitTransfers.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if transfers == nil {
		transfers = []repository.CircuitTransfer{}
	}
	return c.JSON(http.StatusOK, transfers)
}

// UpdateCircuitTransfer handles PUT /v1/admin/circuit-transfers/:id.
func (h *AdminHandler) UpdateCircuitTransfer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req circuitTransferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.TransportType = strings.TrimSpace(req.TransportType)
	if req.TransportType == "" || req.HotelID == 0 || req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id, transport_type and non-negative price required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	t := &repository.CircuitTransfer{ID: id, HotelID: req.HotelID, TransportType: req.TransportType, Price: req.Price}
	switch err := h.CircuitTransfers.Update(ctx, t); {
	case err == nil:
		h.invalidate(c, "circuit-transfers")
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	case errors.Is(err, repository.ErrNoChange):
		return c.JSON(http.StatusOK, echo.Map{"status": "unchanged"})
	case errors.Is(err, repository.ErrTransferNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "transfer not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// DeleteCircuitTransfer handles DELETE /v1/admin/circuit-transfers/:id.
func (h *AdminHandler) DeleteCircuitTransfer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.CircuitTransfers.Delete(ctx, id); {
	case err == nil:
		h.invalidate(c, "circuit-transfers")
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrTransferNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "transfer not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}

// ----- airport transfers -----

type airportTransferReq struct {
	HotelID       uint64  `json:"hotel_id"`
	TransportType string  `json:"transport_type"`
	Price         float64 `json:"price"`
	MaxCapacity   int     `json:"max_capacity"`
}

// CreateAirportTransfer handles POST /v1/admin/airport-transfers.
func (h *AdminHandler) CreateAirportTransfer(c echo.Context) error {
	var req airportTransferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.TransportType = strings.TrimSpace(req.TransportType)
	if req.TransportType == "" || req.HotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id and transport_type required"})
	}
	if req.Price < 0 || req.MaxCapacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "non-negative price and positive max_capacity required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Hotels.GetByID(ctx, req.HotelID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	t := &repository.AirportTransfer{HotelID: req.HotelID, TransportType: req.TransportType, Price: req.Price, MaxCapacity: req.MaxCapacity}
	if err := h.AirportTransfers.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create transfer failed"})
	}
	h.invalidate(c, "airport-transfers")
	return c.JSON(http.StatusCreated, t)
}

// ListAirportTransfers handles GET /v1/admin/hotels/:id/airport-transfers.
func (h *AdminHandler) ListAirportTransfers(c echo.Context) error {
	hotelID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	transfers, err := h.AirportTransfers.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if transfers == nil {
		transfers = []repository.AirportTransfer{}
	}
	return c.JSON(http.StatusOK, transfers)
}

// UpdateAirportTransfer handles PUT /v1/admin/airport-transfers/:id.
func (h *AdminHandler) UpdateAirportTransfer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req airportTransferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.TransportType = strings.TrimSpace(req.TransportType)
	if req.TransportType == "" || req.HotelID == 0 || req.Price < 0 || req.MaxCapacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id, transport_type, non-negative price and positive max_capacity required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	t := &repository.AirportTransfer{ID: id, HotelID: req.HotelID, TransportType: req.TransportType, Price: req.Price, MaxCapacity: req.MaxCapacity}
	switch err := h.AirportTransfers.Update(ctx, t); {
	case err == nil:
		h.invalidate(c, "airport-transfers")
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	case errors.Is(err, repository.ErrNoChange):
		return c.JSON(http.StatusOK, echo.Map{"status": "unchanged"})
	case errors.Is(err, repository.ErrTransferNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "transfer not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// DeleteAirportTransfer handles DELETE /v1/admin/airport-transfers/:id.
func (h *AdminHandler) DeleteAirportTransfer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.AirportTransfers.Delete(ctx, id); {
	case err == nil:
		h.invalidate(c, "airport-transfers")
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrTransferNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "transfer not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}
