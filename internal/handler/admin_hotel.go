package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/quote"
	"github.com/voyago/travel-backoffice/internal/repository"
)

// ----- hotels -----

type hotelReq struct {
	PackageID uint64 `json:"package_id"`
	Name      string `json:"name"`
	Stars     int    `json:"stars"`
}

// CreateHotel handles POST /v1/admin/hotels.
func (h *AdminHandler) CreateHotel(c echo.Context) error {
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.PackageID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "package_id and name required"})
	}
	if req.Stars < 0 || req.Stars > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stars must be 0-5"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Packages.GetByID(ctx, req.PackageID); err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	ht := &repository.Hotel{PackageID: req.PackageID, Name: req.Name, Stars: req.Stars}
	if err := h.Hotels.Create(ctx, ht); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hotel failed"})
	}
	h.invalidate(c, "hotels")
	return c.JSON(http.StatusCreated, ht)
}

// ListHotels handles GET /v1/admin/packages/:id/hotels.
func (h *AdminHandler) ListHotels(c echo.Context) error {
	packageID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	hotels, err := h.Hotels.ListByPackage(ctx, packageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if hotels == nil {
		hotels = []repository.Hotel{}
	}
	return c.JSON(http.StatusOK, hotels)
}

// UpdateHotel handles PUT /v1/admin/hotels/:id.
func (h *AdminHandler) UpdateHotel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cur, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	ht := &repository.Hotel{ID: id, PackageID: cur.PackageID, Name: req.Name, Stars: req.Stars}
	switch err := h.Hotels.Update(ctx, ht); {
	case err == nil:
		h.invalidate(c, "hotels")
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	case errors.Is(err, repository.ErrNoChange):
		return c.JSON(http.StatusOK, echo.Map{"status": "unchanged"})
	case errors.Is(err, repository.ErrHotelNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// DeleteHotel handles DELETE /v1/admin/hotels/:id.
func (h *AdminHandler) DeleteHotel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.Hotels.Delete(ctx, id); {
	case err == nil:
		h.invalidate(c, "hotels")
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrHotelNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "hotel still has dependent records"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}

// ----- rooms -----

type roomReq struct {
	HotelID         uint64  `json:"hotel_id"`
	Category        string  `json:"category"`
	Type            string  `json:"type"`
	Price           float64 `json:"price"`
	ExtraNightPrice float64 `json:"extra_night_price"`
	Nights          int     `json:"nights"`
	Remaining       int     `json:"remaining"`
	CheckInDate     string  `json:"check_in_date"`
	CheckOutDate    string  `json:"check_out_date"`
}

// validate checks the cross-field rules shared by create and update.  The
// quoted stay dates must parse as DD/MM/YYYY and span the quoted nights.
func (r *roomReq) validate() string {
	r.Category = strings.TrimSpace(r.Category)
	r.Type = strings.TrimSpace(r.Type)
	if r.Category == "" || r.Type == "" {
		return "category and type required"
	}
	if r.Price < 0 || r.ExtraNightPrice < 0 {
		return "prices must not be negative"
	}
	if r.Nights <= 0 {
		return "nights must be positive"
	}
	from, err := quote.ParseDMY(r.CheckInDate)
	if err != nil {
		return "check_in_date must be DD/MM/YYYY"
	}
	to, err := quote.ParseDMY(r.CheckOutDate)
	if err != nil {
		return "check_out_date must be DD/MM/YYYY"
	}
	if quote.NightsBetween(from, to) != r.Nights {
		return "dates do not span the quoted nights"
	}
	return ""
}

// CreateRoom handles POST /v1/admin/rooms.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id required"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Hotels.GetByID(ctx, req.HotelID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	m := &repository.Room{
		HotelID:         req.HotelID,
		Category:        req.Category,
		Type:            req.Type,
		Price:           req.Price,
		ExtraNightPrice: req.ExtraNightPrice,
		Nights:          req.Nights,
		Remaining:       req.Remaining,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
	}
	if err := h.Rooms.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	h.invalidate(c, "rooms")
	return c.JSON(http.StatusCreated, m)
}

// ListRooms handles GET /v1/admin/hotels/:id/rooms.
func (h *AdminHandler) ListRooms(c echo.Context) error {
	hotelID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	rooms, err := h.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if rooms == nil {
		rooms = []repository.Room{}
	}
	return c.JSON(http.StatusOK, rooms)
}

// UpdateRoom handles PUT /v1/admin/rooms/:id.
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cur, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	m := &repository.Room{
		ID:              id,
		HotelID:         cur.HotelID,
		Category:        req.Category,
		Type:            req.Type,
		Price:           req.Price,
		ExtraNightPrice: req.ExtraNightPrice,
		Nights:          req.Nights,
		Remaining:       req.Remaining,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
	}
	switch err := h.Rooms.Update(ctx, m); {
	case err == nil:
		h.invalidate(c, "rooms")
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	case errors.Is(err, repository.ErrNoChange):
		return c.JSON(http.StatusOK, echo.Map{"status": "unchanged"})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// DeleteRoom handles DELETE /v1/admin/rooms/:id.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	switch err := h.Rooms.Delete(ctx, id); {
	case err == nil:
		h.invalidate(c, "rooms")
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}
