package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/voyago/travel-backoffice/internal/middleware"
	"github.com/voyago/travel-backoffice/internal/repository"
)

// AdminHandler bundles the catalog repositories for the back-office CRUD
// surface.  Mutations invalidate the cached listings of the resources they
// touch via the response cache's tag sets.
type AdminHandler struct {
	Events           *repository.EventRepo
	Venues           *repository.VenueRepo
	Packages         *repository.PackageRepo
	Tiers            *repository.TierRepo
	Hotels           *repository.HotelRepo
	Rooms            *repository.RoomRepo
	Tickets          *repository.TicketRepo
	CircuitTransfers *repository.CircuitTransferRepo
	AirportTransfers *repository.AirportTransferRepo
	Flights          *repository.FlightRepo
	LoungePasses     *repository.LoungePassRepo

	RDB         *redis.Client
	CachePrefix string
}

// invalidate drops cached listings for the given resource nouns.
func (h *AdminHandler) invalidate(c echo.Context, resources ...string) {
	middleware.InvalidateTags(c.Request().Context(), h.RDB, h.CachePrefix, resources...)
}
