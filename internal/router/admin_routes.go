package router

import (
	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/handler"
	"github.com/voyago/travel-backoffice/internal/middleware"
)

// RegisterAdmin registers the catalog administration surface under
// /v1/admin.  Reads are open to both roles and flow through the response
// cache; writes require ADMIN and invalidate the affected cache tags from
// inside the handlers.  The cache middleware only acts on the methods its
// config marks cacheable, so attaching it group-wide is safe.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, access *handler.AccessHandler, jwtSecret string, limit, cache echo.MiddlewareFunc) {
	read := e.Group("/v1/admin",
		limit,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
		cache,
	)
	write := e.Group("/v1/admin",
		limit,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- venues & events ----
	write.POST("/venues", h.CreateVenue)
	read.GET("/venues", h.ListVenues)
	write.PUT("/venues/:id", h.UpdateVenue)
	write.DELETE("/venues/:id", h.DeleteVenue)

	write.POST("/events", h.CreateEvent)
	read.GET("/events", h.ListEvents)
	read.GET("/events/:id", h.GetEvent)
	write.PUT("/events/:id", h.UpdateEvent)
	write.DELETE("/events/:id", h.DeleteEvent)

	// ---- packages & tiers ----
	write.POST("/packages", h.CreatePackage)
	read.GET("/events/:id/packages", h.ListPackages)
	write.PUT("/packages/:id", h.UpdatePackage)
	write.DELETE("/packages/:id", h.DeletePackage)

	write.POST("/packages/:id/tiers", h.CreateTier)
	read.GET("/packages/:id/tiers", h.ListTiers)
	write.DELETE("/tiers/:id", h.DeleteTier)

	// ---- hotels & rooms ----
	write.POST("/hotels", h.CreateHotel)
	read.GET("/packages/:id/hotels", h.ListHotels)
	write.PUT("/hotels/:id", h.UpdateHotel)
	write.DELETE("/hotels/:id", h.DeleteHotel)

	write.POST("/rooms", h.CreateRoom)
	read.GET("/hotels/:id/rooms", h.ListRooms)
	write.PUT("/rooms/:id", h.UpdateRoom)
	write.DELETE("/rooms/:id", h.DeleteRoom)

	// ---- tickets ----
	write.POST("/tickets", h.CreateTicket)
	read.GET("/packages/:id/tickets", h.ListTickets)
	write.PUT("/tickets/:id", h.UpdateTicket)
	write.DELETE("/tickets/:id", h.DeleteTicket)

	// ---- transfers ----
	write.POST("/circuit-transfers", h.CreateCircuitTransfer)
	read.GET("/hotels/:id/circuit-transfers", h.ListCircuitTransfers)
	write.PUT("/circuit-transfers/:id", h.UpdateCircuitTransfer)
	write.DELETE("/circuit-transfers/:id", h.DeleteCircuitTransfer)

	write.POST("/airport-transfers", h.CreateAirportTransfer)
	read.GET("/hotels/:id/airport-transfers", h.ListAirportTransfers)
	write.PUT("/airport-transfers/:id", h.UpdateAirportTransfer)
	write.DELETE("/airport-transfers/:id", h.DeleteAirportTransfer)

	// ---- flights & lounge passes ----
	write.POST("/flights", h.CreateFlight)
	read.GET("/events/:id/flights", h.ListFlights)
	write.PUT("/flights/:id", h.UpdateFlight)
	write.DELETE("/flights/:id", h.DeleteFlight)

	write.POST("/lounge-passes", h.CreateLoungePass)
	read.GET("/events/:id/lounge-passes", h.ListLoungePasses)
	write.PUT("/lounge-passes/:id", h.UpdateLoungePass)
	write.DELETE("/lounge-passes/:id", h.DeleteLoungePass)

	// ---- access administration ----
	write.POST("/api-keys", access.CreateAPIKey)
	write.GET("/api-keys", access.ListAPIKeys)
	write.DELETE("/api-keys/:id", access.DeleteAPIKey)

	write.POST("/sales-contacts", access.CreateSalesContact)
	read.GET("/sales-contacts", access.ListSalesContacts)
	write.DELETE("/sales-contacts/:id", access.DeleteSalesContact)

	write.GET("/users", access.ListUsers)
	write.PUT("/users/:id/active", access.SetUserActive)
}
