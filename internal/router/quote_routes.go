package router

import (
	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/handler"
	"github.com/voyago/travel-backoffice/internal/middleware"
	"github.com/voyago/travel-backoffice/internal/repository"
)

// RegisterQuote registers the quote builder under /v1/quote.  The console is
// used by staff with a JWT, but external integrations may present an API key
// instead, which grants STAFF-level access.
func RegisterQuote(e *echo.Echo, q *handler.QuoteHandler, b *handler.BookingHandler, jwtSecret string, keys *repository.APIKeyRepo, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/quote",
		limit,
		middleware.APIKeyOrJWT(jwtSecret, keys),
		middleware.RequireRole("ADMIN", "STAFF"),
	)

	g.GET("/events", q.ListEvents)

	g.POST("/sessions", q.CreateSession)
	g.GET("/sessions/:sid", q.GetSession)
	g.DELETE("/sessions/:sid", q.DeleteSession)

	// Selection steps.  Each POST replaces one level of the cascade and
	// reloads everything below it.
	g.POST("/sessions/:sid/event", q.SelectEvent)
	g.POST("/sessions/:sid/package", q.SelectPackage)
	g.POST("/sessions/:sid/hotel", q.SelectHotel)
	g.POST("/sessions/:sid/room", q.SelectRoom)
	g.POST("/sessions/:sid/dates", q.SetDateRange)
	g.POST("/sessions/:sid/ticket", q.SelectTicket)
	g.POST("/sessions/:sid/circuit-transfer", q.SelectCircuitTransfer)
	g.POST("/sessions/:sid/airport-transfer", q.SelectAirportTransfer)
	g.POST("/sessions/:sid/flight", q.SelectFlight)
	g.POST("/sessions/:sid/lounge-pass", q.SelectLoungePass)
	g.POST("/sessions/:sid/adults", q.SetAdults)
	g.POST("/sessions/:sid/currency", q.SetCurrency)

	g.GET("/sessions/:sid/price", q.GetPrice)
	g.POST("/sessions/:sid/booking", b.Submit)
}
