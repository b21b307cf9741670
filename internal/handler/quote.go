package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/fx"
	"github.com/voyago/travel-backoffice/internal/quote"
)

// QuoteHandler drives the interactive quote builder: one transient session
// per console tab, walked down the dependency chain one selection at a time.
type QuoteHandler struct {
	Store   *quote.Store
	Catalog quote.Catalog
	FX      *fx.Resolver
}

func NewQuoteHandler(st *quote.Store, cat quote.Catalog, resolver *fx.Resolver) *QuoteHandler {
	return &QuoteHandler{Store: st, Catalog: cat, FX: resolver}
}

// quoteErr maps session errors onto HTTP responses.
func quoteErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, quote.ErrUnknownOption):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "option not in current list"})
	case errors.Is(err, quote.ErrStaleSelection):
		return c.JSON(http.StatusConflict, echo.Map{"error": "selection superseded"})
	case errors.Is(err, quote.ErrNoRoomSelected):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no room selected"})
	case errors.Is(err, quote.ErrDateRangeTooShort):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date range below room minimum nights"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "catalog load failed"})
	}
}

// session loads the session for the :sid path parameter, answering 404
// itself when it is unknown or expired.
func (h *QuoteHandler) session(c echo.Context) (*quote.Session, bool) {
	s, err := h.Store.Get(c.Param("sid"))
	if err != nil {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "quote session not found"})
		return nil, false
	}
	return s, true
}

// CreateSession handles POST /v1/quote/sessions.  The response carries the
// session id plus the event list, the root of the selection chain.
func (h *QuoteHandler) CreateSession(c echo.Context) error {
	events, err := h.Catalog.Events(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "catalog load failed"})
	}
	s := h.Store.Create()
	return c.JSON(http.StatusCreated, echo.Map{
		"session": s.View(),
		"events":  events,
	})
}

// GetSession handles GET /v1/quote/sessions/:sid.
func (h *QuoteHandler) GetSession(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, s.View())
}

// DeleteSession handles DELETE /v1/quote/sessions/:sid.
func (h *QuoteHandler) DeleteSession(c echo.Context) error {
	h.Store.Delete(c.Param("sid"))
	return c.NoContent(http.StatusNoContent)
}

// ListEvents handles GET /v1/quote/events, the root option list.
func (h *QuoteHandler) ListEvents(c echo.Context) error {
	events, err := h.Catalog.Events(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "catalog load failed"})
	}
	if events == nil {
		events = []quote.EventOption{}
	}
	return c.JSON(http.StatusOK, events)
}

type selectReq struct {
	ID       uint64 `json:"id"`
	Quantity int    `json:"quantity"`
}

// SelectEvent handles POST /v1/quote/sessions/:sid/event.
func (h *QuoteHandler) SelectEvent(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req selectReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id required"})
	}

	ctx := c.Request().Context()
	events, err := h.Catalog.Events(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "catalog load failed"})
	}
	var pick *quote.EventOption
	for i := range events {
		if events[i].ID == req.ID {
			pick = &events[i]
			break
		}
	}
	if pick == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "option not in current list"})
	}

	if err := s.SelectEvent(ctx, h.Catalog, *pick); err != nil {
		return quoteErr(c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// SelectPackage handles POST /v1/quote/sessions/:sid/package.
func (h *QuoteHandler) SelectPackage(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req selectReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id required"})
	}
	if err := s.SelectPackage(c.Request().Context(), h.Catalog, req.ID); err != nil {
		return quoteErr(c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// SelectHotel handles POST /v1/quote/sessions/:sid/hotel.
func (h *QuoteHandler) SelectHotel(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req selectReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id required"})
	}
	if err := s.SelectHotel(c.Request().Context(), h.Catalog, req.ID); err != nil {
		return quoteErr(c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// SelectRoom handles POST /v1/quote/sessions/:sid/room.
func (h *QuoteHandler) SelectRoom(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req selectReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id required"})
	}
	if err := s.SelectRoom(req.ID, req.Quantity); err != nil {
		return quoteErr(c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// SetDateRange handles POST /v1/quote/sessions/:sid/dates.
func (h *QuoteHandler) SetDateRange(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req struct {
		From string `json:"from"` // DD/MM/YYYY
		To   string `json:"to"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	from, err := quote.ParseDMY(strings.TrimSpace(req.From))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be DD/MM/YYYY"})
	}
	to, err := quote.ParseDMY(strings.TrimSpace(req.To))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be DD/MM/YYYY"})
	}
	if err := s.SetDateRange(from, to); err != nil {
		return quoteErr(c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// SelectTicket handles POST /v1/quote/sessions/:sid/ticket.
func (h *QuoteHandler) SelectTicket(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req selectReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id required"})
	}
	if err := s.SelectTicket(req.ID, req.Quantity); err != nil {
		return quoteErr(c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// SelectCircuitTransfer handles POST /v1/quote/sessions/:sid/circuit-transfer.
func (h *QuoteHandler) SelectCircuitTransfer(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req selectReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id required"})
	}
	if err := s.SelectCircuitTransfer(req.ID, req.Quantity); err != nil {
		return quoteErr(c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// SelectAirportTransfer handles POST /v1/quote/sessions/:sid/airport-transfer.
func (h *QuoteHandler) SelectAirportTransfer(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req selectReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id required"})
	}
	if err := s.SelectAirportTransfer(req.ID); err != nil {
		return quoteErr(c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// SelectFlight handles POST /v1/quote/sessions/:sid/flight.
func (h *QuoteHandler) SelectFlight(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req selectReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id required"})
	}
	if err := s.SelectFlight(req.ID); err != nil {
		return quoteErr(c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// SelectLoungePass handles POST /v1/quote/sessions/:sid/lounge-pass.
func (h *QuoteHandler) SelectLoungePass(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req selectReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id required"})
	}
	if err := s.SelectLoungePass(req.ID, req.Quantity); err != nil {
		return quoteErr(c, err)
	}
	return c.JSON(http.StatusOK, s.View())
}

// SetAdults handles POST /v1/quote/sessions/:sid/adults.
func (h *QuoteHandler) SetAdults(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req struct {
		Adults int `json:"adults"`
	}
	if err := c.Bind(&req); err != nil || req.Adults < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "adults must be at least 1"})
	}
	s.SetAdults(req.Adults)
	return c.JSON(http.StatusOK, s.View())
}

// SetCurrency handles POST /v1/quote/sessions/:sid/currency.  The conversion
// rate is resolved immediately; a degraded (last known good) rate is applied
// with a warning in the response.
func (h *QuoteHandler) SetCurrency(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req struct {
		Currency string `json:"currency"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	cur, err := quote.ParseCurrency(req.Currency)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown currency"})
	}

	rate, err := h.FX.Resolve(c.Request().Context(), cur)
	if err != nil && rate == 0 {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "exchange rate unavailable"})
	}
	s.SetCurrency(cur, rate)

	resp := echo.Map{"session": s.View()}
	if err != nil {
		resp["warning"] = "using last known exchange rate"
	}
	return c.JSON(http.StatusOK, resp)
}

// priceBreakdown is the itemised response of GET .../price.
type priceBreakdown struct {
	Lines       []priceLine `json:"lines"`
	SubtotalGBP float64     `json:"subtotal_gbp"`
	RoundedGBP  float64     `json:"rounded_gbp"`
	Commission  float64     `json:"commission"`
	Currency    string      `json:"currency"`
	Rate        float64     `json:"rate"`
	Total       float64     `json:"total"`
	Display     string      `json:"display"`
}

type priceLine struct {
	Item      string  `json:"item"`
	AmountGBP float64 `json:"amount_gbp"`
}

// GetPrice handles GET /v1/quote/sessions/:sid/price.  ?variant=commission
// returns the reseller price with the commission multiplier applied.
func (h *QuoteHandler) GetPrice(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	commission := 1.0
	if strings.EqualFold(c.QueryParam("variant"), "commission") {
		commission = quote.ResellerCommission
	}
	return c.JSON(http.StatusOK, buildBreakdown(s, commission))
}

// buildBreakdown itemises the current selection and computes both the GBP
// rounding steps and the converted display amount.
func buildBreakdown(s *quote.Session, commission float64) priceBreakdown {
	p := s.Pricing()
	v := s.View()

	var lines []priceLine
	if p.Room != nil {
		lines = append(lines, priceLine{Item: "room", AmountGBP: p.Room.RoomCost()})
	}
	if p.Ticket != nil {
		lines = append(lines, priceLine{Item: "ticket", AmountGBP: p.Ticket.Price * float64(p.Ticket.Quantity)})
	}
	if p.CircuitTransfer != nil {
		lines = append(lines, priceLine{Item: "circuit_transfer", AmountGBP: p.CircuitTransfer.Price * float64(p.CircuitTransfer.Quantity)})
	}
	if p.AirportTransfer != nil {
		lines = append(lines, priceLine{Item: "airport_transfer", AmountGBP: p.AirportTransfer.Price * float64(p.AirportTransfer.TransferUnits(p.Adults))})
	}
	if p.Flight != nil {
		lines = append(lines, priceLine{Item: "flight", AmountGBP: p.Flight.Price * float64(p.Adults)})
	}
	if p.LoungePass != nil {
		lines = append(lines, priceLine{Item: "lounge_pass", AmountGBP: p.LoungePass.Price * float64(p.LoungePass.Quantity)})
	}

	sub := p.SubtotalGBP()
	total := p.Total(v.Rate, commission)
	return priceBreakdown{
		Lines:       lines,
		SubtotalGBP: sub,
		RoundedGBP:  quote.RoundTotal(sub),
		Commission:  commission,
		Currency:    string(v.Currency),
		Rate:        v.Rate,
		Total:       total,
		Display:     quote.Display(total, v.Currency),
	}
}
