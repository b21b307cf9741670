package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/quote"
	"github.com/voyago/travel-backoffice/internal/queue"
	"github.com/voyago/travel-backoffice/internal/repository"
)

// BookingHandler turns a completed quote session into a booking request
// event on the broker.  Publishing is a func field so tests can intercept
// the outbound message.
type BookingHandler struct {
	Store         *quote.Store
	SalesContacts *repository.SalesContactRepo
	Publish       func(ctx context.Context, ev queue.BookingRequestedEvent) error
}

type bookingReq struct {
	BookerName    string   `json:"booker_name"`
	BookerEmail   string   `json:"booker_email"`
	BookerPhone   string   `json:"booker_phone"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	Postcode      string   `json:"postcode"`
	Country       string   `json:"country"`
	BookingDate   string   `json:"booking_date"` // DD/MM/YYYY
	LeadTraveller string   `json:"lead_traveller"`
	Guests        []string `json:"guests"`
	Message       string   `json:"message"`
}

// validate applies the submission rules: every booker field non-empty, the
// booking date parseable, a lead traveller, and exactly adults-1 guest
// names.
func (r *bookingReq) validate(adults int) string {
	r.BookerName = strings.TrimSpace(r.BookerName)
	r.BookerEmail = strings.TrimSpace(r.BookerEmail)
	r.BookerPhone = strings.TrimSpace(r.BookerPhone)
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	r.Postcode = strings.TrimSpace(r.Postcode)
	r.Country = strings.TrimSpace(r.Country)
	r.LeadTraveller = strings.TrimSpace(r.LeadTraveller)

	switch "" {
	case r.BookerName:
		return "booker_name required"
	case r.BookerEmail:
		return "booker_email required"
	case r.BookerPhone:
		return "booker_phone required"
	case r.Address:
		return "address required"
	case r.City:
		return "city required"
	case r.Postcode:
		return "postcode required"
	case r.Country:
		return "country required"
	case r.LeadTraveller:
		return "lead_traveller required"
	}
	if !strings.Contains(r.BookerEmail, "@") {
		return "booker_email invalid"
	}
	if _, err := quote.ParseDMY(strings.TrimSpace(r.BookingDate)); err != nil {
		return "booking_date must be DD/MM/YYYY"
	}
	if len(r.Guests) != adults-1 {
		return fmt.Sprintf("expected %d guest names", adults-1)
	}
	for _, g := range r.Guests {
		if strings.TrimSpace(g) == "" {
			return "guest names must not be empty"
		}
	}
	return ""
}

// Submit handles POST /v1/quote/sessions/:sid/booking.
func (h *BookingHandler) Submit(c echo.Context) error {
	s, err := h.Store.Get(c.Param("sid"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "quote session not found"})
	}

	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	v := s.View()
	if v.Event == nil || v.Package == nil || v.Hotel == nil || v.Room == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quote incomplete: event, package, hotel and room must be selected"})
	}
	if msg := req.validate(v.Adults); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	breakdown := buildBreakdown(s, 1)

	ctx, cancel := dbCtx(c)
	defer cancel()
	contact, err := h.SalesContacts.Resolve(ctx, req.Country)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no sales contact available"})
	}

	guests := make([]string, 0, len(req.Guests))
	for _, g := range req.Guests {
		guests = append(guests, strings.TrimSpace(g))
	}

	ev := queue.BookingRequestedEvent{
		RequestID:         uuid.NewString(),
		SessionID:         v.ID,
		BookerName:        req.BookerName,
		BookerEmail:       req.BookerEmail,
		BookerPhone:       req.BookerPhone,
		LeadTraveller:     req.LeadTraveller,
		GuestTravellers:   guests,
		SalesContactName:  contact.Name,
		SalesContactEmail: contact.Email,
		EventName:         v.Event.Name,
		PackageName:       v.Package.Name,
		HotelName:         v.Hotel.Name,
		Adults:            v.Adults,
		Currency:          breakdown.Currency,
		TotalDisplay:      breakdown.Display,
		Message:           summarize(req, v, breakdown),
		RequestedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.Publish(c.Request().Context(), ev); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "booking request could not be queued"})
	}

	return c.JSON(http.StatusAccepted, echo.Map{
		"request_id": ev.RequestID,
		"selection":  v,
		"breakdown":  breakdown,
		"contact":    echo.Map{"name": contact.Name, "email": contact.Email},
	})
}

// summarize renders the plain-text body the sales contact receives.
func summarize(req bookingReq, v quote.SessionView, b priceBreakdown) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking request from %s <%s> (%s)\n", req.BookerName, req.BookerEmail, req.BookerPhone)
	fmt.Fprintf(&sb, "%s, %s %s, %s\n\n", req.Address, req.City, req.Postcode, req.Country)
	fmt.Fprintf(&sb, "Event: %s\nPackage: %s\nHotel: %s\n", v.Event.Name, v.Package.Name, v.Hotel.Name)
	fmt.Fprintf(&sb, "Room: %s %s x%d, %s - %s\n", v.Room.Category, v.Room.Type, v.RoomQuantity, v.DateFrom, v.DateTo)
	if v.Ticket != nil {
		fmt.Fprintf(&sb, "Ticket: %s x%d\n", v.Ticket.Name, v.TicketQuantity)
	}
	if v.CircuitTransfer != nil {
		fmt.Fprintf(&sb, "Circuit transfer: %s x%d\n", v.CircuitTransfer.TransportType, v.CircuitQuantity)
	}
	if v.AirportTransfer != nil {
		fmt.Fprintf(&sb, "Airport transfer: %s\n", v.AirportTransfer.TransportType)
	}
	if v.Flight != nil {
		fmt.Fprintf(&sb, "Flight: %s %s\n", v.Flight.Airline, v.Flight.Class)
	}
	if v.LoungePass != nil {
		fmt.Fprintf(&sb, "Lounge pass: %s x%d\n", v.LoungePass.Variant, v.LoungeQuantity)
	}
	fmt.Fprintf(&sb, "\nAdults: %d\n", v.Adults)
	fmt.Fprintf(&sb, "Lead traveller: %s\n", req.LeadTraveller)
	if len(req.Guests) > 0 {
		fmt.Fprintf(&sb, "Guests: %s\n", strings.Join(req.Guests, ", "))
	}
	for _, l := range b.Lines {
		fmt.Fprintf(&sb, "%s: %.2f GBP\n", l.Item, l.AmountGBP)
	}
	fmt.Fprintf(&sb, "Total: %s (%s)\n", b.Display, b.Currency)
	if m := strings.TrimSpace(req.Message); m != "" {
		fmt.Fprintf(&sb, "\n%s\n", m)
	}
	return sb.String()
}
