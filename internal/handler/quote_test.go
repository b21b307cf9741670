package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/travel-backoffice/internal/quote"
)

// stubCatalog serves one fixed option per level, enough to walk a session
// through the whole cascade without a database.
type stubCatalog struct{}

func (stubCatalog) Events(context.Context) ([]quote.EventOption, error) {
	return []quote.EventOption{{ID: 1, Name: "Monaco GP"}}, nil
}

func (stubCatalog) PackagesByEvent(context.Context, uint64) ([]quote.PackageOption, error) {
	return []quote.PackageOption{{ID: 10, Name: "Main Straight", Type: "GRANDSTAND"}}, nil
}

func (stubCatalog) HotelsByPackage(context.Context, uint64) ([]quote.HotelOption, error) {
	return []quote.HotelOption{{ID: 20, Name: "Trackside", Stars: 4}}, nil
}

func (stubCatalog) TicketsByPackage(context.Context, uint64) ([]quote.TicketOption, error) {
	return []quote.TicketOption{{ID: 60, Name: "3-day", Price: 30, Remaining: 5}}, nil
}

func (stubCatalog) RoomsByHotel(context.Context, uint64) ([]quote.RoomOption, error) {
	return []quote.RoomOption{{
		ID: 30, Category: "Deluxe", Type: "Double",
		Price: 300, ExtraNightPrice: 100, Nights: 3, Remaining: 3,
		CheckIn: "22/05/2025", CheckOut: "25/05/2025",
	}}, nil
}

func (stubCatalog) CircuitTransfersByHotel(context.Context, uint64) ([]quote.CircuitTransferOption, error) {
	return []quote.CircuitTransferOption{{ID: 40, TransportType: "shared coach", Price: 25}}, nil
}

func (stubCatalog) AirportTransfersByHotel(context.Context, uint64) ([]quote.AirportTransferOption, error) {
	return []quote.AirportTransferOption{{ID: 50, TransportType: "private car", Price: 80, MaxCapacity: 4}}, nil
}

func (stubCatalog) FlightsByEvent(context.Context, uint64) ([]quote.FlightOption, error) {
	return []quote.FlightOption{{ID: 70, Airline: "BA", Class: "economy", Price: 150}}, nil
}

func (stubCatalog) LoungePassesByEvent(context.Context, uint64) ([]quote.LoungePassOption, error) {
	return []quote.LoungePassOption{{ID: 80, Variant: "standard", Price: 40}}, nil
}

func newTestStore(t *testing.T) *quote.Store {
	t.Helper()
	st := quote.NewStore(time.Minute)
	t.Cleanup(st.Close)
	return st
}

// quotedSession builds a session with event, package, hotel, room and ticket
// selected against the stub catalog.
func quotedSession(t *testing.T, st *quote.Store) *quote.Session {
	t.Helper()
	s := st.Create()
	ctx := context.Background()
	cat := stubCatalog{}
	require.NoError(t, s.SelectEvent(ctx, cat, quote.EventOption{ID: 1, Name: "Monaco GP"}))
	require.NoError(t, s.SelectPackage(ctx, cat, 10))
	require.NoError(t, s.SelectHotel(ctx, cat, 20))
	require.NoError(t, s.SelectRoom(30, 1))
	require.NoError(t, s.SelectTicket(60, 2))
	return s
}

func TestGetPriceBreakdown(t *testing.T) {
	st := newTestStore(t)
	s := quotedSession(t, st)
	h := NewQuoteHandler(st, stubCatalog{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/quote/sessions/"+s.ID+"/price", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("sid")
	c.SetParamValues(s.ID)

	require.NoError(t, h.GetPrice(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got priceBreakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	// room 300 + tickets 60 = 360 -> 398.
	assert.Equal(t, float64(360), got.SubtotalGBP)
	assert.Equal(t, float64(398), got.RoundedGBP)
	assert.Equal(t, float64(398), got.Total)
	assert.Equal(t, "GBP", got.Currency)
	assert.Equal(t, "£398", got.Display)
	assert.Len(t, got.Lines, 2)
}

func TestGetPriceCommissionVariant(t *testing.T) {
	st := newTestStore(t)
	s := quotedSession(t, st)
	h := NewQuoteHandler(st, stubCatalog{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/quote/sessions/"+s.ID+"/price?variant=commission", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("sid")
	c.SetParamValues(s.ID)

	require.NoError(t, h.GetPrice(c))

	var got priceBreakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	// 398 x 1.1 = 437.8 rounds again to 498.
	assert.Equal(t, quote.ResellerCommission, got.Commission)
	assert.Equal(t, float64(498), got.Total)
}

func TestGetPriceUnknownSession(t *testing.T) {
	st := newTestStore(t)
	h := NewQuoteHandler(st, stubCatalog{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/quote/sessions/nope/price", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("sid")
	c.SetParamValues("nope")

	require.NoError(t, h.GetPrice(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingValidation(t *testing.T) {
	base := bookingReq{
		BookerName:    "Ada Smith",
		BookerEmail:   "ada@example.com",
		BookerPhone:   "+44 20 1234 5678",
		Address:       "1 High St",
		City:          "London",
		Postcode:      "SW1A 1AA",
		Country:       "UK",
		BookingDate:   "01/06/2025",
		LeadTraveller: "Ada Smith",
		Guests:        []string{"Bob Smith"},
	}

	if msg := base.validate(2); msg != "" {
		t.Fatalf("valid request rejected: %s", msg)
	}

	cases := []struct {
		name   string
		mutate func(*bookingReq)
		want   string
	}{
		{"missing name", func(r *bookingReq) { r.BookerName = "  " }, "booker_name required"},
		{"missing email", func(r *bookingReq) { r.BookerEmail = "" }, "booker_email required"},
		{"bad email", func(r *bookingReq) { r.BookerEmail = "nope" }, "booker_email invalid"},
		{"missing phone", func(r *bookingReq) { r.BookerPhone = "" }, "booker_phone required"},
		{"missing postcode", func(r *bookingReq) { r.Postcode = "" }, "postcode required"},
		{"bad date", func(r *bookingReq) { r.BookingDate = "2025-06-01" }, "booking_date must be DD/MM/YYYY"},
		{"missing lead", func(r *bookingReq) { r.LeadTraveller = "" }, "lead_traveller required"},
		{"too few guests", func(r *bookingReq) { r.Guests = nil }, "expected 1 guest names"},
		{"too many guests", func(r *bookingReq) { r.Guests = []string{"a", "b"} }, "expected 1 guest names"},
		{"blank guest", func(r *bookingReq) { r.Guests = []string{" "} }, "guest names must not be empty"},
	}
	for _, tc := range cases {
		r := base
		r.Guests = append([]string(nil), base.Guests...)
		tc.mutate(&r)
		if msg := r.validate(2); msg != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, msg, tc.want)
		}
	}
}

func TestBookingSummaryContents(t *testing.T) {
	st := newTestStore(t)
	s := quotedSession(t, st)
	req := bookingReq{
		BookerName:    "Ada Smith",
		BookerEmail:   "ada@example.com",
		BookerPhone:   "+44 20 1234 5678",
		Address:       "1 High St",
		City:          "London",
		Postcode:      "SW1A 1AA",
		Country:       "UK",
		LeadTraveller: "Ada Smith",
		Guests:        []string{"Bob Smith"},
		Message:       "window seat please",
	}

	body := summarize(req, s.View(), buildBreakdown(s, 1))
	for _, want := range []string{
		"Ada Smith", "Monaco GP", "Main Straight", "Trackside",
		"Deluxe Double x1", "Ticket: 3-day x2",
		"Total: £398 (GBP)", "window seat please",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("summary missing %q:\n%s", want, body)
		}
	}
}
