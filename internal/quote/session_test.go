package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog implements Catalog with overridable func fields; unset fields
// return empty lists.
type fakeCatalog struct {
	events   func(ctx context.Context) ([]EventOption, error)
	packages func(ctx context.Context, eventID uint64) ([]PackageOption, error)
	hotels   func(ctx context.Context, packageID uint64) ([]HotelOption, error)
	tickets  func(ctx context.Context, packageID uint64) ([]TicketOption, error)
	rooms    func(ctx context.Context, hotelID uint64) ([]RoomOption, error)
	circuits func(ctx context.Context, hotelID uint64) ([]CircuitTransferOption, error)
	airports func(ctx context.Context, hotelID uint64) ([]AirportTransferOption, error)
	flights  func(ctx context.Context, eventID uint64) ([]FlightOption, error)
	lounges  func(ctx context.Context, eventID uint64) ([]LoungePassOption, error)
}

func (f *fakeCatalog) Events(ctx context.Context) ([]EventOption, error) {
	if f.events != nil {
		return f.events(ctx)
	}
	return nil, nil
}

func (f *fakeCatalog) PackagesByEvent(ctx context.Context, id uint64) ([]PackageOption, error) {
	if f.packages != nil {
		return f.packages(ctx, id)
	}
	return nil, nil
}

func (f *fakeCatalog) HotelsByPackage(ctx context.Context, id uint64) ([]HotelOption, error) {
	if f.hotels != nil {
		return f.hotels(ctx, id)
	}
	return nil, nil
}

func (f *fakeCatalog) TicketsByPackage(ctx context.Context, id uint64) ([]TicketOption, error) {
	if f.tickets != nil {
		return f.tickets(ctx, id)
	}
	return nil, nil
}

func (f *fakeCatalog) RoomsByHotel(ctx context.Context, id uint64) ([]RoomOption, error) {
	if f.rooms != nil {
		return f.rooms(ctx, id)
	}
	return nil, nil
}

func (f *fakeCatalog) CircuitTransfersByHotel(ctx context.Context, id uint64) ([]CircuitTransferOption, error) {
	if f.circuits != nil {
		return f.circuits(ctx, id)
	}
	return nil, nil
}

func (f *fakeCatalog) AirportTransfersByHotel(ctx context.Context, id uint64) ([]AirportTransferOption, error) {
	if f.airports != nil {
		return f.airports(ctx, id)
	}
	return nil, nil
}

func (f *fakeCatalog) FlightsByEvent(ctx context.Context, id uint64) ([]FlightOption, error) {
	if f.flights != nil {
		return f.flights(ctx, id)
	}
	return nil, nil
}

func (f *fakeCatalog) LoungePassesByEvent(ctx context.Context, id uint64) ([]LoungePassOption, error) {
	if f.lounges != nil {
		return f.lounges(ctx, id)
	}
	return nil, nil
}

// populatedSession walks a session down to a selected hotel with one room,
// one ticket and both transfer lists available.
func populatedSession(t *testing.T) (*Session, *fakeCatalog) {
	t.Helper()
	cat := &fakeCatalog{
		packages: func(context.Context, uint64) ([]PackageOption, error) {
			return []PackageOption{{ID: 10, Name: "Main Straight", Type: "GRANDSTAND"}}, nil
		},
		flights: func(context.Context, uint64) ([]FlightOption, error) {
			return []FlightOption{{ID: 70, Airline: "BA", Class: "economy", Price: 150}}, nil
		},
		lounges: func(context.Context, uint64) ([]LoungePassOption, error) {
			return []LoungePassOption{{ID: 80, Variant: "standard", Price: 40}}, nil
		},
		hotels: func(context.Context, uint64) ([]HotelOption, error) {
			return []HotelOption{{ID: 20, Name: "Trackside", Stars: 4}}, nil
		},
		tickets: func(context.Context, uint64) ([]TicketOption, error) {
			return []TicketOption{{ID: 60, Name: "3-day", Price: 30, Remaining: 5}}, nil
		},
		rooms: func(context.Context, uint64) ([]RoomOption, error) {
			return []RoomOption{{
				ID: 30, Category: "Deluxe", Type: "Double",
				Price: 500, ExtraNightPrice: 100, Nights: 4, Remaining: 3,
				CheckIn: "22/05/2025", CheckOut: "26/05/2025",
			}}, nil
		},
		circuits: func(context.Context, uint64) ([]CircuitTransferOption, error) {
			return []CircuitTransferOption{{ID: 40, TransportType: "shared coach", Price: 25}}, nil
		},
		airports: func(context.Context, uint64) ([]AirportTransferOption, error) {
			return []AirportTransferOption{{ID: 50, TransportType: "private car", Price: 80, MaxCapacity: 4}}, nil
		},
	}

	s := NewSession("test")
	ctx := context.Background()
	require.NoError(t, s.SelectEvent(ctx, cat, EventOption{ID: 1, Name: "Monaco GP"}))
	require.NoError(t, s.SelectPackage(ctx, cat, 10))
	require.NoError(t, s.SelectHotel(ctx, cat, 20))
	return s, cat
}

func TestSelectEventLoadsDependents(t *testing.T) {
	s, _ := populatedSession(t)
	v := s.View()
	require.NotNil(t, v.Event)
	assert.Equal(t, "Monaco GP", v.Event.Name)
	assert.Len(t, v.FlightOptions, 1)
	assert.Len(t, v.LoungeOptions, 1)
	assert.Len(t, v.HotelOptions, 1)
	assert.Len(t, v.TicketOptions, 1)
	assert.Len(t, v.RoomOptions, 1)
	assert.Len(t, v.CircuitOptions, 1)
	assert.Len(t, v.AirportOptions, 1)
}

func TestReselectEventClearsDownstream(t *testing.T) {
	s, cat := populatedSession(t)
	require.NoError(t, s.SelectRoom(30, 1))
	require.NoError(t, s.SelectTicket(60, 2))
	require.NoError(t, s.SelectFlight(70))

	require.NoError(t, s.SelectEvent(context.Background(), cat, EventOption{ID: 2, Name: "Silverstone"}))

	v := s.View()
	assert.Equal(t, "Silverstone", v.Event.Name)
	assert.Nil(t, v.Package)
	assert.Nil(t, v.Hotel)
	assert.Nil(t, v.Room)
	assert.Nil(t, v.Ticket)
	assert.Nil(t, v.Flight)
	assert.Empty(t, v.DateFrom)
	assert.Zero(t, v.RoomQuantity)
	assert.Zero(t, v.TicketQuantity)
}

func TestSelectUnknownOption(t *testing.T) {
	s, cat := populatedSession(t)
	assert.ErrorIs(t, s.SelectPackage(context.Background(), cat, 999), ErrUnknownOption)
	assert.ErrorIs(t, s.SelectRoom(999, 1), ErrUnknownOption)
	assert.ErrorIs(t, s.SelectTicket(999, 1), ErrUnknownOption)
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	s, _ := populatedSession(t)

	// A load that started before the level was re-selected must not apply.
	gen := s.begin(levelPkg)
	s.begin(levelPkg)
	err := s.apply(levelPkg, gen, func() { t.Fatal("stale apply ran") })
	assert.ErrorIs(t, err, ErrStaleSelection)
}

func TestFailedLoadAppliesNothing(t *testing.T) {
	s, cat := populatedSession(t)
	boom := errors.New("catalog down")
	cat.hotels = func(context.Context, uint64) ([]HotelOption, error) { return nil, boom }

	err := s.SelectPackage(context.Background(), cat, 10)
	require.ErrorIs(t, err, boom)

	// The tickets load may have succeeded, but the level applies jointly.
	v := s.View()
	assert.Nil(t, v.Package)
	assert.Empty(t, v.TicketOptions)
}

func TestSelectRoomPrefillsDates(t *testing.T) {
	s, _ := populatedSession(t)
	require.NoError(t, s.SelectRoom(30, 2))

	v := s.View()
	assert.Equal(t, "22/05/2025", v.DateFrom)
	assert.Equal(t, "26/05/2025", v.DateTo)
	assert.Equal(t, 2, v.RoomQuantity)
}

func TestSetDateRange(t *testing.T) {
	s, _ := populatedSession(t)
	assert.ErrorIs(t, s.SetDateRange(mustDMY(t, "22/05/2025"), mustDMY(t, "26/05/2025")), ErrNoRoomSelected)

	require.NoError(t, s.SelectRoom(30, 1))

	// Shorter than the quoted four nights.
	err := s.SetDateRange(mustDMY(t, "23/05/2025"), mustDMY(t, "25/05/2025"))
	assert.ErrorIs(t, err, ErrDateRangeTooShort)

	// The room's own quoted range is always acceptable.
	require.NoError(t, s.SetDateRange(mustDMY(t, "22/05/2025"), mustDMY(t, "26/05/2025")))

	// Extending the stay adds extra nights to the room cost.
	require.NoError(t, s.SetDateRange(mustDMY(t, "22/05/2025"), mustDMY(t, "28/05/2025")))
	p := s.Pricing()
	require.NotNil(t, p.Room)
	assert.Equal(t, 6, p.Room.Nights)
	assert.Equal(t, 4, p.Room.OriginalNights)
	assert.Equal(t, float64(700), p.Room.RoomCost())
}

func TestQuantityClamping(t *testing.T) {
	s, _ := populatedSession(t)
	require.NoError(t, s.SelectRoom(30, 99))
	require.NoError(t, s.SelectTicket(60, 0))

	v := s.View()
	assert.Equal(t, 3, v.RoomQuantity, "clamped to remaining inventory")
	assert.Equal(t, 1, v.TicketQuantity, "raised to minimum of one")

	assert.Equal(t, fallbackQuantityCeiling, ClampQuantity(1000, 0))
}

func TestSessionQuote(t *testing.T) {
	s, _ := populatedSession(t)
	require.NoError(t, s.SelectRoom(30, 1))
	require.NoError(t, s.SelectTicket(60, 2))
	require.NoError(t, s.SelectCircuitTransfer(40, 2))
	require.NoError(t, s.SelectAirportTransfer(50))
	s.SetAdults(5)

	// room 500 + tickets 60 + circuit 50 + airport 2x80 = 770 -> 798.
	amount, rendered := s.Quote(1)
	assert.Equal(t, float64(798), amount)
	assert.Equal(t, "£798", rendered)

	s.SetCurrency(CurrencyUSD, 1.3)
	amount, rendered = s.Quote(1)
	assert.InDelta(t, 1037.4, amount, 1e-9)
	assert.Equal(t, "$1037", rendered)

	// GBP pins the rate back to 1 regardless of what is supplied.
	s.SetCurrency(CurrencyGBP, 1.3)
	amount, _ = s.Quote(1)
	assert.Equal(t, float64(798), amount)
}

func mustDMY(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDMY(s)
	require.NoError(t, err)
	return d
}
