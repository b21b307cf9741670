package repository

import (
	"context"

	"github.com/voyago/travel-backoffice/internal/quote"
)

// QuoteCatalog implements quote.Catalog over the catalog repositories.  Every
// method copies rows into option snapshots; the quote session prices against
// the snapshots, not the live rows.
type QuoteCatalog struct {
	events           *EventRepo
	packages         *PackageRepo
	hotels           *HotelRepo
	rooms            *RoomRepo
	tickets          *TicketRepo
	circuitTransfers *CircuitTransferRepo
	airportTransfers *AirportTransferRepo
	flights          *FlightRepo
	loungePasses     *LoungePassRepo
}

func NewQuoteCatalog(
	events *EventRepo,
	packages *PackageRepo,
	hotels *HotelRepo,
	rooms *RoomRepo,
	tickets *TicketRepo,
	circuit *CircuitTransferRepo,
	airport *AirportTransferRepo,
	flights *FlightRepo,
	lounge *LoungePassRepo,
) *QuoteCatalog {
	return &QuoteCatalog{
		events:           events,
		packages:         packages,
		hotels:           hotels,
		rooms:            rooms,
		tickets:          tickets,
		circuitTransfers: circuit,
		airportTransfers: airport,
		flights:          flights,
		loungePasses:     lounge,
	}
}

func (c *QuoteCatalog) Events(ctx context.Context) ([]quote.EventOption, error) {
	rows, err := c.events.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]quote.EventOption, 0, len(rows))
	for _, e := range rows {
		out = append(out, quote.EventOption{ID: e.ID, Name: e.Name})
	}
	return out, nil
}

func (c *QuoteCatalog) PackagesByEvent(ctx context.Context, eventID uint64) ([]quote.PackageOption, error) {
	rows, err := c.packages.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]quote.PackageOption, 0, len(rows))
	for _, p := range rows {
		out = append(out, quote.PackageOption{ID: p.ID, Name: p.Name, Type: p.Type})
	}
	return out, nil
}

func (c *QuoteCatalog) HotelsByPackage(ctx context.Context, packageID uint64) ([]quote.HotelOption, error) {
	rows, err := c.hotels.ListByPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	out := make([]quote.HotelOption, 0, len(rows))
	for _, h := range rows {
		out = append(out, quote.HotelOption{ID: h.ID, Name: h.Name, Stars: h.Stars})
	}
	return out, nil
}

func (c *QuoteCatalog) TicketsByPackage(ctx context.Context, packageID uint64) ([]quote.TicketOption, error) {
	rows, err := c.tickets.ListByPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	out := make([]quote.TicketOption, 0, len(rows))
	for _, t := range rows {
		out = append(out, quote.TicketOption{ID: t.ID, Name: t.Name, Price: t.Price, Remaining: t.Remaining})
	}
	return out, nil
}

func (c *QuoteCatalog) RoomsByHotel(ctx context.Context, hotelID uint64) ([]quote.RoomOption, error) {
	rows, err := c.rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	out := make([]quote.RoomOption, 0, len(rows))
	for _, m := range rows {
		out = append(out, quote.RoomOption{
			ID:              m.ID,
			Category:        m.Category,
			Type:            m.Type,
			Price:           m.Price,
			ExtraNightPrice: m.ExtraNightPrice,
			Nights:          m.Nights,
			Remaining:       m.Remaining,
			CheckIn:         m.CheckInDate,
			CheckOut:        m.CheckOutDate,
		})
	}
	return out, nil
}

func (c *QuoteCatalog) CircuitTransfersByHotel(ctx context.Context, hotelID uint64) ([]quote.CircuitTransferOption, error) {
	rows, err := c.circuitTransfers.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	out := make([]quote.CircuitTransferOption, 0, len(rows))
	for _, t := range rows {
		out = append(out, quote.CircuitTransferOption{ID: t.ID, TransportType: t.TransportType, Price: t.Price})
	}
	return out, nil
}

func (c *QuoteCatalog) AirportTransfersByHotel(ctx context.Context, hotelID uint64) ([]quote.AirportTransferOption, error) {
	rows, err := c.airportTransfers.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	out := make([]quote.AirportTransferOption, 0, len(rows))
	for _, t := range rows {
		out = append(out, quote.AirportTransferOption{ID: t.ID, TransportType: t.TransportType, Price: t.Price, MaxCapacity: t.MaxCapacity})
	}
	return out, nil
}

func (c *QuoteCatalog) FlightsByEvent(ctx context.Context, eventID uint64) ([]quote.FlightOption, error) {
	rows, err := c.flights.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]quote.FlightOption, 0, len(rows))
	for _, f := range rows {
		out = append(out, quote.FlightOption{ID: f.ID, Airline: f.Airline, Class: f.Class, Price: f.Price})
	}
	return out, nil
}

func (c *QuoteCatalog) LoungePassesByEvent(ctx context.Context, eventID uint64) ([]quote.LoungePassOption, error) {
	rows, err := c.loungePasses.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]quote.LoungePassOption, 0, len(rows))
	for _, lp := range rows {
		out = append(out, quote.LoungePassOption{ID: lp.ID, Variant: lp.Variant, Price: lp.Price})
	}
	return out, nil
}
