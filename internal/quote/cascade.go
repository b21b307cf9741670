package quote

import (
	"context"
	"sync"
)

// Option snapshots are copies of catalog records taken when a dropdown level
// is populated.  The session prices against these snapshots, never against
// live rows, so a quote stays internally consistent while staff edit the
// catalog underneath it.

// EventOption is a selectable event.
type EventOption struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// PackageOption is a selectable package under an event.  Type is either
// GRANDSTAND or VIP and determines the tier vocabulary.
type PackageOption struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// HotelOption is a selectable hotel under a package.
type HotelOption struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Stars int    `json:"stars"`
}

// RoomOption is a selectable room.  Price covers the originally quoted stay
// of Nights nights between CheckIn and CheckOut (DD/MM/YYYY); longer stays
// are billed per extra night.
type RoomOption struct {
	ID              uint64  `json:"id"`
	Category        string  `json:"category"`
	Type            string  `json:"type"`
	Price           float64 `json:"price"`
	ExtraNightPrice float64 `json:"extra_night_price"`
	Nights          int     `json:"nights"`
	Remaining       int     `json:"remaining"`
	CheckIn         string  `json:"check_in_date"`
	CheckOut        string  `json:"check_out_date"`
}

// TicketOption is a selectable ticket under a package.
type TicketOption struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Remaining int     `json:"remaining"`
}

// CircuitTransferOption is a selectable circuit transfer under a hotel.
type CircuitTransferOption struct {
	ID            uint64  `json:"id"`
	TransportType string  `json:"transport_type"`
	Price         float64 `json:"price"`
}

// AirportTransferOption is a selectable airport transfer under a hotel.
type AirportTransferOption struct {
	ID            uint64  `json:"id"`
	TransportType string  `json:"transport_type"`
	Price         float64 `json:"price"`
	MaxCapacity   int     `json:"max_capacity"`
}

// FlightOption is a selectable flight under an event.
type FlightOption struct {
	ID      uint64  `json:"id"`
	Airline string  `json:"airline"`
	Class   string  `json:"class"`
	Price   float64 `json:"price"`
}

// LoungePassOption is a selectable lounge pass under an event.
type LoungePassOption struct {
	ID      uint64  `json:"id"`
	Variant string  `json:"variant"`
	Price   float64 `json:"price"`
}

// Catalog supplies the option lists for each level of the dependency chain.
// The repository layer implements it against MySQL; tests implement it with
// func-field fakes.
type Catalog interface {
	Events(ctx context.Context) ([]EventOption, error)
	PackagesByEvent(ctx context.Context, eventID uint64) ([]PackageOption, error)
	HotelsByPackage(ctx context.Context, packageID uint64) ([]HotelOption, error)
	TicketsByPackage(ctx context.Context, packageID uint64) ([]TicketOption, error)
	RoomsByHotel(ctx context.Context, hotelID uint64) ([]RoomOption, error)
	CircuitTransfersByHotel(ctx context.Context, hotelID uint64) ([]CircuitTransferOption, error)
	AirportTransfersByHotel(ctx context.Context, hotelID uint64) ([]AirportTransferOption, error)
	FlightsByEvent(ctx context.Context, eventID uint64) ([]FlightOption, error)
	LoungePassesByEvent(ctx context.Context, eventID uint64) ([]LoungePassOption, error)
}

// gather runs sibling catalog loads in parallel and keeps the first error.
// Sibling lists are applied jointly by the caller: if any load fails none of
// the results are used, so a level never renders half populated.
type gather struct {
	wg  sync.WaitGroup
	mu  sync.Mutex
	err error
}

func (g *gather) Go(fn func() error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := fn(); err != nil {
			g.mu.Lock()
			if g.err == nil {
				g.err = err
			}
			g.mu.Unlock()
		}
	}()
}

func (g *gather) Wait() error {
	g.wg.Wait()
	return g.err
}
