package quote

import (
	"context"
	"errors"
	"sync"
	"time"
)

// fallbackQuantityCeiling bounds quantity selectors when a record's
// remaining inventory is missing or unusable.
const fallbackQuantityCeiling = 100

// Fetch levels of the dependency chain.  Each level owns a monotonic
// generation counter: a load started for an older generation is discarded on
// apply, so a slow stale response can never overwrite the options of a newer
// selection.
type level int

const (
	levelEvent level = iota // loads triggered by selecting an event
	levelPkg                // loads triggered by selecting a package
	levelHotel              // loads triggered by selecting a hotel
	levelCount
)

var (
	// ErrStaleSelection means a newer selection superseded the load that
	// produced this result; the result was dropped.
	ErrStaleSelection = errors.New("selection superseded")
	// ErrUnknownOption means the requested id is not among the options
	// currently offered at that level.
	ErrUnknownOption = errors.New("option not in current list")
	// ErrNoRoomSelected is returned by date-range operations before a room
	// has been chosen.
	ErrNoRoomSelected = errors.New("no room selected")
	// ErrDateRangeTooShort rejects a range covering fewer nights than the
	// room's quoted minimum.
	ErrDateRangeTooShort = errors.New("date range below room minimum nights")
)

// Session is one staff member's in-progress quote.  It lives only in memory
// for the lifetime of the interaction and is never persisted.  All methods
// are safe for concurrent use; option loads run outside the lock so the
// session stays responsive while the catalog is queried.
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time
	touchedAt time.Time

	gens [levelCount]uint64

	Adults   int
	Currency Currency
	Rate     float64

	Event           *EventOption
	Package         *PackageOption
	Hotel           *HotelOption
	Room            *RoomOption
	Ticket          *TicketOption
	CircuitTransfer *CircuitTransferOption
	AirportTransfer *AirportTransferOption
	Flight          *FlightOption
	LoungePass      *LoungePassOption

	RoomQuantity    int
	TicketQuantity  int
	CircuitQuantity int
	LoungeQuantity  int

	DateFrom       time.Time
	DateTo         time.Time
	origFrom       time.Time
	origTo         time.Time
	OriginalNights int

	PackageOptions         []PackageOption
	HotelOptions           []HotelOption
	RoomOptions            []RoomOption
	TicketOptions          []TicketOption
	CircuitOptions         []CircuitTransferOption
	AirportOptions         []AirportTransferOption
	FlightOptions          []FlightOption
	LoungeOptions          []LoungePassOption
}

// NewSession returns an empty session with one adult and GBP pricing.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		CreatedAt: now,
		touchedAt: now,
		Adults:    1,
		Currency:  CurrencyGBP,
		Rate:      1,
	}
}

// ClampQuantity bounds a requested quantity to [1, remaining].  When the
// remaining count is unusable the fallback ceiling applies instead.
func ClampQuantity(q, remaining int) int {
	max := remaining
	if max <= 0 {
		max = fallbackQuantityCeiling
	}
	if q < 1 {
		return 1
	}
	if q > max {
		return max
	}
	return q
}

// begin clears every selection at or below the given level, bumps its
// generation and returns the new value.  Option lists for the cleared levels
// are dropped as well so no stale cross references survive a re-selection.
func (s *Session) begin(lv level) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now().UTC()
	switch lv {
	case levelEvent:
		s.Package, s.PackageOptions = nil, nil
		s.Flight, s.FlightOptions = nil, nil
		s.LoungePass, s.LoungeOptions = nil, nil
		s.LoungeQuantity = 0
		fallthrough
	case levelPkg:
		s.Hotel, s.HotelOptions = nil, nil
		s.Ticket, s.TicketOptions = nil, nil
		s.TicketQuantity = 0
		fallthrough
	case levelHotel:
		s.Room, s.RoomOptions = nil, nil
		s.CircuitTransfer, s.CircuitOptions = nil, nil
		s.AirportTransfer, s.AirportOptions = nil, nil
		s.RoomQuantity, s.CircuitQuantity = 0, 0
		s.DateFrom, s.DateTo = time.Time{}, time.Time{}
		s.origFrom, s.origTo = time.Time{}, time.Time{}
		s.OriginalNights = 0
	}
	for l := lv; l < levelCount; l++ {
		s.gens[l]++
	}
	return s.gens[lv]
}

// apply commits the result of a load if its generation is still current.
func (s *Session) apply(lv level, gen uint64, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[lv] != gen {
		return ErrStaleSelection
	}
	fn()
	return nil
}

// SelectEvent records the event choice and loads its dependent option lists
// (packages, flights, lounge passes) in parallel.  On any load failure
// nothing is applied and all three lists stay empty.
func (s *Session) SelectEvent(ctx context.Context, cat Catalog, ev EventOption) error {
	gen := s.begin(levelEvent)
	var (
		pkgs    []PackageOption
		flights []FlightOption
		lounges []LoungePassOption
	)
	var g gather
	g.Go(func() (err error) { pkgs, err = cat.PackagesByEvent(ctx, ev.ID); return })
	g.Go(func() (err error) { flights, err = cat.FlightsByEvent(ctx, ev.ID); return })
	g.Go(func() (err error) { lounges, err = cat.LoungePassesByEvent(ctx, ev.ID); return })
	if err := g.Wait(); err != nil {
		return err
	}
	return s.apply(levelEvent, gen, func() {
		s.Event = &ev
		s.PackageOptions = pkgs
		s.FlightOptions = flights
		s.LoungeOptions = lounges
	})
}

// SelectPackage picks a package from the current options and loads hotels
// and tickets jointly.
func (s *Session) SelectPackage(ctx context.Context, cat Catalog, id uint64) error {
	s.mu.Lock()
	var pick *PackageOption
	for i := range s.PackageOptions {
		if s.PackageOptions[i].ID == id {
			p := s.PackageOptions[i]
			pick = &p
			break
		}
	}
	s.mu.Unlock()
	if pick == nil {
		return ErrUnknownOption
	}
	gen := s.begin(levelPkg)
	var (
		hotels  []HotelOption
		tickets []TicketOption
	)
	var g gather
	g.Go(func() (err error) { hotels, err = cat.HotelsByPackage(ctx, pick.ID); return })
	g.Go(func() (err error) { tickets, err = cat.TicketsByPackage(ctx, pick.ID); return })
	if err := g.Wait(); err != nil {
		return err
	}
	return s.apply(levelPkg, gen, func() {
		s.Package = pick
		s.HotelOptions = hotels
		s.TicketOptions = tickets
	})
}

// SelectHotel picks a hotel from the current options and loads rooms plus
// both transfer lists jointly.
func (s *Session) SelectHotel(ctx context.Context, cat Catalog, id uint64) error {
	s.mu.Lock()
	var pick *HotelOption
	for i := range s.HotelOptions {
		if s.HotelOptions[i].ID == id {
			h := s.HotelOptions[i]
			pick = &h
			break
		}
	}
	s.mu.Unlock()
	if pick == nil {
		return ErrUnknownOption
	}
	gen := s.begin(levelHotel)
	var (
		rooms    []RoomOption
		circuits []CircuitTransferOption
		airports []AirportTransferOption
	)
	var g gather
	g.Go(func() (err error) { rooms, err = cat.RoomsByHotel(ctx, pick.ID); return })
	g.Go(func() (err error) { circuits, err = cat.CircuitTransfersByHotel(ctx, pick.ID); return })
	g.Go(func() (err error) { airports, err = cat.AirportTransfersByHotel(ctx, pick.ID); return })
	if err := g.Wait(); err != nil {
		return err
	}
	return s.apply(levelHotel, gen, func() {
		s.Hotel = pick
		s.RoomOptions = rooms
		s.CircuitOptions = circuits
		s.AirportOptions = airports
	})
}

// SelectRoom picks a room, pre-fills the date range from the room's quoted
// stay and records the original night count used as the extra-night
// baseline.
func (s *Session) SelectRoom(id uint64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.RoomOptions {
		if s.RoomOptions[i].ID != id {
			continue
		}
		r := s.RoomOptions[i]
		from, err := ParseDMY(r.CheckIn)
		if err != nil {
			return err
		}
		to, err := ParseDMY(r.CheckOut)
		if err != nil {
			return err
		}
		s.Room = &r
		s.RoomQuantity = ClampQuantity(quantity, r.Remaining)
		s.DateFrom, s.DateTo = from, to
		s.origFrom, s.origTo = from, to
		s.OriginalNights = r.Nights
		s.touchedAt = time.Now().UTC()
		return nil
	}
	return ErrUnknownOption
}

// SetDateRange changes the stay dates.  The range must cover at least the
// room's quoted minimum nights unless it exactly matches the room's original
// check-in and check-out, in which case it is accepted as is.
func (s *Session) SetDateRange(from, to time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Room == nil {
		return ErrNoRoomSelected
	}
	if !from.Equal(s.origFrom) || !to.Equal(s.origTo) {
		if NightsBetween(from, to) < s.Room.Nights {
			return ErrDateRangeTooShort
		}
	}
	s.DateFrom, s.DateTo = from, to
	s.touchedAt = time.Now().UTC()
	return nil
}

// SelectTicket picks a ticket with a clamped quantity.
func (s *Session) SelectTicket(id uint64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.TicketOptions {
		if s.TicketOptions[i].ID == id {
			t := s.TicketOptions[i]
			s.Ticket = &t
			s.TicketQuantity = ClampQuantity(quantity, t.Remaining)
			s.touchedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrUnknownOption
}

// SelectCircuitTransfer picks a circuit transfer with its own quantity.
func (s *Session) SelectCircuitTransfer(id uint64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.CircuitOptions {
		if s.CircuitOptions[i].ID == id {
			ct := s.CircuitOptions[i]
			s.CircuitTransfer = &ct
			s.CircuitQuantity = ClampQuantity(quantity, 0)
			s.touchedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrUnknownOption
}

// SelectAirportTransfer picks an airport transfer; the vehicle count is
// derived from the adult count at pricing time.
func (s *Session) SelectAirportTransfer(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.AirportOptions {
		if s.AirportOptions[i].ID == id {
			at := s.AirportOptions[i]
			s.AirportTransfer = &at
			s.touchedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrUnknownOption
}

// SelectFlight picks a flight, priced per adult.
func (s *Session) SelectFlight(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.FlightOptions {
		if s.FlightOptions[i].ID == id {
			f := s.FlightOptions[i]
			s.Flight = &f
			s.touchedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrUnknownOption
}

// SelectLoungePass picks a lounge pass with a clamped quantity.
func (s *Session) SelectLoungePass(id uint64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.LoungeOptions {
		if s.LoungeOptions[i].ID == id {
			lp := s.LoungeOptions[i]
			s.LoungePass = &lp
			s.LoungeQuantity = ClampQuantity(quantity, 0)
			s.touchedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrUnknownOption
}

// SetAdults updates the traveller head count, minimum one.
func (s *Session) SetAdults(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	s.Adults = n
	s.touchedAt = time.Now().UTC()
}

// SetCurrency records the display currency and its resolved conversion
// rate.  GBP always carries rate 1 regardless of the rate supplied.
func (s *Session) SetCurrency(c Currency, rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == CurrencyGBP {
		rate = 1
	}
	s.Currency = c
	s.Rate = rate
	s.touchedAt = time.Now().UTC()
}

// SessionView is a copy of the visible session state, safe to render after
// the lock is released.
type SessionView struct {
	ID       string   `json:"id"`
	Adults   int      `json:"adults"`
	Currency Currency `json:"currency"`
	Rate     float64  `json:"rate"`

	Event           *EventOption           `json:"event,omitempty"`
	Package         *PackageOption         `json:"package,omitempty"`
	Hotel           *HotelOption           `json:"hotel,omitempty"`
	Room            *RoomOption            `json:"room,omitempty"`
	Ticket          *TicketOption          `json:"ticket,omitempty"`
	CircuitTransfer *CircuitTransferOption `json:"circuit_transfer,omitempty"`
	AirportTransfer *AirportTransferOption `json:"airport_transfer,omitempty"`
	Flight          *FlightOption          `json:"flight,omitempty"`
	LoungePass      *LoungePassOption      `json:"lounge_pass,omitempty"`

	RoomQuantity    int `json:"room_quantity,omitempty"`
	TicketQuantity  int `json:"ticket_quantity,omitempty"`
	CircuitQuantity int `json:"circuit_quantity,omitempty"`
	LoungeQuantity  int `json:"lounge_quantity,omitempty"`

	DateFrom string `json:"date_from,omitempty"` // DD/MM/YYYY
	DateTo   string `json:"date_to,omitempty"`

	PackageOptions []PackageOption         `json:"package_options,omitempty"`
	HotelOptions   []HotelOption           `json:"hotel_options,omitempty"`
	RoomOptions    []RoomOption            `json:"room_options,omitempty"`
	TicketOptions  []TicketOption          `json:"ticket_options,omitempty"`
	CircuitOptions []CircuitTransferOption `json:"circuit_transfer_options,omitempty"`
	AirportOptions []AirportTransferOption `json:"airport_transfer_options,omitempty"`
	FlightOptions  []FlightOption          `json:"flight_options,omitempty"`
	LoungeOptions  []LoungePassOption      `json:"lounge_pass_options,omitempty"`
}

// View returns a consistent copy of the session for rendering.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := SessionView{
		ID:              s.ID,
		Adults:          s.Adults,
		Currency:        s.Currency,
		Rate:            s.Rate,
		Event:           s.Event,
		Package:         s.Package,
		Hotel:           s.Hotel,
		Room:            s.Room,
		Ticket:          s.Ticket,
		CircuitTransfer: s.CircuitTransfer,
		AirportTransfer: s.AirportTransfer,
		Flight:          s.Flight,
		LoungePass:      s.LoungePass,
		RoomQuantity:    s.RoomQuantity,
		TicketQuantity:  s.TicketQuantity,
		CircuitQuantity: s.CircuitQuantity,
		LoungeQuantity:  s.LoungeQuantity,
		PackageOptions:  s.PackageOptions,
		HotelOptions:    s.HotelOptions,
		RoomOptions:     s.RoomOptions,
		TicketOptions:   s.TicketOptions,
		CircuitOptions:  s.CircuitOptions,
		AirportOptions:  s.AirportOptions,
		FlightOptions:   s.FlightOptions,
		LoungeOptions:   s.LoungeOptions,
	}
	if !s.DateFrom.IsZero() {
		v.DateFrom = FormatDMY(s.DateFrom)
	}
	if !s.DateTo.IsZero() {
		v.DateTo = FormatDMY(s.DateTo)
	}
	return v
}

// Pricing assembles the aggregator input from the current selections.
// Unselected items are omitted entirely.
func (s *Session) Pricing() Pricing {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Pricing{Adults: s.Adults}
	if s.Room != nil {
		p.Room = &RoomLine{
			Price:           s.Room.Price,
			ExtraNightPrice: s.Room.ExtraNightPrice,
			OriginalNights:  s.OriginalNights,
			Nights:          NightsBetween(s.DateFrom, s.DateTo),
			Quantity:        s.RoomQuantity,
		}
	}
	if s.Ticket != nil {
		p.Ticket = &TicketLine{Price: s.Ticket.Price, Quantity: s.TicketQuantity}
	}
	if s.CircuitTransfer != nil {
		p.CircuitTransfer = &CircuitTransferLine{Price: s.CircuitTransfer.Price, Quantity: s.CircuitQuantity}
	}
	if s.AirportTransfer != nil {
		p.AirportTransfer = &AirportTransferLine{Price: s.AirportTransfer.Price, MaxCapacity: s.AirportTransfer.MaxCapacity}
	}
	if s.Flight != nil {
		p.Flight = &FlightLine{Price: s.Flight.Price}
	}
	if s.LoungePass != nil {
		p.LoungePass = &LoungePassLine{Price: s.LoungePass.Price, Quantity: s.LoungeQuantity}
	}
	return p
}

// Quote computes the display total for the session's currency under the
// given commission multiplier and renders it alongside the raw number.
func (s *Session) Quote(commission float64) (amount float64, rendered string) {
	p := s.Pricing()
	s.mu.Lock()
	rate, cur := s.Rate, s.Currency
	s.mu.Unlock()
	amount = p.Total(rate, commission)
	return amount, Display(amount, cur)
}
