// Package quote implements the client-facing quotation core: the pure price
// aggregator, the selection session that feeds it, and the dependent-lookup
// cascade that populates the session.  All prices are held in GBP until the
// final conversion step.
package quote

import "math"

// ResellerCommission is the multiplier applied on the commission-inclusive
// pricing variant shown to external resellers.
const ResellerCommission = 1.1

// RoomLine is the room contribution to a quote.  Price covers the originally
// quoted stay; nights beyond OriginalNights are billed per night at
// ExtraNightPrice.
type RoomLine struct {
	Price           float64
	ExtraNightPrice float64
	OriginalNights  int
	Nights          int
	Quantity        int
}

// TicketLine is priced per ticket.
type TicketLine struct {
	Price    float64
	Quantity int
}

// CircuitTransferLine is priced per unit with its own quantity.  The source
// console reused the ticket quantity here; that coupling was unintended, so
// the quantity is an independent field.
type CircuitTransferLine struct {
	Price    float64
	Quantity int
}

// AirportTransferLine is priced per vehicle; the number of vehicles is
// derived from the adult head count and the vehicle capacity.
type AirportTransferLine struct {
	Price       float64
	MaxCapacity int
}

// FlightLine is priced per adult.
type FlightLine struct {
	Price float64
}

// LoungePassLine is priced per pass.
type LoungePassLine struct {
	Price    float64
	Quantity int
}

// Pricing is the full input to one aggregation.  Nil lines are omitted from
// the total entirely rather than contributing zero.  Aggregation is a pure
// function of this struct, so recomputing with unchanged inputs always
// yields the same result.
type Pricing struct {
	Adults          int
	Room            *RoomLine
	Ticket          *TicketLine
	CircuitTransfer *CircuitTransferLine
	AirportTransfer *AirportTransferLine
	Flight          *FlightLine
	LoungePass      *LoungePassLine
}

// RoomCost returns the room contribution in GBP.  Extra nights only apply
// above the originally quoted night count.
func (r RoomLine) RoomCost() float64 {
	extra := r.Nights - r.OriginalNights
	if extra < 0 {
		extra = 0
	}
	return (r.Price + float64(extra)*r.ExtraNightPrice) * float64(r.Quantity)
}

// TransferUnits returns the number of vehicles needed for the given adult
// count, rounding up to whole vehicles.
func (a AirportTransferLine) TransferUnits(adults int) int {
	if a.MaxCapacity <= 0 || adults <= 0 {
		return 0
	}
	return int(math.Ceil(float64(adults) / float64(a.MaxCapacity)))
}

// SubtotalGBP sums the selected line items in GBP before any rounding or
// conversion.
func (p Pricing) SubtotalGBP() float64 {
	var total float64
	if p.Room != nil {
		total += p.Room.RoomCost()
	}
	if p.Ticket != nil {
		total += p.Ticket.Price * float64(p.Ticket.Quantity)
	}
	if p.CircuitTransfer != nil {
		total += p.CircuitTransfer.Price * float64(p.CircuitTransfer.Quantity)
	}
	if p.AirportTransfer != nil {
		total += p.AirportTransfer.Price * float64(p.AirportTransfer.TransferUnits(p.Adults))
	}
	if p.Flight != nil {
		total += p.Flight.Price * float64(p.Adults)
	}
	if p.LoungePass != nil {
		total += p.LoungePass.Price * float64(p.LoungePass.Quantity)
	}
	return total
}

// RoundTotal applies the house rounding rule: zero stays zero, anything else
// is rounded up to the next hundred and then reduced by two, producing the
// x98-style price points the sales team quotes.
func RoundTotal(total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Ceil(total/100)*100 - 2
}

// Total produces the display amount in the selected currency.  A commission
// multiplier of 1 (or less) gives the customer-facing variant: round, then
// convert.  A multiplier above 1 gives the commission-inclusive variant used
// for the reseller view: round, apply commission, round again, then convert.
func (p Pricing) Total(rate, commission float64) float64 {
	total := RoundTotal(p.SubtotalGBP())
	if commission > 1 {
		total = RoundTotal(total * commission)
	}
	return total * rate
}
