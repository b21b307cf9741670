package quote

import (
	"math"
	"testing"
)

func TestRoundTotal(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 98},
		{360, 398},
		{500, 498},
		{501, 598},
		{998, 998},
		{1000, 998},
		{1097.8, 1098},
	}
	for _, c := range cases {
		if got := RoundTotal(c.in); got != c.want {
			t.Fatalf("RoundTotal(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRoundTotalIdempotent(t *testing.T) {
	for _, v := range []float64{0, 98, 360, 500, 1000, 12345.67} {
		once := RoundTotal(v)
		if twice := RoundTotal(once); twice != once {
			t.Fatalf("RoundTotal not idempotent at %v: %v then %v", v, once, twice)
		}
	}
}

func TestRoomCostExtraNights(t *testing.T) {
	r := RoomLine{Price: 500, ExtraNightPrice: 100, OriginalNights: 3, Nights: 3, Quantity: 1}
	if got := r.RoomCost(); got != 500 {
		t.Fatalf("quoted stay cost = %v, want 500", got)
	}
	r.Nights = 5
	if got := r.RoomCost(); got != 700 {
		t.Fatalf("two extra nights cost = %v, want 700", got)
	}
	// A shortened stay never discounts below the quoted price.
	r.Nights = 2
	if got := r.RoomCost(); got != 500 {
		t.Fatalf("short stay cost = %v, want 500", got)
	}
	r.Nights, r.Quantity = 5, 2
	if got := r.RoomCost(); got != 1400 {
		t.Fatalf("two rooms cost = %v, want 1400", got)
	}
}

func TestTransferUnits(t *testing.T) {
	a := AirportTransferLine{Price: 80, MaxCapacity: 4}
	cases := []struct{ adults, want int }{
		{0, 0}, {1, 1}, {4, 1}, {5, 2}, {7, 2}, {8, 2}, {9, 3},
	}
	for _, c := range cases {
		if got := a.TransferUnits(c.adults); got != c.want {
			t.Fatalf("TransferUnits(%d) = %d, want %d", c.adults, got, c.want)
		}
	}
	if got := (AirportTransferLine{MaxCapacity: 0}).TransferUnits(5); got != 0 {
		t.Fatalf("zero capacity should yield 0 units, got %d", got)
	}
}

func TestSubtotalOmitsUnselectedLines(t *testing.T) {
	p := Pricing{Adults: 2}
	if got := p.SubtotalGBP(); got != 0 {
		t.Fatalf("empty selection subtotal = %v, want 0", got)
	}
	p.Flight = &FlightLine{Price: 150}
	if got := p.SubtotalGBP(); got != 300 {
		t.Fatalf("flight for two subtotal = %v, want 300", got)
	}
	p.LoungePass = &LoungePassLine{Price: 40, Quantity: 2}
	if got := p.SubtotalGBP(); got != 380 {
		t.Fatalf("subtotal = %v, want 380", got)
	}
}

func TestTotalCustomerVariant(t *testing.T) {
	p := Pricing{
		Adults: 2,
		Room:   &RoomLine{Price: 300, OriginalNights: 3, Nights: 3, Quantity: 1},
		Ticket: &TicketLine{Price: 30, Quantity: 2},
	}
	// Subtotal 360 rounds to 398; GBP keeps rate 1.
	if got := p.Total(1, 1); got != 398 {
		t.Fatalf("customer total = %v, want 398", got)
	}
}

func TestTotalCommissionVariantReRounds(t *testing.T) {
	p := Pricing{
		Adults: 1,
		Room:   &RoomLine{Price: 950, OriginalNights: 2, Nights: 2, Quantity: 1},
	}
	// 950 rounds to 998; x1.1 = 1097.8 rounds again to 1098.
	if got := p.Total(1, ResellerCommission); got != 1098 {
		t.Fatalf("commission total = %v, want 1098", got)
	}
}

func TestTotalAppliesRateAfterRounding(t *testing.T) {
	p := Pricing{Adults: 1, Ticket: &TicketLine{Price: 360, Quantity: 1}}
	got := p.Total(1.25, 1)
	if math.Abs(got-497.5) > 1e-9 {
		t.Fatalf("converted total = %v, want 497.5", got)
	}
}

func TestDisplayTruncatesWholeUnits(t *testing.T) {
	cases := []struct {
		amount float64
		cur    Currency
		want   string
	}{
		{0, CurrencyGBP, "£0.00"},
		{0, CurrencyUSD, "$0.00"},
		{398, CurrencyGBP, "£398"},
		{497.5, CurrencyUSD, "$497"},
		{1097.99, CurrencyEUR, "€1097"},
	}
	for _, c := range cases {
		if got := Display(c.amount, c.cur); got != c.want {
			t.Fatalf("Display(%v, %s) = %q, want %q", c.amount, c.cur, got, c.want)
		}
	}
}

func TestParseCurrency(t *testing.T) {
	if cur, err := ParseCurrency(" usd "); err != nil || cur != CurrencyUSD {
		t.Fatalf("ParseCurrency(usd) = %v, %v", cur, err)
	}
	if _, err := ParseCurrency("JPY"); err == nil {
		t.Fatal("expected error for unsupported currency")
	}
}
