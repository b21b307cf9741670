package quote

import (
	"testing"
	"time"
)

func TestParseDMYRoundTrip(t *testing.T) {
	d, err := ParseDMY("25/05/2025")
	if err != nil {
		t.Fatalf("ParseDMY: %v", err)
	}
	if d.Day() != 25 || d.Month() != time.May || d.Year() != 2025 {
		t.Fatalf("parsed %v, want 25 May 2025", d)
	}
	if got := FormatDMY(d); got != "25/05/2025" {
		t.Fatalf("FormatDMY = %q", got)
	}
}

func TestParseDMYRejectsOtherLayouts(t *testing.T) {
	for _, s := range []string{"2025-05-25", "05/25/2025", "25-05-2025", ""} {
		if _, err := ParseDMY(s); err == nil {
			t.Fatalf("ParseDMY(%q) should fail", s)
		}
	}
}

func TestNightsBetween(t *testing.T) {
	from, _ := ParseDMY("22/05/2025")
	to, _ := ParseDMY("26/05/2025")
	if got := NightsBetween(from, to); got != 4 {
		t.Fatalf("NightsBetween = %d, want 4", got)
	}
	if got := NightsBetween(to, from); got != 0 {
		t.Fatalf("reversed range = %d, want 0", got)
	}
	if got := NightsBetween(from, from); got != 0 {
		t.Fatalf("empty range = %d, want 0", got)
	}
	if got := NightsBetween(time.Time{}, to); got != 0 {
		t.Fatalf("zero from = %d, want 0", got)
	}
}
