package tz

import (
	"testing"
	"time"
)

func newTestClock(t *testing.T) *ZonedClock {
	t.Helper()
	z, err := NewZonedClock("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return z
}

func TestStartOfDayIdempotent(t *testing.T) {
	z := newTestClock(t)
	d := time.Date(2025, 6, 2, 18, 45, 12, 0, time.UTC)
	once := z.StartOfDay(d)
	twice := z.StartOfDay(once)
	if !once.Equal(twice) {
		t.Fatalf("start of day not idempotent: %v vs %v", once, twice)
	}
	if once.After(d) {
		t.Fatalf("start of day %v is after input %v", once, d)
	}
}

func TestStartOfDaySpringForward(t *testing.T) {
	z := newTestClock(t)
	// 2025-03-09: US spring forward, a 23-hour day in America/New_York.
	d := time.Date(2025, 3, 9, 17, 0, 0, 0, time.UTC)
	sod := z.StartOfDay(d)
	next := z.StartOfDayPlus(d, 1)
	if got := next.Sub(sod); got != 23*time.Hour {
		t.Fatalf("expected 23h day, got %v", got)
	}
	if z.DayKey(sod) != "2025-03-09" {
		t.Fatalf("expected day key 2025-03-09, got %s", z.DayKey(sod))
	}
}

func TestStartOfDayFallBack(t *testing.T) {
	z := newTestClock(t)
	// 2025-11-02: US fall back, a 25-hour day.
	d := time.Date(2025, 11, 2, 17, 0, 0, 0, time.UTC)
	if got := z.StartOfDayPlus(d, 1).Sub(z.StartOfDay(d)); got != 25*time.Hour {
		t.Fatalf("expected 25h day, got %v", got)
	}
}

func TestStartOfDayPlusOrdinaryDay(t *testing.T) {
	z := newTestClock(t)
	d := time.Date(2025, 6, 2, 3, 0, 0, 0, time.UTC)
	if got := z.StartOfDayPlus(d, 1).Sub(z.StartOfDay(d)); got != 24*time.Hour {
		t.Fatalf("expected 24h day, got %v", got)
	}
}

func TestDayKeyUsesLocalDay(t *testing.T) {
	z := newTestClock(t)
	// 03:30Z is still the previous evening in New York.
	d := time.Date(2025, 6, 3, 3, 30, 0, 0, time.UTC)
	if got := z.DayKey(d); got != "2025-06-02" {
		t.Fatalf("expected 2025-06-02, got %s", got)
	}
}
