package service

import (
	"testing"
	"time"

	"github.com/apex_aftersales/backend/internal/models"
)

func TestResolvePromiseDayPicksEarliest(t *testing.T) {
	wo := models.WorkOrder{
		PromisedDate: sp("2025-06-10"),
		LineItems: []models.LineItem{
			{PromisedDate: sp("2025-06-05")},
			{PromisedDate: sp("2025-06-08")},
			{},
		},
	}
	if got := ResolvePromiseDay(wo); got != "2025-06-05" {
		t.Fatalf("expected 2025-06-05, got %q", got)
	}
}

func TestResolvePromiseDayOverrideCanBeEarliest(t *testing.T) {
	wo := models.WorkOrder{
		PromisedDate: sp("2025-06-01"),
		LineItems:    []models.LineItem{{PromisedDate: sp("2025-06-05")}},
	}
	if got := ResolvePromiseDay(wo); got != "2025-06-01" {
		t.Fatalf("expected 2025-06-01, got %q", got)
	}
}

func TestResolvePromiseDayAcceptsFullTimestamps(t *testing.T) {
	wo := models.WorkOrder{
		LineItems: []models.LineItem{{PromisedDate: sp("2025-06-05T14:30:00Z")}},
	}
	if got := ResolvePromiseDay(wo); got != "2025-06-05" {
		t.Fatalf("expected day prefix, got %q", got)
	}
}

func TestResolvePromiseDayMalformedTreatedAbsent(t *testing.T) {
	wo := models.WorkOrder{
		PromisedDate: sp("soon"),
		LineItems:    []models.LineItem{{PromisedDate: sp("2025-13-40")}},
	}
	if got := ResolvePromiseDay(wo); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestResolvePromiseDayNone(t *testing.T) {
	if got := ResolvePromiseDay(models.WorkOrder{}); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestPromiseInstantIsUTCMidnight(t *testing.T) {
	got := PromiseInstant("2025-06-05")
	if got == nil {
		t.Fatal("expected instant")
	}
	want := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if PromiseInstant("") != nil {
		t.Fatal("expected nil for empty day")
	}
}
