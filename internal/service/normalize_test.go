package service

import (
	"testing"
	"time"

	"github.com/apex_aftersales/backend/internal/models"
)

func TestNormalizeItemExcludesClosedStatuses(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	for _, status := range []string{models.StatusCancelled, models.StatusCompleted, models.StatusDraft} {
		wo := models.WorkOrder{ID: "wo-1", Status: status, ScheduledStart: &start}
		if item := NormalizeItem(wo, nil, false, now); item != nil {
			t.Fatalf("status %s: expected exclusion, got %+v", status, item)
		}
	}
}

func TestHydrateItemKeepsClosedStatuses(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	wo := models.WorkOrder{ID: "wo-1", Status: models.StatusCompleted}
	item := HydrateItem(wo, nil, false, now)
	if item.ID != "wo-1" || item.Status != models.StatusCompleted {
		t.Fatalf("expected hydrated completed row, got %+v", item)
	}
}

func TestLocationType(t *testing.T) {
	cases := []struct {
		name  string
		items []models.LineItem
		want  string
	}{
		{"no items", nil, ""},
		{"all in house", []models.LineItem{{}, {}}, models.LocationInHouse},
		{"all off site", []models.LineItem{{OffSite: true}}, models.LocationOffSite},
		{"mixed", []models.LineItem{{OffSite: true}, {}}, models.LocationMixed},
	}
	for _, tc := range cases {
		if got := locationType(tc.items); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestRollUpAmount(t *testing.T) {
	if got := rollUpAmount(models.WorkOrder{Total: fp(120.50)}); got == nil || *got != 120.50 {
		t.Fatalf("expected explicit total preferred, got %v", got)
	}

	wo := models.WorkOrder{
		LineItems: []models.LineItem{
			{TotalPrice: fp(100)},
			{UnitPrice: 25, Quantity: 2},
		},
	}
	if got := rollUpAmount(wo); got == nil || *got != 150 {
		t.Fatalf("expected 150, got %v", got)
	}

	if got := rollUpAmount(models.WorkOrder{}); got != nil {
		t.Fatalf("expected nil for zero sum, got %v", got)
	}
}

func TestNormalizeItemComposesResolution(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	vendorID := "v-1"
	vendorName := "Tint Shop"
	wo := models.WorkOrder{
		ID:           "wo-1",
		Status:       models.StatusScheduled,
		CustomerName: "Dana Fields",
		VehicleLabel: "2022 Outback",
		VendorID:     &vendorID,
		VendorName:   &vendorName,
		LineItems: []models.LineItem{
			{ScheduledStart: &start, PromisedDate: sp("2025-06-05"), OffSite: true},
		},
	}
	item := NormalizeItem(wo, nil, true, now)
	if item == nil {
		t.Fatal("expected item")
	}
	if item.ScheduleSource != models.SourceLineItems {
		t.Fatalf("expected line_items source, got %s", item.ScheduleSource)
	}
	if item.ScheduleState != models.StateScheduled {
		t.Fatalf("expected scheduled state, got %s", item.ScheduleState)
	}
	if item.PromisedDay != "2025-06-05" {
		t.Fatalf("expected promised day, got %q", item.PromisedDay)
	}
	want := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	if item.PromisedAt == nil || !item.PromisedAt.Equal(want) {
		t.Fatalf("expected promised at %v, got %v", want, item.PromisedAt)
	}
	if !item.LoanerTag || item.VendorName != "Tint Shop" || item.LocationType != models.LocationOffSite {
		t.Fatalf("unexpected projection: %+v", item)
	}
	if item.WorkOrder == nil || item.WorkOrder.ID != "wo-1" {
		t.Fatal("expected back reference to the raw work order")
	}
}
