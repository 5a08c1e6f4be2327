package service

import (
	"math"
	"time"

	"github.com/apex_aftersales/backend/internal/models"
)

// Statuses that never appear on the agenda. The raw hydration path
// (HydrateItem) deliberately does not apply this set: some callers need
// every row with the canonical window attached, the agenda needs the
// filtered view.
var agendaExcludedStatus = map[string]bool{
	models.StatusCancelled: true,
	models.StatusCompleted: true,
	models.StatusDraft:     true,
}

// NormalizeItem produces the agenda projection for one work order, or nil
// when its status keeps it off the agenda entirely.
func NormalizeItem(wo models.WorkOrder, override *models.ScheduleWindow, hasLoaner bool, now time.Time) *models.NormalizedScheduleItem {
	if agendaExcludedStatus[wo.Status] {
		return nil
	}
	item := buildItem(wo, override, hasLoaner, now)
	return &item
}

// HydrateItem is the unfiltered counterpart of NormalizeItem.
func HydrateItem(wo models.WorkOrder, override *models.ScheduleWindow, hasLoaner bool, now time.Time) models.NormalizedScheduleItem {
	return buildItem(wo, override, hasLoaner, now)
}

func buildItem(wo models.WorkOrder, override *models.ScheduleWindow, hasLoaner bool, now time.Time) models.NormalizedScheduleItem {
	win := ResolveWindow(wo, override)
	day := ResolvePromiseDay(wo)
	ref := wo

	return models.NormalizedScheduleItem{
		ID:             wo.ID,
		CreatedAt:      wo.CreatedAt,
		Status:         wo.Status,
		PromisedDay:    day,
		PromisedAt:     PromiseInstant(day),
		ScheduledStart: win.Start,
		ScheduledEnd:   win.End,
		CustomerName:   wo.CustomerName,
		StaffID:        wo.StaffID,
		StaffName:      derefString(wo.StaffName),
		VehicleLabel:   wo.VehicleLabel,
		VendorID:       wo.VendorID,
		VendorName:     derefString(wo.VendorName),
		LocationType:   locationType(wo.LineItems),
		LoanerTag:      hasLoaner,
		Amount:         rollUpAmount(wo),
		ScheduleState:  ClassifyState(win.Start, win.End, wo.Status, now),
		ScheduleSource: win.Source,
		WorkOrder:      &ref,
	}
}

func locationType(items []models.LineItem) string {
	if len(items) == 0 {
		return ""
	}
	var offSite, inHouse bool
	for _, li := range items {
		if li.OffSite {
			offSite = true
		} else {
			inHouse = true
		}
	}
	switch {
	case offSite && inHouse:
		return models.LocationMixed
	case offSite:
		return models.LocationOffSite
	default:
		return models.LocationInHouse
	}
}

// rollUpAmount prefers an explicit work-order total, otherwise sums line
// items (total_price, falling back to unit_price * quantity). Zero or
// non-finite amounts render as absent.
func rollUpAmount(wo models.WorkOrder) *float64 {
	var amount float64
	if wo.Total != nil {
		amount = *wo.Total
	} else {
		for _, li := range wo.LineItems {
			if li.TotalPrice != nil {
				amount += *li.TotalPrice
				continue
			}
			amount += li.UnitPrice * li.Quantity
		}
	}
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil
	}
	return &amount
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
