package service

import (
	"sort"
	"time"

	"github.com/apex_aftersales/backend/internal/models"
)

// windowStrategy inspects one source of scheduling data and returns a window
// or nil when that source has nothing.
type windowStrategy func(wo models.WorkOrder) *models.ScheduleWindow

// ResolveWindow returns the single authoritative schedule window for a work
// order. Sources are tried in precedence order and the first hit wins:
// an externally supplied override (from the storage-side overlap query),
// scheduled line items, work-order-level fields, then the legacy appointment
// fields. Absence at every tier yields a SourceNone window, never an error.
func ResolveWindow(wo models.WorkOrder, override *models.ScheduleWindow) models.ScheduleWindow {
	strategies := []windowStrategy{
		overrideWindow(override),
		lineItemWindow,
		workOrderWindow,
		legacyWindow,
	}
	for _, resolve := range strategies {
		if w := resolve(wo); w != nil {
			return *w
		}
	}
	return models.ScheduleWindow{Source: models.SourceNone}
}

// The overlap query computes its window from line items, so the override
// keeps the line-item source tag.
func overrideWindow(override *models.ScheduleWindow) windowStrategy {
	return func(models.WorkOrder) *models.ScheduleWindow {
		if override == nil || override.Start == nil {
			return nil
		}
		w := clampWindow(*override.Start, override.End, models.SourceLineItems)
		return &w
	}
}

func lineItemWindow(wo models.WorkOrder) *models.ScheduleWindow {
	scheduled := make([]models.LineItem, 0, len(wo.LineItems))
	for _, li := range wo.LineItems {
		if li.ScheduledStart != nil {
			scheduled = append(scheduled, li)
		}
	}
	if len(scheduled) == 0 {
		return nil
	}
	sort.SliceStable(scheduled, func(i, j int) bool {
		return scheduled[i].ScheduledStart.Before(*scheduled[j].ScheduledStart)
	})

	start := *scheduled[0].ScheduledStart
	var end *time.Time
	for _, li := range scheduled {
		e := li.ScheduledEnd
		if e == nil {
			e = li.ScheduledStart
		}
		if end == nil || e.After(*end) {
			end = e
		}
	}
	w := clampWindow(start, end, models.SourceLineItems)
	return &w
}

func workOrderWindow(wo models.WorkOrder) *models.ScheduleWindow {
	if wo.ScheduledStart == nil {
		return nil
	}
	w := clampWindow(*wo.ScheduledStart, wo.ScheduledEnd, models.SourceWorkOrder)
	return &w
}

func legacyWindow(wo models.WorkOrder) *models.ScheduleWindow {
	if wo.AppointmentStart == nil {
		return nil
	}
	w := clampWindow(*wo.AppointmentStart, wo.AppointmentEnd, models.SourceLegacy)
	return &w
}

// clampWindow fills a missing end with the start and floors the end at the
// start so End >= Start always holds on a resolved window.
func clampWindow(start time.Time, end *time.Time, source string) models.ScheduleWindow {
	e := start
	if end != nil && end.After(start) {
		e = *end
	}
	return models.ScheduleWindow{Start: &start, End: &e, Source: source}
}
