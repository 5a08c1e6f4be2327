package service

import (
	"strings"
	"time"

	"github.com/apex_aftersales/backend/internal/models"
	"github.com/apex_aftersales/backend/internal/tz"
)

// ApplyFilters evaluates every criterion against each normalized item and
// returns the survivors in input order. Pure; deterministic given
// criteria.Now.
//
// Scheduled rows are tested by half-open interval overlap against the local
// date range. Promise-only rows are compared as day strings against the
// range's day keys; a promised day is a pure calendar date and must not be
// converted to an instant, or it would shift across zone boundaries.
func ApplyFilters(items []models.NormalizedScheduleItem, crit models.AgendaFilterCriteria, zone *tz.ZonedClock) []models.NormalizedScheduleItem {
	var rangeStart, rangeEnd time.Time
	restricted := false
	switch crit.DateRange {
	case models.RangeToday:
		rangeStart, rangeEnd = zone.StartOfDay(crit.Now), zone.StartOfDayPlus(crit.Now, 1)
		restricted = true
	case models.RangeNext3Days:
		rangeStart, rangeEnd = zone.StartOfDay(crit.Now), zone.StartOfDayPlus(crit.Now, 3)
		restricted = true
	case models.RangeNext7Days:
		rangeStart, rangeEnd = zone.StartOfDay(crit.Now), zone.StartOfDayPlus(crit.Now, 7)
		restricted = true
	}
	var startKey, endKey string
	if restricted {
		startKey, endKey = zone.DayKey(rangeStart), zone.DayKey(rangeEnd)
	}
	query := strings.ToLower(strings.TrimSpace(crit.Query))

	out := make([]models.NormalizedScheduleItem, 0, len(items))
	for _, item := range items {
		if crit.Status != "" && item.Status != crit.Status {
			continue
		}
		if crit.Assignee == "me" {
			// No silent bypass: missing caller identity excludes everything.
			if crit.CallerID == "" || item.StaffID == nil || *item.StaffID != crit.CallerID {
				continue
			}
		}
		if crit.VendorID != "" {
			if item.VendorID == nil || *item.VendorID != crit.VendorID {
				continue
			}
		}

		hasWindow := item.ScheduledStart != nil
		if !hasWindow && item.PromisedDay == "" {
			// Nothing anchors this row to any agenda day.
			continue
		}

		if restricted {
			if hasWindow {
				end := item.ScheduledEnd
				if end == nil {
					end = item.ScheduledStart
				}
				if !item.ScheduledStart.Before(rangeEnd) || !end.After(rangeStart) {
					continue
				}
			} else if item.PromisedDay < startKey || item.PromisedDay >= endKey {
				continue
			}
		}

		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item models.NormalizedScheduleItem, query string) bool {
	fields := []string{item.CustomerName, item.VehicleLabel}
	if item.WorkOrder != nil {
		fields = append(fields, item.WorkOrder.Title, item.WorkOrder.Description, item.WorkOrder.Reference)
	}
	haystack := strings.ToLower(strings.Join(fields, " "))
	return strings.Contains(haystack, query)
}
