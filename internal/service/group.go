package service

import (
	"sort"

	"github.com/apex_aftersales/backend/internal/models"
	"github.com/apex_aftersales/backend/internal/tz"
)

// GroupByDay buckets filtered items by local day key. Group keys sort
// ascending (YYYY-MM-DD sorts lexicographically in date order); row order
// within a group preserves the upstream sort.
func GroupByDay(items []models.NormalizedScheduleItem, zone *tz.ZonedClock) []models.AgendaGroup {
	buckets := map[string][]models.NormalizedScheduleItem{}
	for _, item := range items {
		key := groupKey(item, zone)
		if key == "" {
			continue
		}
		buckets[key] = append(buckets[key], item)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]models.AgendaGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, models.AgendaGroup{DayKey: key, Items: buckets[key]})
	}
	return groups
}

// groupKey picks the scheduled day when one exists, else the promised day,
// else the legacy appointment day.
func groupKey(item models.NormalizedScheduleItem, zone *tz.ZonedClock) string {
	if item.ScheduledStart != nil {
		return zone.DayKey(*item.ScheduledStart)
	}
	if item.PromisedDay != "" {
		return item.PromisedDay
	}
	if item.WorkOrder != nil && item.WorkOrder.AppointmentStart != nil {
		return zone.DayKey(*item.WorkOrder.AppointmentStart)
	}
	return ""
}
