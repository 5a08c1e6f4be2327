package service

import (
	"strings"
	"time"

	"github.com/apex_aftersales/backend/internal/models"
)

// ResolvePromiseDay returns the earliest promised calendar day across the
// work-order override and every line item, as YYYY-MM-DD, or "" when no
// candidate exists. Day strings compare lexicographically in chronological
// order, so min over strings is min over days. Malformed values are treated
// as absent.
func ResolvePromiseDay(wo models.WorkOrder) string {
	best := ""
	consider := func(v *string) {
		if v == nil {
			return
		}
		day := normalizeDay(*v)
		if day == "" {
			return
		}
		if best == "" || day < best {
			best = day
		}
	}
	consider(wo.PromisedDate)
	for i := range wo.LineItems {
		consider(wo.LineItems[i].PromisedDate)
	}
	return best
}

// PromiseInstant renders a promised day as its UTC-midnight marker instant.
// The marker is for display only; range comparisons stay on day strings so a
// promised day never shifts across zone boundaries.
func PromiseInstant(day string) *time.Time {
	if day == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// normalizeDay accepts a bare day or a full ISO timestamp and reduces it to
// a validated YYYY-MM-DD, or "" when unparseable.
func normalizeDay(v string) string {
	v = strings.TrimSpace(v)
	if len(v) < 10 {
		return ""
	}
	day := v[:10]
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return ""
	}
	return day
}
