package service

import (
	"time"

	"github.com/apex_aftersales/backend/internal/models"
)

// An overdue window older than this many whole days stops being "recent".
const overdueRecentDays = 7

// ClassifyState maps a resolved window plus the work order status to one of
// the flat schedule states. Stateless; recomputed fresh on every call.
func ClassifyState(start, end *time.Time, status string, now time.Time) string {
	if start == nil {
		return models.StateUnscheduled
	}
	effectiveEnd := *start
	if end != nil {
		effectiveEnd = *end
	}

	// Status wins over time: active work stays in_progress even when its
	// window is long past.
	if status == models.StatusInProgress || status == models.StatusQualityCheck {
		return models.StateInProgress
	}

	if effectiveEnd.Before(now) {
		days := int(now.Sub(effectiveEnd) / (24 * time.Hour))
		if days <= overdueRecentDays {
			return models.StateOverdueRecent
		}
		return models.StateOverdueOld
	}
	return models.StateScheduled
}
