package service

import (
	"testing"
	"time"

	"github.com/apex_aftersales/backend/internal/models"
)

func TestClassifyNilStartAlwaysUnscheduled(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	statuses := []string{
		models.StatusDraft, models.StatusPending, models.StatusScheduled,
		models.StatusInProgress, models.StatusQualityCheck, models.StatusCompleted, models.StatusCancelled,
	}
	for _, status := range statuses {
		if got := ClassifyState(nil, nil, status, now); got != models.StateUnscheduled {
			t.Fatalf("status %s: expected unscheduled, got %s", status, got)
		}
	}
}

func TestClassifyStatusOverridesPastWindow(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	start := now.Add(-90 * 24 * time.Hour)
	end := start.Add(2 * time.Hour)
	for _, status := range []string{models.StatusInProgress, models.StatusQualityCheck} {
		if got := ClassifyState(&start, &end, status, now); got != models.StateInProgress {
			t.Fatalf("status %s: expected in_progress, got %s", status, got)
		}
	}
}

func TestClassifyOverdueBoundary(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	end := now.Add(-7 * 24 * time.Hour)
	start := end.Add(-time.Hour)
	if got := ClassifyState(&start, &end, models.StatusScheduled, now); got != models.StateOverdueRecent {
		t.Fatalf("exactly 7 days overdue: expected overdue_recent, got %s", got)
	}

	end = now.Add(-8 * 24 * time.Hour)
	start = end.Add(-time.Hour)
	if got := ClassifyState(&start, &end, models.StatusScheduled, now); got != models.StateOverdueOld {
		t.Fatalf("8 days overdue: expected overdue_old, got %s", got)
	}
}

func TestClassifyFutureWindowScheduled(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	if got := ClassifyState(&start, nil, models.StatusScheduled, now); got != models.StateScheduled {
		t.Fatalf("expected scheduled, got %s", got)
	}
}

func TestClassifyEndDefaultsToStart(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)
	if got := ClassifyState(&start, nil, models.StatusScheduled, now); got != models.StateOverdueRecent {
		t.Fatalf("expected overdue_recent via start fallback, got %s", got)
	}
}
