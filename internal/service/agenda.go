package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/apex_aftersales/backend/internal/models"
	"github.com/apex_aftersales/backend/internal/tz"
)

// Degraded-result reason codes. The pipeline entry points never return an
// error; I/O failure surfaces as an empty item list plus one of these.
const (
	DegradedOverlapQuery = "overlap_query_failed"
	DegradedHydration    = "hydration_failed"
)

type WorkOrderStore interface {
	GetByIDs(ctx context.Context, ids []string, scope string) ([]models.WorkOrder, error)
}

type OverlapRangeService interface {
	Query(ctx context.Context, start, end time.Time, scope string) ([]models.OverlapCandidate, error)
}

type LoanerStore interface {
	// ActiveFor returns the subset of ids with a currently unreturned loaner.
	ActiveFor(ctx context.Context, ids []string, scope string) (map[string]bool, error)
}

type AgendaService struct {
	Orders  WorkOrderStore
	Overlap OverlapRangeService
	Loaners LoanerStore
	Clock   tz.Clock
	Logger  zerolog.Logger
}

type RangeResult struct {
	Items    []models.NormalizedScheduleItem `json:"items"`
	Degraded string                          `json:"degraded,omitempty"`
}

// LoadRange runs the agenda pipeline over [from, to): coarse overlap query,
// concurrent hydration and loaner-flag lookup, normalization with agenda
// status exclusions, then a stable sort by scheduled start.
func (s *AgendaService) LoadRange(ctx context.Context, from, to time.Time, scope string) RangeResult {
	return s.loadRange(ctx, from, to, scope, true)
}

// HydrateRange is LoadRange without the agenda status exclusions: every
// hydrated row comes back with the canonical window override applied.
func (s *AgendaService) HydrateRange(ctx context.Context, from, to time.Time, scope string) RangeResult {
	return s.loadRange(ctx, from, to, scope, false)
}

func (s *AgendaService) loadRange(ctx context.Context, from, to time.Time, scope string, agendaView bool) RangeResult {
	candidates, err := s.Overlap.Query(ctx, from, to, scope)
	if err != nil {
		s.Logger.Warn().Err(err).Time("from", from).Time("to", to).Msg("overlap query failed")
		return RangeResult{Items: []models.NormalizedScheduleItem{}, Degraded: DegradedOverlapQuery}
	}
	if len(candidates) == 0 {
		return RangeResult{Items: []models.NormalizedScheduleItem{}}
	}

	ids := make([]string, 0, len(candidates))
	overrides := make(map[string]models.ScheduleWindow, len(candidates))
	for _, c := range candidates {
		c := c
		ids = append(ids, c.ID)
		overrides[c.ID] = models.ScheduleWindow{Start: &c.Start, End: &c.End, Source: models.SourceLineItems}
	}

	// Hydration and loaner flags are independent reads; only the id list
	// orders them after the overlap query.
	var (
		orders    []models.WorkOrder
		ordersErr error
		loaners   map[string]bool
		wg        sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		orders, ordersErr = s.Orders.GetByIDs(ctx, ids, scope)
	}()
	go func() {
		defer wg.Done()
		flags, err := s.Loaners.ActiveFor(ctx, ids, scope)
		if err != nil {
			// Advisory data: degrade to "no flag" for all, never propagate.
			s.Logger.Warn().Err(err).Msg("loaner flag lookup failed")
			return
		}
		loaners = flags
	}()
	wg.Wait()

	if ordersErr != nil {
		s.Logger.Warn().Err(ordersErr).Int("candidates", len(ids)).Msg("work order hydration failed")
		return RangeResult{Items: []models.NormalizedScheduleItem{}, Degraded: DegradedHydration}
	}

	now := s.Clock.Now()
	items := make([]models.NormalizedScheduleItem, 0, len(orders))
	for _, wo := range orders {
		var override *models.ScheduleWindow
		if w, ok := overrides[wo.ID]; ok {
			override = &w
		}
		if agendaView {
			item := NormalizeItem(wo, override, loaners[wo.ID], now)
			if item == nil {
				continue
			}
			items = append(items, *item)
		} else {
			items = append(items, HydrateItem(wo, override, loaners[wo.ID], now))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return startOrEpoch(items[i]).Before(startOrEpoch(items[j]))
	})
	return RangeResult{Items: items}
}

func startOrEpoch(item models.NormalizedScheduleItem) time.Time {
	if item.ScheduledStart != nil {
		return *item.ScheduledStart
	}
	return time.Unix(0, 0).UTC()
}
