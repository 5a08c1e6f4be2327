package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/apex_aftersales/backend/internal/db"
	"github.com/apex_aftersales/backend/internal/models"
	"github.com/apex_aftersales/backend/internal/service"
	"github.com/apex_aftersales/backend/internal/tz"
)

const (
	StaffIDHeader = "X-Staff-Id"
	OrgIDHeader   = "X-Org-Id"
)

type Handler struct {
	Store       *db.Store
	Agenda      *service.AgendaService
	Zone        *tz.ZonedClock
	Clock       tz.Clock
	Validator   *validator.Validate
	Logger      zerolog.Logger
	AdminKey    string
	HorizonDays int
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Agenda view
// @Description Filtered, day-grouped schedule of open work orders
// @Tags agenda
// @Produce json
// @Param range query string false "all|today|next3days|next7days"
// @Param from query string false "RFC3339 lower bound of the fetch window"
// @Param to query string false "RFC3339 upper bound of the fetch window"
// @Param status query string false "work order status"
// @Param vendor_id query string false "vendor id"
// @Param assignee query string false "empty or 'me'"
// @Param q query string false "free text"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/agenda [get]
func (h *Handler) AgendaList(c *gin.Context) {
	rangeMode := c.DefaultQuery("range", models.RangeAll)
	if err := h.Validator.Var(rangeMode, "oneof=all today next3days next7days"); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid range mode", rangeMode)
		return
	}
	status := c.Query("status")
	if status != "" {
		if err := h.Validator.Var(status, "oneof=draft pending scheduled in_progress quality_check completed cancelled"); err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid status", status)
			return
		}
	}
	assignee := c.Query("assignee")
	if assignee != "" && assignee != "me" {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "assignee must be empty or 'me'", assignee)
		return
	}

	now := h.Clock.Now()
	from, to, ok := h.fetchWindow(c, now, rangeMode)
	if !ok {
		return
	}

	result := h.Agenda.LoadRange(c.Request.Context(), from, to, orgScope(c))
	crit := models.AgendaFilterCriteria{
		Query:     c.Query("q"),
		Status:    status,
		DateRange: rangeMode,
		VendorID:  c.Query("vendor_id"),
		Assignee:  assignee,
		CallerID:  c.GetHeader(StaffIDHeader),
		Now:       now,
	}
	filtered := service.ApplyFilters(result.Items, crit, h.Zone)
	groups := service.GroupByDay(filtered, h.Zone)

	c.JSON(http.StatusOK, gin.H{
		"degraded": result.Degraded,
		"count":    len(filtered),
		"items":    filtered,
		"groups":   groups,
	})
}

// @Summary Vendor double-booking scan
// @Description Advisory conflict check over the agenda range
// @Tags agenda
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/agenda/conflicts [get]
func (h *Handler) AgendaConflicts(c *gin.Context) {
	now := h.Clock.Now()
	from, to, ok := h.fetchWindow(c, now, models.RangeAll)
	if !ok {
		return
	}
	result := h.Agenda.LoadRange(c.Request.Context(), from, to, orgScope(c))
	conflicts := service.FindVendorConflicts(result.Items)
	c.JSON(http.StatusOK, gin.H{
		"degraded":  result.Degraded,
		"count":     len(conflicts),
		"conflicts": conflicts,
	})
}

// @Summary List work orders in range
// @Description Raw hydration path: no agenda status exclusion, canonical window applied
// @Tags work-orders
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/work-orders [get]
func (h *Handler) WorkOrdersList(c *gin.Context) {
	now := h.Clock.Now()
	from, to, ok := h.fetchWindow(c, now, models.RangeAll)
	if !ok {
		return
	}
	result := h.Agenda.HydrateRange(c.Request.Context(), from, to, orgScope(c))
	c.JSON(http.StatusOK, gin.H{
		"degraded": result.Degraded,
		"count":    len(result.Items),
		"items":    result.Items,
	})
}

func (h *Handler) WorkOrderDetails(c *gin.Context) {
	id := c.Param("id")
	scope := orgScope(c)
	orders, err := h.Store.GetByIDs(c.Request.Context(), []string{id}, scope)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "work order lookup failed", err.Error())
		return
	}
	if len(orders) == 0 {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "work order not found", id)
		return
	}
	wo := orders[0]

	// Loaner flag is advisory; a failed lookup renders as false.
	hasLoaner := false
	if flags, err := h.Store.ActiveFor(c.Request.Context(), []string{id}, scope); err == nil {
		hasLoaner = flags[id]
	} else {
		h.Logger.Warn().Err(err).Str("work_order_id", id).Msg("loaner flag lookup failed")
	}

	item := service.HydrateItem(wo, nil, hasLoaner, h.Clock.Now())
	c.JSON(http.StatusOK, gin.H{
		"work_order": wo,
		"normalized": item,
	})
}

func (h *Handler) VendorsList(c *gin.Context) {
	vendors, err := h.Store.ListVendors(c.Request.Context(), orgScope(c))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "vendor list failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

func (h *Handler) StaffList(c *gin.Context) {
	staff, err := h.Store.ListStaff(c.Request.Context(), orgScope(c))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "staff list failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

// DebugSchedule shows how one work order's window, promise day, and state
// resolve, for support diagnostics.
func (h *Handler) DebugSchedule(c *gin.Context) {
	id := c.Param("id")
	orders, err := h.Store.GetByIDs(c.Request.Context(), []string{id}, orgScope(c))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "work order lookup failed", err.Error())
		return
	}
	if len(orders) == 0 {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "work order not found", id)
		return
	}
	wo := orders[0]
	win := service.ResolveWindow(wo, nil)
	day := service.ResolvePromiseDay(wo)
	now := h.Clock.Now()

	c.JSON(http.StatusOK, gin.H{
		"work_order_id": wo.ID,
		"status":        wo.Status,
		"window":        win,
		"promised_day":  day,
		"promised_at":   service.PromiseInstant(day),
		"state":         service.ClassifyState(win.Start, win.End, wo.Status, now),
		"now":           now,
	})
}

// fetchWindow computes the coarse [from, to) interval handed to the overlap
// query. Named ranges narrow the fetch to the exact local day span; "all"
// falls back to the horizon defaults unless explicit bounds are given.
func (h *Handler) fetchWindow(c *gin.Context, now time.Time, rangeMode string) (time.Time, time.Time, bool) {
	var from, to time.Time
	switch rangeMode {
	case models.RangeToday:
		from, to = h.Zone.StartOfDay(now), h.Zone.StartOfDayPlus(now, 1)
	case models.RangeNext3Days:
		from, to = h.Zone.StartOfDay(now), h.Zone.StartOfDayPlus(now, 3)
	case models.RangeNext7Days:
		from, to = h.Zone.StartOfDay(now), h.Zone.StartOfDayPlus(now, 7)
	default:
		from, to = h.Zone.StartOfDayPlus(now, -30), h.Zone.StartOfDayPlus(now, h.HorizonDays)
	}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "from must be RFC3339", v)
			return time.Time{}, time.Time{}, false
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "to must be RFC3339", v)
			return time.Time{}, time.Time{}, false
		}
		to = t
	}
	if !to.After(from) {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "to must be after from", nil)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func orgScope(c *gin.Context) string {
	if v := c.GetHeader(OrgIDHeader); v != "" {
		return v
	}
	return "default"
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
