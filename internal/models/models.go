package models

import "time"

// Work order statuses as stored.
const (
	StatusDraft        = "draft"
	StatusPending      = "pending"
	StatusScheduled    = "scheduled"
	StatusInProgress   = "in_progress"
	StatusQualityCheck = "quality_check"
	StatusCompleted    = "completed"
	StatusCancelled    = "cancelled"
)

// Where a resolved schedule window came from.
const (
	SourceLineItems = "line_items"
	SourceWorkOrder = "work_order"
	SourceLegacy    = "legacy_appointment"
	SourceNone      = "none"
)

// Temporal state of a work order relative to now.
const (
	StateUnscheduled   = "unscheduled"
	StateScheduled     = "scheduled"
	StateInProgress    = "in_progress"
	StateOverdueRecent = "overdue_recent"
	StateOverdueOld    = "overdue_old"
)

const (
	LocationInHouse = "In-House"
	LocationOffSite = "Off-Site"
	LocationMixed   = "Mixed"
)

const (
	RangeAll       = "all"
	RangeToday     = "today"
	RangeNext3Days = "next3days"
	RangeNext7Days = "next7days"
)

type WorkOrder struct {
	ID           string    `json:"id"`
	OrgID        string    `json:"org_id"`
	CreatedAt    time.Time `json:"created_at"`
	Status       string    `json:"status"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Reference    string    `json:"reference"`
	CustomerName string    `json:"customer_name"`
	VehicleLabel string    `json:"vehicle_label"`
	VendorID     *string   `json:"vendor_id"`
	VendorName   *string   `json:"vendor_name"`
	StaffID      *string   `json:"staff_id"`
	StaffName    *string   `json:"staff_name"`
	NeedsLoaner  bool      `json:"needs_loaner"`

	// Work-order-level scheduling, used when no line item carries a start.
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`

	// Legacy appointment fields for records predating line-item scheduling.
	AppointmentStart *time.Time `json:"appointment_start"`
	AppointmentEnd   *time.Time `json:"appointment_end"`

	// Override promised day, YYYY-MM-DD. Pure calendar day, no time-of-day.
	PromisedDate *string `json:"promised_date"`

	Total     *float64   `json:"total"`
	LineItems []LineItem `json:"line_items"`
}

type LineItem struct {
	ID             string     `json:"id"`
	WorkOrderID    string     `json:"work_order_id"`
	Name           string     `json:"name"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	PromisedDate   *string    `json:"promised_date"`
	UnitPrice      float64    `json:"unit_price"`
	Quantity       float64    `json:"quantity"`
	TotalPrice     *float64   `json:"total_price"`
	OffSite        bool       `json:"off_site"`
}

// ScheduleWindow is the single authoritative window resolved for a work
// order. Source is SourceNone iff both bounds are nil; End >= Start whenever
// both are set.
type ScheduleWindow struct {
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
	Source string     `json:"source"`
}

// NormalizedScheduleItem is the agenda-ready projection of one work order.
// Recomputed on every hydration pass, never persisted.
type NormalizedScheduleItem struct {
	ID             string     `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	Status         string     `json:"status"`
	PromisedDay    string     `json:"promised_day,omitempty"`
	PromisedAt     *time.Time `json:"promised_at"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	CustomerName   string     `json:"customer_name"`
	StaffID        *string    `json:"staff_id"`
	StaffName      string     `json:"staff_name"`
	VehicleLabel   string     `json:"vehicle_label"`
	VendorID       *string    `json:"vendor_id"`
	VendorName     string     `json:"vendor_name"`
	LocationType   string     `json:"location_type,omitempty"`
	LoanerTag      bool       `json:"loaner_tag"`
	Amount         *float64   `json:"amount"`
	ScheduleState  string     `json:"schedule_state"`
	ScheduleSource string     `json:"schedule_source"`

	WorkOrder *WorkOrder `json:"-"`
}

// AgendaFilterCriteria is a plain value; persistence of filter preferences
// lives outside this service.
type AgendaFilterCriteria struct {
	Query     string
	Status    string
	DateRange string
	VendorID  string
	Assignee  string // "" or "me"
	CallerID  string
	Now       time.Time
}

type AgendaGroup struct {
	DayKey string                   `json:"day_key"`
	Items  []NormalizedScheduleItem `json:"items"`
}

// VendorConflict reports two work orders double-booked on the same vendor.
type VendorConflict struct {
	VendorID     string    `json:"vendor_id"`
	VendorName   string    `json:"vendor_name"`
	FirstID      string    `json:"first_id"`
	SecondID     string    `json:"second_id"`
	OverlapStart time.Time `json:"overlap_start"`
	OverlapEnd   time.Time `json:"overlap_end"`
}

// OverlapCandidate is one row from the storage-side coarse overlap query.
// The window is authoritative and overrides per-record resolution.
type OverlapCandidate struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Vendor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Staff struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
