package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apex_aftersales/backend/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// GetByIDs hydrates full work orders including line items, with vendor and
// staff names joined in. Promised dates come back as YYYY-MM-DD text so the
// pure calendar day never passes through a timestamp.
func (s *Store) GetByIDs(ctx context.Context, ids []string, scope string) ([]models.WorkOrder, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT wo.id, wo.org_id, wo.created_at, wo.status, wo.title, wo.description, wo.reference,
			wo.customer_name, wo.vehicle_label, wo.vendor_id, v.name, wo.staff_id, st.name,
			wo.needs_loaner, wo.scheduled_start, wo.scheduled_end,
			wo.appointment_start, wo.appointment_end,
			to_char(wo.promised_date, 'YYYY-MM-DD'), wo.total
		FROM work_orders wo
		LEFT JOIN vendors v ON v.id = wo.vendor_id
		LEFT JOIN staff st ON st.id = wo.staff_id
		WHERE wo.id = ANY($1) AND wo.org_id = $2
		ORDER BY wo.created_at ASC, wo.id ASC
	`, ids, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.WorkOrder
	index := map[string]int{}
	for rows.Next() {
		var wo models.WorkOrder
		if err := rows.Scan(
			&wo.ID, &wo.OrgID, &wo.CreatedAt, &wo.Status, &wo.Title, &wo.Description, &wo.Reference,
			&wo.CustomerName, &wo.VehicleLabel, &wo.VendorID, &wo.VendorName, &wo.StaffID, &wo.StaffName,
			&wo.NeedsLoaner, &wo.ScheduledStart, &wo.ScheduledEnd,
			&wo.AppointmentStart, &wo.AppointmentEnd,
			&wo.PromisedDate, &wo.Total,
		); err != nil {
			return nil, err
		}
		index[wo.ID] = len(out)
		out = append(out, wo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	liRows, err := s.Pool.Query(ctx, `
		SELECT id, work_order_id, name, scheduled_start, scheduled_end,
			to_char(promised_date, 'YYYY-MM-DD'), unit_price, quantity, total_price, off_site
		FROM line_items
		WHERE work_order_id = ANY($1)
		ORDER BY scheduled_start ASC NULLS LAST, id ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer liRows.Close()

	for liRows.Next() {
		var li models.LineItem
		if err := liRows.Scan(
			&li.ID, &li.WorkOrderID, &li.Name, &li.ScheduledStart, &li.ScheduledEnd,
			&li.PromisedDate, &li.UnitPrice, &li.Quantity, &li.TotalPrice, &li.OffSite,
		); err != nil {
			return nil, err
		}
		if i, ok := index[li.WorkOrderID]; ok {
			out[i].LineItems = append(out[i].LineItems, li)
		}
	}
	return out, liRows.Err()
}

// Query returns work orders whose effective schedule window intersects
// [start, end), with the storage-computed window per id. The window tier
// mirrors in-process resolution: scheduled line items, then work-order-level
// fields, then the legacy appointment. The match is deliberately coarse at
// the lower bound; exact range semantics belong to the filter engine.
func (s *Store) Query(ctx context.Context, start, end time.Time, scope string) ([]models.OverlapCandidate, error) {
	rows, err := s.Pool.Query(ctx, `
		WITH li AS (
			SELECT work_order_id,
				MIN(scheduled_start) AS min_start,
				MAX(COALESCE(scheduled_end, scheduled_start)) AS max_end
			FROM line_items
			WHERE scheduled_start IS NOT NULL
			GROUP BY work_order_id
		),
		effective AS (
			SELECT wo.id,
				COALESCE(li.min_start, wo.scheduled_start, wo.appointment_start) AS eff_start,
				CASE
					WHEN li.min_start IS NOT NULL THEN li.max_end
					WHEN wo.scheduled_start IS NOT NULL THEN COALESCE(wo.scheduled_end, wo.scheduled_start)
					ELSE COALESCE(wo.appointment_end, wo.appointment_start)
				END AS eff_end
			FROM work_orders wo
			LEFT JOIN li ON li.work_order_id = wo.id
			WHERE wo.org_id = $3
		)
		SELECT id, eff_start, GREATEST(eff_end, eff_start)
		FROM effective
		WHERE eff_start IS NOT NULL AND eff_start < $2 AND GREATEST(eff_end, eff_start) >= $1
		ORDER BY eff_start ASC, id ASC
	`, start, end, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.OverlapCandidate
	for rows.Next() {
		var c models.OverlapCandidate
		if err := rows.Scan(&c.ID, &c.Start, &c.End); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ActiveFor returns the ids among the given set with an unreturned loaner.
func (s *Store) ActiveFor(ctx context.Context, ids []string, scope string) (map[string]bool, error) {
	if len(ids) == 0 {
		return map[string]bool{}, nil
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT DISTINCT work_order_id
		FROM loaners
		WHERE work_order_id = ANY($1) AND org_id = $2 AND returned_at IS NULL
	`, ids, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

func (s *Store) ListVendors(ctx context.Context, scope string) ([]models.Vendor, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, name, COALESCE(phone, '') FROM vendors WHERE org_id = $1 ORDER BY name ASC, id ASC`, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Phone); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) ListStaff(ctx context.Context, scope string) ([]models.Staff, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, name FROM staff WHERE org_id = $1 ORDER BY name ASC, id ASC`, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Staff
	for rows.Next() {
		var st models.Staff
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
