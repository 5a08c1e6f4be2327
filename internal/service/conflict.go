package service

import (
	"sort"
	"time"

	"github.com/apex_aftersales/backend/internal/models"
)

// FindVendorConflicts scans normalized items for vendor double-bookings:
// two work orders at the same vendor with overlapping schedule windows.
// Advisory only; rows without a vendor or a window are skipped, and the scan
// never fails the agenda it runs against.
func FindVendorConflicts(items []models.NormalizedScheduleItem) []models.VendorConflict {
	byVendor := map[string][]models.NormalizedScheduleItem{}
	for _, item := range items {
		if item.VendorID == nil || item.ScheduledStart == nil {
			continue
		}
		byVendor[*item.VendorID] = append(byVendor[*item.VendorID], item)
	}

	vendorIDs := make([]string, 0, len(byVendor))
	for id := range byVendor {
		vendorIDs = append(vendorIDs, id)
	}
	sort.Strings(vendorIDs)

	var conflicts []models.VendorConflict
	for _, vendorID := range vendorIDs {
		booked := byVendor[vendorID]
		for i := 0; i < len(booked); i++ {
			for j := i + 1; j < len(booked); j++ {
				a, b := booked[i], booked[j]
				aEnd := endOrStart(a)
				bEnd := endOrStart(b)
				if !a.ScheduledStart.Before(bEnd) || !b.ScheduledStart.Before(aEnd) {
					continue
				}
				conflicts = append(conflicts, models.VendorConflict{
					VendorID:     vendorID,
					VendorName:   a.VendorName,
					FirstID:      a.ID,
					SecondID:     b.ID,
					OverlapStart: laterOf(*a.ScheduledStart, *b.ScheduledStart),
					OverlapEnd:   earlierOf(aEnd, bEnd),
				})
			}
		}
	}
	return conflicts
}

func endOrStart(item models.NormalizedScheduleItem) time.Time {
	if item.ScheduledEnd != nil {
		return *item.ScheduledEnd
	}
	return *item.ScheduledStart
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
