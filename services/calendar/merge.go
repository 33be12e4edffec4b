package calendar

import (
	"fmt"

	"pawcal/models"
)

type windowKey struct {
	start string
	end   string
}

// Reconcile combines the professional's own unavailable windows (manual and
// default sourced) with booking occupancy into one date's merged view.
//
// Booking windows are always included and win any (start, end) collision with
// an own window: bookings are authoritative and not editable here. The merged
// window list is sorted by start, ties broken by end. The day stays available
// unless an own window blocks the whole day; a full-day booking does not flip
// IsAvailable, it is a render-level distinction (see Classify).
func Reconcile(date string, ownWindows []models.TimeWindow, bookings []models.Booking) models.DayRecord {
	taken := make(map[windowKey]bool, len(bookings))
	merged := make([]models.TimeWindow, 0, len(ownWindows)+len(bookings))

	for _, b := range bookings {
		if b.Date != date {
			continue
		}
		key := windowKey{start: b.Start, end: b.End}
		if taken[key] {
			continue
		}
		taken[key] = true
		merged = append(merged, bookingWindow(b))
	}

	origin := models.Source("")
	for _, w := range ownWindows {
		key := windowKey{start: w.Start, end: w.End}
		if taken[key] {
			// A booking already occupies this exact slot; it wins.
			continue
		}
		taken[key] = true
		merged = append(merged, w)
		switch w.Source {
		case models.SourceManual:
			origin = models.SourceManual
		case models.SourceDefault:
			if origin != models.SourceManual {
				origin = models.SourceDefault
			}
		}
	}
	sortWindows(merged)

	rec := models.DayRecord{
		Date:        date,
		Origin:      origin,
		IsAvailable: true,
		Windows:     merged,
	}
	for _, w := range merged {
		if w.IsFullDay() && (w.Source == models.SourceManual || w.Source == models.SourceDefault) {
			rec.IsAvailable = false
			break
		}
	}
	return rec
}

// bookingWindow converts a confirmed booking into its read-only occupancy
// window.
func bookingWindow(b models.Booking) models.TimeWindow {
	return models.TimeWindow{
		Start:      b.Start,
		End:        b.End,
		Reason:     fmt.Sprintf("Booked: %s", b.CounterpartyName),
		Source:     models.SourceBooking,
		Services:   []string{b.ServiceType},
		BookingRef: b.ID,
	}
}
