package calendar

import (
	"pawcal/models"
)

// Classify maps one date's ledger state plus its bookings to the display
// category the calendar paints it with.
//
// Precedence: a whole-day block from a default rule or manual edit covering
// every offered service wins; a whole-day block scoped to only some services
// is merely partial. A full-day booking then beats partial-unavailable
// coloring. Anything else with windows or bookings is partial; an untouched
// date is available.
func Classify(status DateStatus, bookings []models.Booking, offeredServices []string) models.Category {
	if !status.Explicit && len(bookings) == 0 {
		return models.CategoryAvailable
	}

	if status.Explicit && hasFullDayBlock(status.Record) {
		if blockCoversServices(status.Record, offeredServices) {
			return models.CategoryUnavailableAllDay
		}
		return models.CategoryPartiallyUnavailable
	}

	for _, b := range bookings {
		if b.IsFullDay() {
			return models.CategoryBookedAllDay
		}
	}

	if status.Explicit && len(status.Record.Windows) > 0 {
		return models.CategoryPartiallyUnavailable
	}
	if len(bookings) > 0 {
		return models.CategoryPartiallyUnavailable
	}
	return models.CategoryAvailable
}

// blockCoversServices reports whether the record's whole-day block applies to
// every service the professional offers. All-day default records carry no
// window list and block everything.
func blockCoversServices(rec models.DayRecord, offeredServices []string) bool {
	if len(offeredServices) == 0 {
		return true
	}

	covered := make(map[string]bool)
	unscoped := false
	if !rec.IsAvailable && len(rec.Windows) == 0 {
		unscoped = true
	}
	for _, w := range rec.Windows {
		if !w.IsFullDay() || (w.Source != models.SourceManual && w.Source != models.SourceDefault) {
			continue
		}
		if len(w.Services) == 0 {
			unscoped = true
			continue
		}
		for _, s := range w.Services {
			covered[s] = true
		}
	}
	if unscoped {
		return true
	}
	for _, s := range offeredServices {
		if !covered[s] {
			return false
		}
	}
	return true
}

// RenderRange projects the ledger and bookings onto display categories for
// every date in [fromDate, toDate], inclusive.
func RenderRange(ledger Ledger, bookings map[string][]models.Booking, offeredServices []string, fromDate, toDate string) (map[string]models.Category, error) {
	from, err := parseDate(fromDate)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(toDate)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, NewValidationError("date range %s to %s is reversed", fromDate, toDate)
	}

	out := make(map[string]models.Category)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		out[date] = Classify(ledger.Status(date), bookings[date], offeredServices)
	}
	return out, nil
}
