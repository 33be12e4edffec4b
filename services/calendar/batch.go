package calendar

import (
	"strings"

	"github.com/google/uuid"

	"pawcal/models"
)

// ManualReasonPrefix prefixes the reason on manually added unavailable
// windows; the service scope is appended for display.
const ManualReasonPrefix = "Unavailable for: "

// ApplyAvailabilityChange applies one availability decision across the
// selected dates and returns the updated ledger plus a diff of the touched
// dates.
//
// Validation is all-or-nothing: a missing service scope, an invalid time
// window, a malformed date, or a duplicate manual slot anywhere in the batch
// aborts before any date is changed. Application is then per date: marking
// unavailable appends a Manual window; marking available removes the
// exact-match Manual window and is an idempotent no-op on dates that carry
// none.
func ApplyAvailabilityChange(dates []string, decision models.AvailabilityDecision, ledger Ledger) (Ledger, models.LedgerDiff, error) {
	if len(dates) == 0 {
		return Ledger{}, models.LedgerDiff{}, NewValidationError("no dates selected")
	}
	if len(decision.Services) == 0 {
		return Ledger{}, models.LedgerDiff{}, NewValidationError("a service scope is required for availability changes")
	}

	start, end := decision.Start, decision.End
	if decision.IsAllDay {
		start, end = models.StartOfDay, models.EndOfDay
	} else if err := ValidateRange(start, end, false); err != nil {
		return Ledger{}, models.LedgerDiff{}, err
	}

	unique := dedupeDates(dates)
	for _, date := range unique {
		if _, err := parseDate(date); err != nil {
			return Ledger{}, models.LedgerDiff{}, err
		}
		if !decision.IsAvailable {
			if rec, ok := ledger.Record(date); ok && findManualWindow(rec, start, end) >= 0 {
				return Ledger{}, models.LedgerDiff{}, NewValidationError("an unavailable slot %s-%s already exists on %s", start, end, date)
			}
		}
	}

	next := ledger.clone()
	var diff models.LedgerDiff
	reason := ManualReasonPrefix + strings.Join(decision.Services, ", ")

	for _, date := range unique {
		before, hadBefore := next.records[date]

		if decision.IsAvailable {
			if !hadBefore {
				continue
			}
			idx := findManualWindow(before, start, end)
			if idx < 0 {
				// Nothing to un-mark; keep the batch idempotent.
				continue
			}
			after, keep := removeWindow(before, idx)
			bc := before
			change := models.DateChange{Date: date, Before: &bc}
			if keep {
				next.records[date] = after
				ac := after
				change.After = &ac
			} else {
				delete(next.records, date)
			}
			diff.Changes = append(diff.Changes, change)
			continue
		}

		window := models.TimeWindow{
			ID:       uuid.NewString(),
			Start:    start,
			End:      end,
			Reason:   reason,
			Source:   models.SourceManual,
			Services: append([]string(nil), decision.Services...),
		}

		after := models.DayRecord{Date: date, IsAvailable: true}
		if hadBefore {
			after = before
			after.Windows = append(append([]models.TimeWindow(nil), before.Windows...), window)
		} else {
			after.Windows = []models.TimeWindow{window}
		}
		after.Origin = models.SourceManual
		sortWindows(after.Windows)
		if hasFullDayBlock(after) {
			after.IsAvailable = false
		}

		next.records[date] = after
		change := models.DateChange{Date: date, After: &after}
		if hadBefore {
			bc := before
			change.Before = &bc
		}
		diff.Changes = append(diff.Changes, change)
	}

	return next, diff, nil
}

// findManualWindow returns the index of the Manual window with the exact
// (start, end) key, or -1.
func findManualWindow(rec models.DayRecord, start, end string) int {
	for i, w := range rec.Windows {
		if w.Source == models.SourceManual && w.Start == start && w.End == end {
			return i
		}
	}
	return -1
}

// removeWindow drops the window at idx and reports whether the record still
// carries anything worth keeping. A record reduced to nothing returns the
// date to implicit availability.
func removeWindow(rec models.DayRecord, idx int) (models.DayRecord, bool) {
	windows := make([]models.TimeWindow, 0, len(rec.Windows)-1)
	windows = append(windows, rec.Windows[:idx]...)
	windows = append(windows, rec.Windows[idx+1:]...)

	out := rec
	out.Windows = windows
	if len(windows) == 0 {
		return out, false
	}

	manualLeft := false
	for _, w := range windows {
		if w.Source == models.SourceManual {
			manualLeft = true
			break
		}
	}
	if !manualLeft {
		out.Origin = ""
		for _, w := range windows {
			if w.Source == models.SourceDefault {
				out.Origin = models.SourceDefault
				break
			}
		}
	}
	out.IsAvailable = !hasFullDayBlockWindows(windows)
	return out, true
}

func hasFullDayBlockWindows(windows []models.TimeWindow) bool {
	for _, w := range windows {
		if w.IsFullDay() && (w.Source == models.SourceManual || w.Source == models.SourceDefault) {
			return true
		}
	}
	return false
}

func dedupeDates(dates []string) []string {
	seen := make(map[string]bool, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
