package calendar

import (
	"reflect"
	"sort"

	"pawcal/models"
)

// Ledger is the per-date source of truth for a professional's availability.
// It is a value type: engine operations never mutate a ledger in place, they
// return a new one alongside a diff describing what changed.
type Ledger struct {
	records map[string]models.DayRecord
}

// NewLedger builds a ledger from materialized day records. The input map is
// copied; the caller keeps ownership of its snapshot.
func NewLedger(records map[string]models.DayRecord) Ledger {
	l := Ledger{records: make(map[string]models.DayRecord, len(records))}
	for date, rec := range records {
		l.records[date] = rec
	}
	return l
}

// DateStatus distinguishes a date that was never set from one carrying an
// explicit record. A date with Explicit=false is implicitly fully available.
type DateStatus struct {
	Explicit bool
	Record   models.DayRecord
}

// Status returns the explicit-or-implicit state of one date.
func (l Ledger) Status(date string) DateStatus {
	if rec, ok := l.records[date]; ok {
		return DateStatus{Explicit: true, Record: rec}
	}
	return DateStatus{}
}

// Record returns the explicit record for a date, if any.
func (l Ledger) Record(date string) (models.DayRecord, bool) {
	rec, ok := l.records[date]
	return rec, ok
}

// Len returns the number of explicit day records.
func (l Ledger) Len() int { return len(l.records) }

// Dates returns all explicitly recorded dates in ascending order.
func (l Ledger) Dates() []string {
	out := make([]string, 0, len(l.records))
	for date := range l.records {
		out = append(out, date)
	}
	sort.Strings(out)
	return out
}

// Records returns a copy of the underlying date-to-record map.
func (l Ledger) Records() map[string]models.DayRecord {
	out := make(map[string]models.DayRecord, len(l.records))
	for date, rec := range l.records {
		out[date] = rec
	}
	return out
}

// With returns a ledger with the given record set.
func (l Ledger) With(rec models.DayRecord) Ledger {
	next := l.clone()
	next.records[rec.Date] = rec
	return next
}

// Without returns a ledger with the date cleared back to implicit
// availability.
func (l Ledger) Without(date string) Ledger {
	next := l.clone()
	delete(next.records, date)
	return next
}

func (l Ledger) clone() Ledger {
	return NewLedger(l.records)
}

// DiffLedgers compares two ledgers and returns the per-date changes, ordered
// by date ascending.
func DiffLedgers(before, after Ledger) models.LedgerDiff {
	seen := make(map[string]bool, len(before.records)+len(after.records))
	var dates []string
	for date := range before.records {
		seen[date] = true
		dates = append(dates, date)
	}
	for date := range after.records {
		if !seen[date] {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	var diff models.LedgerDiff
	for _, date := range dates {
		b, hadBefore := before.records[date]
		a, hasAfter := after.records[date]
		if hadBefore && hasAfter && recordsEqual(b, a) {
			continue
		}
		change := models.DateChange{Date: date}
		if hadBefore {
			bc := b
			change.Before = &bc
		}
		if hasAfter {
			ac := a
			change.After = &ac
		}
		diff.Changes = append(diff.Changes, change)
	}
	return diff
}

func recordsEqual(a, b models.DayRecord) bool {
	return reflect.DeepEqual(a, b)
}

// sortWindows orders windows by start ascending, ties broken by end
// ascending. Zero-padded HH:MM strings compare correctly as text, with the
// "24:00" sentinel sorting after every real time.
func sortWindows(windows []models.TimeWindow) {
	sort.SliceStable(windows, func(i, j int) bool {
		if windows[i].Start != windows[j].Start {
			return windows[i].Start < windows[j].Start
		}
		return windows[i].End < windows[j].End
	})
}

// hasFullDayBlock reports whether the record carries a whole-day window from
// a default rule or a manual edit, or is marked unavailable all day outright.
func hasFullDayBlock(rec models.DayRecord) bool {
	if !rec.IsAvailable {
		return true
	}
	for _, w := range rec.Windows {
		if w.IsFullDay() && (w.Source == models.SourceManual || w.Source == models.SourceDefault) {
			return true
		}
	}
	return false
}
