package calendar

import (
	"time"

	"pawcal/models"
)

// DefaultReason is the display reason attached to windows materialized from a
// weekly default rule. Collaborator code matches on the exact string.
const DefaultReason = "Default Setting"

// DefaultHorizonDays bounds how far into the future weekly rules are
// expanded when neither the rule nor the caller narrows it.
const DefaultHorizonDays = 365

// Expander materializes weekly default rules into concrete dated records.
// Expansion is idempotent and never touches dates the professional has
// edited by hand.
type Expander struct {
	// Now supplies "today"; defaults to time.Now. Tests pin it.
	Now func() time.Time
	// HorizonDays overrides the default one-year expansion bound.
	HorizonDays int
}

func (e *Expander) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Expander) horizonDays() int {
	if e.HorizonDays > 0 {
		return e.HorizonDays
	}
	return DefaultHorizonDays
}

// Expand applies the weekly rule set to the ledger and returns the updated
// ledger together with the Default-origin records it materialized.
//
// Rules marked unavailable seed records for every matching future date up to
// min(rule.EffectiveUntil, horizon); rules marked available clear previously
// expanded Default-origin records for their weekday. Dates carrying manual
// edits are skipped in both directions, and Booking-sourced windows already
// on a date are preserved. horizonDate may be empty to use the default
// one-year horizon.
func (e *Expander) Expand(rules []models.WeeklyDefaultRule, horizonDate string, ledger Ledger) (Ledger, []models.DayRecord, error) {
	if err := validateRules(rules); err != nil {
		return Ledger{}, nil, err
	}

	today := midnight(e.now())
	horizon := today.AddDate(0, 0, e.horizonDays())
	if horizonDate != "" {
		h, err := parseDate(horizonDate)
		if err != nil {
			return Ledger{}, nil, err
		}
		if h.Before(horizon) {
			horizon = h
		}
	}

	next := ledger.clone()
	var materialized []models.DayRecord

	for _, rule := range rules {
		if !rule.IsUnavailable {
			clearExpandedWeekday(next, rule.DayOfWeek, today)
			continue
		}

		bound := horizon
		if rule.EffectiveUntil != "" {
			until, err := parseDate(rule.EffectiveUntil)
			if err != nil {
				return Ledger{}, nil, err
			}
			if until.Before(bound) {
				bound = until
			}
		}

		for d := today; !d.After(bound); d = d.AddDate(0, 0, 1) {
			if int(d.Weekday()) != rule.DayOfWeek {
				continue
			}
			date := d.Format(dateLayout)
			if existing, ok := next.records[date]; ok && existing.HasManualData() {
				// Manual overrides always win over default rules.
				continue
			}
			rec := e.materialize(rule, date, next)
			next.records[date] = rec
			materialized = append(materialized, rec)
		}
	}

	return next, materialized, nil
}

// materialize builds the Default-origin record for one date, carrying over
// any Booking-sourced windows already recorded there.
func (e *Expander) materialize(rule models.WeeklyDefaultRule, date string, l Ledger) models.DayRecord {
	var windows []models.TimeWindow
	if existing, ok := l.records[date]; ok {
		for _, w := range existing.Windows {
			if w.Source == models.SourceBooking {
				windows = append(windows, w)
			}
		}
	}

	rec := models.DayRecord{
		Date:        date,
		Origin:      models.SourceDefault,
		IsAvailable: true,
	}
	if rule.IsAllDay {
		rec.IsAvailable = false
		rec.Windows = windows
		return rec
	}

	windows = append(windows, models.TimeWindow{
		Start:  rule.Start,
		End:    rule.End,
		Reason: DefaultReason,
		Source: models.SourceDefault,
	})
	sortWindows(windows)
	rec.Windows = windows
	return rec
}

// clearExpandedWeekday removes Default-origin records for future dates on the
// given weekday. Manual and booking data is never touched.
func clearExpandedWeekday(l Ledger, dayOfWeek int, today time.Time) {
	for date, rec := range l.records {
		if rec.Origin != models.SourceDefault || rec.HasManualData() {
			continue
		}
		d, err := parseDate(date)
		if err != nil || d.Before(today) {
			continue
		}
		if int(d.Weekday()) != dayOfWeek {
			continue
		}
		kept := rec.Windows[:0:0]
		for _, w := range rec.Windows {
			if w.Source == models.SourceBooking {
				kept = append(kept, w)
			}
		}
		if len(kept) == 0 {
			delete(l.records, date)
			continue
		}
		rec.Windows = kept
		rec.IsAvailable = true
		rec.Origin = ""
		l.records[date] = rec
	}
}

func validateRules(rules []models.WeeklyDefaultRule) error {
	seen := make(map[int]bool, len(rules))
	for _, rule := range rules {
		if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
			return NewValidationError("day of week %d out of range", rule.DayOfWeek)
		}
		if seen[rule.DayOfWeek] {
			return NewValidationError("duplicate rule for weekday %d", rule.DayOfWeek)
		}
		seen[rule.DayOfWeek] = true
		if rule.IsUnavailable && !rule.IsAllDay {
			if err := ValidateRange(rule.Start, rule.End, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
