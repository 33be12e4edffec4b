package calendar

import (
	"fmt"
	"time"

	"pawcal/models"
)

const (
	dateLayout    = "2006-01-02"
	minutesPerDay = 24 * 60
)

// parseClock converts a zero-padded "HH:MM" string to minutes since midnight.
// "24:00" is accepted only when endOfDayOK is set.
func parseClock(value string, endOfDayOK bool) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, NewInvalidRangeError("malformed time %q, want HH:MM", value)
	}
	var hh, mm int
	if _, err := fmt.Sscanf(value, "%02d:%02d", &hh, &mm); err != nil {
		return 0, NewInvalidRangeError("malformed time %q, want HH:MM", value)
	}
	if mm < 0 || mm > 59 {
		return 0, NewInvalidRangeError("minute out of range in %q", value)
	}
	if hh == 24 {
		if !endOfDayOK || mm != 0 {
			return 0, NewInvalidRangeError("%q is only valid as an end-of-day marker", value)
		}
		return minutesPerDay, nil
	}
	if hh < 0 || hh > 23 {
		return 0, NewInvalidRangeError("hour out of range in %q", value)
	}
	return hh*60 + mm, nil
}

// parseDate parses a "YYYY-MM-DD" calendar date.
func parseDate(value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, NewValidationError("malformed date %q, want YYYY-MM-DD", value)
	}
	return d, nil
}

// ValidateRange checks that start and end form a usable window. An end of
// "00:00" is read as midnight of the following day when overnightAllowed is
// set; otherwise end must be strictly after start. End may be the "24:00"
// end-of-day sentinel.
func ValidateRange(start, end string, overnightAllowed bool) error {
	if start == end {
		return NewInvalidRangeError("start and end are both %s", start)
	}
	startMin, err := parseClock(start, false)
	if err != nil {
		return err
	}
	endMin, err := parseClock(end, true)
	if err != nil {
		return err
	}
	if end == models.StartOfDay {
		if !overnightAllowed {
			return NewInvalidRangeError("end %s is before start %s", end, start)
		}
		return nil
	}
	if endMin < startMin {
		return NewInvalidRangeError("end %s is before start %s", end, start)
	}
	return nil
}

// DurationMinutes returns the length of a same-day window in minutes. An end
// of "24:00", or "00:00" on an overnight window, measures to end of day.
// Multi-day spans are measured in nights via NightsBetween, not minutes.
func DurationMinutes(start, end string, overnight bool) (int, error) {
	if err := ValidateRange(start, end, overnight); err != nil {
		return 0, err
	}
	startMin, err := parseClock(start, false)
	if err != nil {
		return 0, err
	}
	endMin := minutesPerDay
	if end != models.EndOfDay && !(end == models.StartOfDay && overnight) {
		endMin, err = parseClock(end, false)
		if err != nil {
			return 0, err
		}
	}
	return endMin - startMin, nil
}

// NightsBetween counts the nights spanned by two calendar dates. Equal dates
// are a same-day stay of zero nights; a three-day span such as May 14-16 is
// two nights.
func NightsBetween(startDate, endDate string) (int, error) {
	from, err := parseDate(startDate)
	if err != nil {
		return 0, err
	}
	to, err := parseDate(endDate)
	if err != nil {
		return 0, err
	}
	diff := to.Sub(from)
	if diff < 0 {
		diff = -diff
	}
	days := int((diff + 12*time.Hour) / (24 * time.Hour))
	return days, nil
}

// formatClock renders minutes since midnight back to "HH:MM", preserving the
// "24:00" end-of-day sentinel.
func formatClock(minutes int) string {
	if minutes >= minutesPerDay {
		return models.EndOfDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
