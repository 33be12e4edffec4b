package calendar

import (
	"fmt"

	"pawcal/models"
)

// continuousInterval is a helper struct over minutes since midnight.
type continuousInterval struct {
	Start int
	End   int
}

// FreeIntervals computes the conflict-free time ranges of one date: the whole
// day minus every unavailable window and booking, keeping only blocks that
// can fit minDurationMinutes. Booking time-range pickers feed from this.
func FreeIntervals(status DateStatus, bookings []models.Booking, minDurationMinutes int) ([]models.AvailableInterval, error) {
	if status.Explicit && hasFullDayBlock(status.Record) {
		return []models.AvailableInterval{}, nil
	}

	busy, err := busyIntervals(status, bookings)
	if err != nil {
		return nil, err
	}

	free := subtractIntervals(continuousInterval{Start: 0, End: minutesPerDay}, busy)

	out := []models.AvailableInterval{}
	for _, iv := range free {
		if iv.End-iv.Start < minDurationMinutes {
			continue
		}
		out = append(out, models.AvailableInterval{
			Start: formatClock(iv.Start),
			End:   formatClock(iv.End),
			Label: fmt.Sprintf("%s - %s", formatClock(iv.Start), formatClock(iv.End)),
		})
	}
	return out, nil
}

func busyIntervals(status DateStatus, bookings []models.Booking) ([]continuousInterval, error) {
	var busy []continuousInterval
	if status.Explicit {
		for _, w := range status.Record.Windows {
			iv, err := toInterval(w.Start, w.End)
			if err != nil {
				return nil, err
			}
			busy = append(busy, iv)
		}
	}
	for _, b := range bookings {
		iv, err := toInterval(b.Start, b.End)
		if err != nil {
			return nil, err
		}
		busy = append(busy, iv)
	}
	return busy, nil
}

func toInterval(start, end string) (continuousInterval, error) {
	s, err := parseClock(start, false)
	if err != nil {
		return continuousInterval{}, err
	}
	e, err := parseClock(end, true)
	if err != nil {
		return continuousInterval{}, err
	}
	if end == models.StartOfDay {
		// Overnight windows occupy the remainder of this date.
		e = minutesPerDay
	}
	return continuousInterval{Start: s, End: e}, nil
}

// subtractIntervals carves the blocked intervals out of the working span,
// splitting it into the continuous blocks that remain.
func subtractIntervals(working continuousInterval, blocked []continuousInterval) []continuousInterval {
	available := []continuousInterval{working}
	for _, block := range blocked {
		var updated []continuousInterval
		for _, iv := range available {
			if block.End <= iv.Start || block.Start >= iv.End {
				updated = append(updated, iv)
				continue
			}
			if block.Start > iv.Start {
				updated = append(updated, continuousInterval{Start: iv.Start, End: block.Start})
			}
			if block.End < iv.End {
				updated = append(updated, continuousInterval{Start: block.End, End: iv.End})
			}
		}
		available = updated
	}
	return available
}
