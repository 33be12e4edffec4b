package models

// Source tags where an unavailable window originated.
type Source string

const (
	// SourceDefault marks windows materialized from a recurring weekly rule.
	SourceDefault Source = "default"
	// SourceManual marks windows added by the professional for a specific date.
	SourceManual Source = "manual"
	// SourceBooking marks windows derived from confirmed bookings. These are
	// read-only to the calendar engine.
	SourceBooking Source = "booking"
)

// Day boundary sentinels. "24:00" is an exclusive end-of-day marker; "00:00"
// as an end time means midnight of the following day and is only valid on
// windows explicitly flagged overnight. Collaborator code still emits these
// exact strings, so they must be preserved on the wire.
const (
	StartOfDay = "00:00"
	EndOfDay   = "24:00"
)

// TimeWindow is a start-end time range on a single date during which the
// professional is unavailable, tagged with why and where it came from.
type TimeWindow struct {
	ID         string   `bson:"id,omitempty" json:"id,omitempty"`
	Start      string   `bson:"start" json:"start"` // "HH:MM", 24-hour
	End        string   `bson:"end" json:"end"`     // "HH:MM"; "24:00" = end of day
	Reason     string   `bson:"reason,omitempty" json:"reason,omitempty"`
	Source     Source   `bson:"source" json:"source"`
	Services   []string `bson:"services,omitempty" json:"services,omitempty"`
	BookingRef string   `bson:"bookingRef,omitempty" json:"bookingRef,omitempty"`
}

// IsFullDay reports whether the window spans the whole day.
func (w TimeWindow) IsFullDay() bool {
	return w.Start == StartOfDay && w.End == EndOfDay
}

// DayRecord holds the availability state of one calendar date. A date with no
// record is implicitly fully available. IsAvailable=false with no windows is
// shorthand for "unavailable all day".
type DayRecord struct {
	Date        string       `bson:"date" json:"date"` // "YYYY-MM-DD"
	IsAvailable bool         `bson:"isAvailable" json:"isAvailable"`
	Origin      Source       `bson:"origin,omitempty" json:"origin,omitempty"`
	Windows     []TimeWindow `bson:"windows,omitempty" json:"windows,omitempty"`
}

// HasManualData reports whether the record was created or touched by an
// explicit per-date edit. Recurrence expansion never overwrites such records.
func (r DayRecord) HasManualData() bool {
	if r.Origin == SourceManual {
		return true
	}
	for _, w := range r.Windows {
		if w.Source == SourceManual {
			return true
		}
	}
	return false
}

// ManualWindows returns only the windows the professional added by hand.
func (r DayRecord) ManualWindows() []TimeWindow {
	var out []TimeWindow
	for _, w := range r.Windows {
		if w.Source == SourceManual {
			out = append(out, w)
		}
	}
	return out
}

// WeeklyDefaultRule is the professional's recurring default for one weekday.
type WeeklyDefaultRule struct {
	ID             string `bson:"id,omitempty" json:"id,omitempty"`
	DayOfWeek      int    `bson:"dayOfWeek" json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday
	IsUnavailable  bool   `bson:"isUnavailable" json:"isUnavailable"`
	IsAllDay       bool   `bson:"isAllDay" json:"isAllDay"`
	Start          string `bson:"start,omitempty" json:"start,omitempty"`
	End            string `bson:"end,omitempty" json:"end,omitempty"`
	EffectiveUntil string `bson:"effectiveUntil,omitempty" json:"effectiveUntil,omitempty"` // "YYYY-MM-DD"
}

// AvailabilityDecision is one batch-edit choice applied across selected dates.
type AvailabilityDecision struct {
	IsAvailable bool     `json:"isAvailable"`
	IsAllDay    bool     `json:"isAllDay"`
	Start       string   `json:"start,omitempty"`
	End         string   `json:"end,omitempty"`
	Services    []string `json:"services"`
}

// DateChange records one date's state before and after a batch edit. A nil
// Before means the date had no record; a nil After means the record was
// cleared back to implicit availability.
type DateChange struct {
	Date   string     `bson:"date" json:"date"`
	Before *DayRecord `bson:"before,omitempty" json:"before,omitempty"`
	After  *DayRecord `bson:"after,omitempty" json:"after,omitempty"`
}

// LedgerDiff is the set of per-date changes produced by one engine operation.
// Callers use it to recompute render state and persist only the touched dates.
type LedgerDiff struct {
	Changes []DateChange `bson:"changes" json:"changes"`
}

// IsEmpty reports whether the diff touched no dates.
func (d LedgerDiff) IsEmpty() bool { return len(d.Changes) == 0 }

// Dates returns the touched dates in diff order.
func (d LedgerDiff) Dates() []string {
	out := make([]string, 0, len(d.Changes))
	for _, c := range d.Changes {
		out = append(out, c.Date)
	}
	return out
}

// Category is the display classification of one calendar date.
type Category string

const (
	CategoryAvailable            Category = "available"
	CategoryPartiallyUnavailable Category = "partiallyUnavailable"
	CategoryUnavailableAllDay    Category = "unavailableAllDay"
	CategoryBookedAllDay         Category = "bookedAllDay"
)

// AvailabilitySnapshot is the engine's input: the materialized day records and
// the confirmed bookings, fetched once by the caller-owned storage layer.
type AvailabilitySnapshot struct {
	Records  map[string]DayRecord `json:"records"`  // keyed by date
	Bookings map[string][]Booking `json:"bookings"` // keyed by date
}
