package calendar

import (
	"testing"
	"time"

	"pawcal/models"
)

// fixedNow pins "today" to Monday 2024-06-03.
func fixedNow() time.Time {
	return time.Date(2024, time.June, 3, 10, 30, 0, 0, time.UTC)
}

func testExpander() *Expander {
	return &Expander{Now: fixedNow, HorizonDays: 14}
}

func TestExpander_AllDayRuleMaterializesMatchingDates(t *testing.T) {
	t.Parallel()

	rules := []models.WeeklyDefaultRule{
		{DayOfWeek: 1, IsUnavailable: true, IsAllDay: true},
	}

	next, materialized, err := testExpander().Expand(rules, "", NewLedger(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDates := []string{"2024-06-03", "2024-06-10", "2024-06-17"}
	if len(materialized) != len(wantDates) {
		t.Fatalf("expected %d materialized records, got %d", len(wantDates), len(materialized))
	}
	for i, date := range wantDates {
		rec, ok := next.Record(date)
		if !ok {
			t.Fatalf("expected a record for %s", date)
		}
		if rec.IsAvailable {
			t.Fatalf("%s: all-day rule must mark the date unavailable", date)
		}
		if rec.Origin != models.SourceDefault {
			t.Fatalf("%s: expected default origin, got %q", date, rec.Origin)
		}
		if len(rec.Windows) != 0 {
			t.Fatalf("%s: all-day records carry no windows, got %d", date, len(rec.Windows))
		}
		if materialized[i].Date != date {
			t.Fatalf("materialized[%d] = %s, want %s", i, materialized[i].Date, date)
		}
	}
	if _, ok := next.Record("2024-06-04"); ok {
		t.Fatal("Tuesday must not be materialized by a Monday rule")
	}
}

func TestExpander_PartialRuleProducesDefaultWindow(t *testing.T) {
	t.Parallel()

	rules := []models.WeeklyDefaultRule{
		{DayOfWeek: 2, IsUnavailable: true, Start: "13:00", End: "15:00"},
	}

	next, _, err := testExpander().Expand(rules, "", NewLedger(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, ok := next.Record("2024-06-04")
	if !ok {
		t.Fatal("expected a record for Tuesday 2024-06-04")
	}
	if !rec.IsAvailable {
		t.Fatal("partial rules keep the date available at the day level")
	}
	if len(rec.Windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(rec.Windows))
	}
	w := rec.Windows[0]
	if w.Start != "13:00" || w.End != "15:00" {
		t.Fatalf("unexpected window %s-%s", w.Start, w.End)
	}
	if w.Reason != DefaultReason {
		t.Fatalf("expected reason %q, got %q", DefaultReason, w.Reason)
	}
	if w.Source != models.SourceDefault {
		t.Fatalf("expected default source, got %q", w.Source)
	}
}

func TestExpander_NeverClobbersManualRecords(t *testing.T) {
	t.Parallel()

	manual := models.DayRecord{
		Date:        "2024-06-10",
		IsAvailable: true,
		Origin:      models.SourceManual,
		Windows: []models.TimeWindow{
			{Start: "08:00", End: "09:00", Reason: "Unavailable for: Grooming", Source: models.SourceManual},
		},
	}
	ledger := NewLedger(map[string]models.DayRecord{manual.Date: manual})

	rules := []models.WeeklyDefaultRule{
		{DayOfWeek: 1, IsUnavailable: true, IsAllDay: true},
	}
	next, _, err := testExpander().Expand(rules, "", ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, ok := next.Record("2024-06-10")
	if !ok {
		t.Fatal("manual record disappeared")
	}
	if !recordsEqual(rec, manual) {
		t.Fatalf("manual record was rewritten by expansion: %+v", rec)
	}
	if _, ok := next.Record("2024-06-03"); !ok {
		t.Fatal("other Mondays should still be materialized")
	}
}

func TestExpander_Idempotent(t *testing.T) {
	t.Parallel()

	rules := []models.WeeklyDefaultRule{
		{DayOfWeek: 1, IsUnavailable: true, IsAllDay: true},
		{DayOfWeek: 3, IsUnavailable: true, Start: "09:00", End: "12:00"},
	}
	e := testExpander()

	once, _, err := e.Expand(rules, "", NewLedger(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, _, err := e.Expand(rules, "", once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := DiffLedgers(once, twice); !diff.IsEmpty() {
		t.Fatalf("expansion is not idempotent, second run changed %d dates", len(diff.Changes))
	}
}

func TestExpander_AvailableRuleClearsExpandedRecords(t *testing.T) {
	t.Parallel()

	e := testExpander()
	unavailable := []models.WeeklyDefaultRule{
		{DayOfWeek: 1, IsUnavailable: true, IsAllDay: true},
	}
	seeded, _, err := e.Expand(unavailable, "", NewLedger(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seeded.Len() == 0 {
		t.Fatal("seeding produced no records")
	}

	// Flip Monday back to available; expanded records must be cleared.
	available := []models.WeeklyDefaultRule{
		{DayOfWeek: 1, IsUnavailable: false},
	}
	cleared, _, err := e.Expand(available, "", seeded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleared.Len() != 0 {
		t.Fatalf("expected all default records cleared, %d remain", cleared.Len())
	}
}

func TestExpander_ClearLeavesManualAndBookingData(t *testing.T) {
	t.Parallel()

	manual := models.DayRecord{
		Date:   "2024-06-10",
		Origin: models.SourceManual,
		Windows: []models.TimeWindow{
			{Start: "08:00", End: "09:00", Source: models.SourceManual},
		},
		IsAvailable: true,
	}
	withBooking := models.DayRecord{
		Date:   "2024-06-17",
		Origin: models.SourceDefault,
		Windows: []models.TimeWindow{
			{Start: "10:00", End: "11:00", Source: models.SourceBooking, BookingRef: "b1"},
			{Start: "13:00", End: "15:00", Reason: DefaultReason, Source: models.SourceDefault},
		},
		IsAvailable: true,
	}
	ledger := NewLedger(map[string]models.DayRecord{
		manual.Date:      manual,
		withBooking.Date: withBooking,
	})

	available := []models.WeeklyDefaultRule{
		{DayOfWeek: 1, IsUnavailable: false},
	}
	next, _, err := testExpander().Expand(available, "", ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec, ok := next.Record("2024-06-10"); !ok || !recordsEqual(rec, manual) {
		t.Fatal("manual record must survive clearing")
	}
	rec, ok := next.Record("2024-06-17")
	if !ok {
		t.Fatal("booking-carrying record must survive clearing")
	}
	if len(rec.Windows) != 1 || rec.Windows[0].Source != models.SourceBooking {
		t.Fatalf("expected only the booking window to remain, got %+v", rec.Windows)
	}
}

func TestExpander_EffectiveUntilBoundsExpansion(t *testing.T) {
	t.Parallel()

	rules := []models.WeeklyDefaultRule{
		{DayOfWeek: 1, IsUnavailable: true, IsAllDay: true, EffectiveUntil: "2024-06-11"},
	}
	next, _, err := testExpander().Expand(rules, "", NewLedger(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := next.Record("2024-06-10"); !ok {
		t.Fatal("2024-06-10 is inside the effective bound")
	}
	if _, ok := next.Record("2024-06-17"); ok {
		t.Fatal("2024-06-17 is past effectiveUntil and must not be materialized")
	}
}

func TestExpander_PreservesBookingWindowsOnMaterializedDates(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(map[string]models.DayRecord{
		"2024-06-10": {
			Date:        "2024-06-10",
			IsAvailable: true,
			Windows: []models.TimeWindow{
				{Start: "10:00", End: "11:00", Source: models.SourceBooking, BookingRef: "b1"},
			},
		},
	})
	rules := []models.WeeklyDefaultRule{
		{DayOfWeek: 1, IsUnavailable: true, IsAllDay: true},
	}

	next, _, err := testExpander().Expand(rules, "", ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, _ := next.Record("2024-06-10")
	if rec.IsAvailable {
		t.Fatal("expected the all-day rule to apply")
	}
	if len(rec.Windows) != 1 || rec.Windows[0].BookingRef != "b1" {
		t.Fatalf("booking window must be preserved, got %+v", rec.Windows)
	}
}

func TestExpander_RejectsBadRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rules []models.WeeklyDefaultRule
	}{
		{
			name:  "weekday out of range",
			rules: []models.WeeklyDefaultRule{{DayOfWeek: 7, IsUnavailable: true, IsAllDay: true}},
		},
		{
			name: "duplicate weekday",
			rules: []models.WeeklyDefaultRule{
				{DayOfWeek: 1, IsUnavailable: true, IsAllDay: true},
				{DayOfWeek: 1, IsUnavailable: false},
			},
		},
		{
			name:  "partial rule with reversed window",
			rules: []models.WeeklyDefaultRule{{DayOfWeek: 1, IsUnavailable: true, Start: "15:00", End: "13:00"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := testExpander().Expand(tt.rules, "", NewLedger(nil)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
