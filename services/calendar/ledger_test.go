package calendar

import (
	"testing"

	"pawcal/models"
)

func TestLedger_ValueSemantics(t *testing.T) {
	t.Parallel()

	base := NewLedger(nil)
	rec := models.DayRecord{Date: "2024-06-10", IsAvailable: false, Origin: models.SourceManual}

	with := base.With(rec)
	if base.Len() != 0 {
		t.Fatal("With must not mutate the receiver")
	}
	if got, ok := with.Record("2024-06-10"); !ok || !recordsEqual(got, rec) {
		t.Fatalf("unexpected record: %+v", got)
	}

	without := with.Without("2024-06-10")
	if with.Len() != 1 {
		t.Fatal("Without must not mutate the receiver")
	}
	if without.Len() != 0 {
		t.Fatal("expected the date cleared")
	}
}

func TestLedger_StatusDistinguishesImplicitFromExplicit(t *testing.T) {
	t.Parallel()

	rec := models.DayRecord{Date: "2024-06-10", IsAvailable: true, Origin: models.SourceManual}
	l := NewLedger(map[string]models.DayRecord{rec.Date: rec})

	if status := l.Status("2024-06-10"); !status.Explicit {
		t.Fatal("expected an explicit status for a recorded date")
	}
	if status := l.Status("2024-06-11"); status.Explicit {
		t.Fatal("expected an implicit status for an untouched date")
	}
}

func TestNewLedger_CopiesInput(t *testing.T) {
	t.Parallel()

	records := map[string]models.DayRecord{
		"2024-06-10": {Date: "2024-06-10", IsAvailable: false},
	}
	l := NewLedger(records)
	delete(records, "2024-06-10")
	if l.Len() != 1 {
		t.Fatal("ledger must own a copy of the input map")
	}
}

func TestDiffLedgers(t *testing.T) {
	t.Parallel()

	a := models.DayRecord{Date: "2024-06-10", IsAvailable: false, Origin: models.SourceDefault}
	b := models.DayRecord{Date: "2024-06-11", IsAvailable: true, Origin: models.SourceManual,
		Windows: []models.TimeWindow{{Start: "09:00", End: "10:00", Source: models.SourceManual}}}
	bChanged := b
	bChanged.Windows = nil
	c := models.DayRecord{Date: "2024-06-12", IsAvailable: false, Origin: models.SourceManual}

	before := NewLedger(map[string]models.DayRecord{a.Date: a, b.Date: b})
	after := NewLedger(map[string]models.DayRecord{b.Date: bChanged, c.Date: c})

	diff := DiffLedgers(before, after)
	if len(diff.Changes) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(diff.Changes))
	}

	// Changes come back ordered by date.
	if diff.Changes[0].Date != "2024-06-10" || diff.Changes[0].After != nil {
		t.Fatalf("expected 2024-06-10 removed, got %+v", diff.Changes[0])
	}
	if diff.Changes[1].Date != "2024-06-11" || diff.Changes[1].Before == nil || diff.Changes[1].After == nil {
		t.Fatalf("expected 2024-06-11 modified, got %+v", diff.Changes[1])
	}
	if diff.Changes[2].Date != "2024-06-12" || diff.Changes[2].Before != nil {
		t.Fatalf("expected 2024-06-12 added, got %+v", diff.Changes[2])
	}
}

func TestDiffLedgers_IdenticalLedgersProduceEmptyDiff(t *testing.T) {
	t.Parallel()

	rec := models.DayRecord{Date: "2024-06-10", IsAvailable: false}
	l := NewLedger(map[string]models.DayRecord{rec.Date: rec})
	if diff := DiffLedgers(l, l.clone()); !diff.IsEmpty() {
		t.Fatalf("expected an empty diff, got %d changes", len(diff.Changes))
	}
}
