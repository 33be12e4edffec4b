package calendar

import (
	"testing"

	"pawcal/models"
)

func TestFreeIntervals_SubtractsWindowsAndBookings(t *testing.T) {
	t.Parallel()

	record := models.DayRecord{
		Date:        "2024-06-10",
		IsAvailable: true,
		Windows: []models.TimeWindow{
			{Start: "09:00", End: "11:00", Source: models.SourceManual},
		},
	}
	bookings := []models.Booking{
		{ID: "b1", Date: "2024-06-10", Start: "14:00", End: "15:30"},
	}

	got, err := FreeIntervals(DateStatus{Explicit: true, Record: record}, bookings, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][2]string{
		{"00:00", "09:00"},
		{"11:00", "14:00"},
		{"15:30", "24:00"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d intervals, got %d: %+v", len(want), len(got), got)
	}
	for i, iv := range got {
		if iv.Start != want[i][0] || iv.End != want[i][1] {
			t.Fatalf("interval %d: expected %s-%s, got %s-%s", i, want[i][0], want[i][1], iv.Start, iv.End)
		}
	}
}

func TestFreeIntervals_MinDurationFilters(t *testing.T) {
	t.Parallel()

	record := models.DayRecord{
		Date:        "2024-06-10",
		IsAvailable: true,
		Windows: []models.TimeWindow{
			{Start: "00:00", End: "09:00", Source: models.SourceManual},
			{Start: "10:00", End: "24:00", Source: models.SourceManual},
		},
	}

	got, err := FreeIntervals(DateStatus{Explicit: true, Record: record}, nil, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("a 60-minute gap cannot fit 90 minutes, got %+v", got)
	}

	got, err = FreeIntervals(DateStatus{Explicit: true, Record: record}, nil, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Start != "09:00" || got[0].End != "10:00" {
		t.Fatalf("expected the 09:00-10:00 gap, got %+v", got)
	}
	if got[0].Label != "09:00 - 10:00" {
		t.Fatalf("unexpected label %q", got[0].Label)
	}
}

func TestFreeIntervals_FullDayBlockHasNoFreeTime(t *testing.T) {
	t.Parallel()

	record := models.DayRecord{Date: "2024-06-10", IsAvailable: false, Origin: models.SourceDefault}
	got, err := FreeIntervals(DateStatus{Explicit: true, Record: record}, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no free intervals, got %+v", got)
	}
}

func TestFreeIntervals_UntouchedDateIsWholeDay(t *testing.T) {
	t.Parallel()

	got, err := FreeIntervals(DateStatus{}, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Start != "00:00" || got[0].End != "24:00" {
		t.Fatalf("expected the whole day free, got %+v", got)
	}
}

func TestFreeIntervals_OvernightWindowBlocksRestOfDay(t *testing.T) {
	t.Parallel()

	record := models.DayRecord{
		Date:        "2024-06-10",
		IsAvailable: true,
		Windows: []models.TimeWindow{
			{Start: "22:00", End: "00:00", Source: models.SourceBooking, BookingRef: "b1"},
		},
	}
	got, err := FreeIntervals(DateStatus{Explicit: true, Record: record}, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Start != "00:00" || got[0].End != "22:00" {
		t.Fatalf("expected 00:00-22:00 free, got %+v", got)
	}
}
