package calendar

import (
	"testing"

	"pawcal/models"
)

func TestReconcile_BookingWinsDuplicateKey(t *testing.T) {
	t.Parallel()

	manual := []models.TimeWindow{
		{Start: "09:00", End: "11:00", Reason: "Unavailable for: Dog Walking", Source: models.SourceManual},
	}
	bookings := []models.Booking{
		{ID: "b1", Date: "2024-06-10", Start: "09:00", End: "11:00", CounterpartyName: "Ada", ServiceType: "Dog Walking"},
	}

	rec := Reconcile("2024-06-10", manual, bookings)

	if len(rec.Windows) != 1 {
		t.Fatalf("expected 1 merged window, got %d", len(rec.Windows))
	}
	if rec.Windows[0].Source != models.SourceBooking {
		t.Fatalf("expected booking to win the (start,end) collision, got source %q", rec.Windows[0].Source)
	}
	if rec.Windows[0].BookingRef != "b1" {
		t.Fatalf("expected booking ref b1, got %q", rec.Windows[0].BookingRef)
	}
}

func TestReconcile_SortsByStartThenEnd(t *testing.T) {
	t.Parallel()

	manual := []models.TimeWindow{
		{Start: "14:00", End: "16:00", Source: models.SourceManual},
		{Start: "09:00", End: "12:00", Source: models.SourceManual},
		{Start: "09:00", End: "10:00", Source: models.SourceDefault},
	}
	bookings := []models.Booking{
		{ID: "b1", Date: "2024-06-10", Start: "11:00", End: "12:00", CounterpartyName: "Ada", ServiceType: "Pet Sitting"},
	}

	rec := Reconcile("2024-06-10", manual, bookings)

	got := make([][2]string, 0, len(rec.Windows))
	for _, w := range rec.Windows {
		got = append(got, [2]string{w.Start, w.End})
	}
	want := [][2]string{
		{"09:00", "10:00"},
		{"09:00", "12:00"},
		{"11:00", "12:00"},
		{"14:00", "16:00"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d windows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("window %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestReconcile_FullDayOwnWindowFlipsAvailability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		windows       []models.TimeWindow
		bookings      []models.Booking
		wantAvailable bool
	}{
		{
			name: "full day manual window",
			windows: []models.TimeWindow{
				{Start: "00:00", End: "24:00", Source: models.SourceManual},
			},
			wantAvailable: false,
		},
		{
			name: "full day default window",
			windows: []models.TimeWindow{
				{Start: "00:00", End: "24:00", Source: models.SourceDefault},
			},
			wantAvailable: false,
		},
		{
			name: "full day booking stays available at the day level",
			bookings: []models.Booking{
				{ID: "b1", Date: "2024-06-10", Start: "00:00", End: "24:00", CounterpartyName: "Ada", ServiceType: "Boarding"},
			},
			wantAvailable: true,
		},
		{
			name: "partial windows stay available",
			windows: []models.TimeWindow{
				{Start: "09:00", End: "12:00", Source: models.SourceManual},
			},
			wantAvailable: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := Reconcile("2024-06-10", tt.windows, tt.bookings)
			if rec.IsAvailable != tt.wantAvailable {
				t.Fatalf("expected IsAvailable=%v, got %v", tt.wantAvailable, rec.IsAvailable)
			}
		})
	}
}

func TestReconcile_IgnoresBookingsForOtherDates(t *testing.T) {
	t.Parallel()

	bookings := []models.Booking{
		{ID: "b1", Date: "2024-06-11", Start: "09:00", End: "10:00"},
	}
	rec := Reconcile("2024-06-10", nil, bookings)
	if len(rec.Windows) != 0 {
		t.Fatalf("expected no windows for a booking on another date, got %d", len(rec.Windows))
	}
}
