package calendar

import (
	"context"

	"pawcal/models"
)

// CalendarService exposes the availability engine to transport and worker
// code. Implementations load snapshots from storage, run the pure engine
// functions, and persist the resulting diffs.
type CalendarService interface {
	// GetCalendar returns the display category of every date in the span.
	GetCalendar(ctx context.Context, professionalID, fromDate, toDate string) (map[string]models.Category, error)
	// GetUnavailableTimes returns the reconciled per-date view: own windows
	// merged with booking occupancy, sorted and de-duplicated.
	GetUnavailableTimes(ctx context.Context, professionalID, fromDate, toDate string) ([]models.DayRecord, error)
	// GetFreeIntervals returns the conflict-free time ranges of one date
	// that fit the requested duration in minutes.
	GetFreeIntervals(ctx context.Context, professionalID, date string, minDurationMinutes int) ([]models.AvailableInterval, error)
	// ApplyAvailabilityChange runs one batch edit across the selected dates.
	ApplyAvailabilityChange(ctx context.Context, professionalID string, dates []string, decision models.AvailabilityDecision) (models.LedgerDiff, error)
	GetWeeklyDefaults(ctx context.Context, professionalID string) ([]models.WeeklyDefaultRule, error)
	// SetWeeklyDefaults stores the rule set and re-expands it over the
	// ledger, returning the dates whose records changed.
	SetWeeklyDefaults(ctx context.Context, professionalID string, rules []models.WeeklyDefaultRule) (models.LedgerDiff, error)
	// ExpandDefaults re-runs expansion with the stored rules, keeping the
	// materialized horizon rolling. The background worker calls this.
	ExpandDefaults(ctx context.Context, professionalID string) (models.LedgerDiff, error)
}
