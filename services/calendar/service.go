package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	calendarRepo "pawcal/database/repository/calendar"
	"pawcal/models"
	"pawcal/utils"
)

const renderCacheTTL = 10 * time.Minute

// DefaultCalendarService is the concrete CalendarService backed by the
// calendar repository, with render state cached in Redis.
type DefaultCalendarService struct {
	Repo     calendarRepo.CalendarRepository
	Cache    *redis.Client
	Expander Expander
}

// GetCalendar returns the display category for every date in the span,
// serving from cache when possible.
func (s *DefaultCalendarService) GetCalendar(ctx context.Context, professionalID, fromDate, toDate string) (map[string]models.Category, error) {
	cacheKey := fmt.Sprintf("calendar:render:%s:%s:%s", professionalID, fromDate, toDate)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached map[string]models.Category
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	records, err := s.Repo.GetDayRecords(ctx, professionalID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load day records: %w", err)
	}
	bookings, err := s.Repo.GetBookings(ctx, professionalID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	services, err := s.Repo.GetOfferedServices(ctx, professionalID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrProfessionalNotFound) {
			return nil, NewNotFoundError("professional %s not found", professionalID)
		}
		return nil, fmt.Errorf("failed to load offered services: %w", err)
	}

	categories, err := RenderRange(NewLedger(records), bookings, services, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(categories); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, raw, renderCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache render state", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
	return categories, nil
}

// GetUnavailableTimes returns the merged per-date records for the span,
// ordered by date.
func (s *DefaultCalendarService) GetUnavailableTimes(ctx context.Context, professionalID, fromDate, toDate string) ([]models.DayRecord, error) {
	records, err := s.Repo.GetDayRecords(ctx, professionalID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load day records: %w", err)
	}
	bookings, err := s.Repo.GetBookings(ctx, professionalID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	dates := make(map[string]bool, len(records)+len(bookings))
	for date := range records {
		dates[date] = true
	}
	for date := range bookings {
		dates[date] = true
	}
	ordered := make([]string, 0, len(dates))
	for date := range dates {
		ordered = append(ordered, date)
	}
	sort.Strings(ordered)

	out := make([]models.DayRecord, 0, len(ordered))
	for _, date := range ordered {
		rec := records[date]
		out = append(out, Reconcile(date, rec.Windows, bookings[date]))
	}
	return out, nil
}

// GetFreeIntervals returns the conflict-free time ranges of one date.
func (s *DefaultCalendarService) GetFreeIntervals(ctx context.Context, professionalID, date string, minDurationMinutes int) ([]models.AvailableInterval, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	records, err := s.Repo.GetDayRecords(ctx, professionalID, date, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day records: %w", err)
	}
	bookings, err := s.Repo.GetBookings(ctx, professionalID, date, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return FreeIntervals(NewLedger(records).Status(date), bookings[date], minDurationMinutes)
}

// ApplyAvailabilityChange validates and applies one batch edit, persists the
// diff, and drops the affected cached render state.
func (s *DefaultCalendarService) ApplyAvailabilityChange(ctx context.Context, professionalID string, dates []string, decision models.AvailabilityDecision) (models.LedgerDiff, error) {
	if len(dates) == 0 {
		return models.LedgerDiff{}, NewValidationError("no dates selected")
	}
	sorted := append([]string(nil), dates...)
	sort.Strings(sorted)

	records, err := s.Repo.GetDayRecords(ctx, professionalID, sorted[0], sorted[len(sorted)-1])
	if err != nil {
		return models.LedgerDiff{}, fmt.Errorf("failed to load day records: %w", err)
	}

	_, diff, err := ApplyAvailabilityChange(dates, decision, NewLedger(records))
	if err != nil {
		return models.LedgerDiff{}, err
	}
	if diff.IsEmpty() {
		return diff, nil
	}

	if err := s.Repo.ApplyDiff(ctx, professionalID, diff); err != nil {
		return models.LedgerDiff{}, fmt.Errorf("failed to persist availability change: %w", err)
	}
	s.invalidateRenderCache(ctx, professionalID)
	return diff, nil
}

// GetWeeklyDefaults returns the stored weekly rule set.
func (s *DefaultCalendarService) GetWeeklyDefaults(ctx context.Context, professionalID string) ([]models.WeeklyDefaultRule, error) {
	rules, err := s.Repo.GetWeeklyDefaults(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly defaults: %w", err)
	}
	return rules, nil
}

// SetWeeklyDefaults stores the rule set and expands it over the ledger.
func (s *DefaultCalendarService) SetWeeklyDefaults(ctx context.Context, professionalID string, rules []models.WeeklyDefaultRule) (models.LedgerDiff, error) {
	diff, err := s.expandWith(ctx, professionalID, rules)
	if err != nil {
		return models.LedgerDiff{}, err
	}
	if err := s.Repo.SaveWeeklyDefaults(ctx, professionalID, rules); err != nil {
		return models.LedgerDiff{}, fmt.Errorf("failed to save weekly defaults: %w", err)
	}
	return diff, nil
}

// ExpandDefaults re-runs expansion with the stored rules.
func (s *DefaultCalendarService) ExpandDefaults(ctx context.Context, professionalID string) (models.LedgerDiff, error) {
	rules, err := s.Repo.GetWeeklyDefaults(ctx, professionalID)
	if err != nil {
		return models.LedgerDiff{}, fmt.Errorf("failed to load weekly defaults: %w", err)
	}
	if len(rules) == 0 {
		return models.LedgerDiff{}, nil
	}
	return s.expandWith(ctx, professionalID, rules)
}

func (s *DefaultCalendarService) expandWith(ctx context.Context, professionalID string, rules []models.WeeklyDefaultRule) (models.LedgerDiff, error) {
	today := s.Expander.now().Format(dateLayout)
	records, err := s.Repo.GetDayRecords(ctx, professionalID, today, "")
	if err != nil {
		return models.LedgerDiff{}, fmt.Errorf("failed to load day records: %w", err)
	}

	before := NewLedger(records)
	after, _, err := s.Expander.Expand(rules, "", before)
	if err != nil {
		return models.LedgerDiff{}, err
	}

	diff := DiffLedgers(before, after)
	if diff.IsEmpty() {
		return diff, nil
	}
	if err := s.Repo.ApplyDiff(ctx, professionalID, diff); err != nil {
		return models.LedgerDiff{}, fmt.Errorf("failed to persist expanded defaults: %w", err)
	}
	s.invalidateRenderCache(ctx, professionalID)
	return diff, nil
}

// invalidateRenderCache drops every cached render span for the professional.
func (s *DefaultCalendarService) invalidateRenderCache(ctx context.Context, professionalID string) {
	if s.Cache == nil {
		return
	}
	pattern := fmt.Sprintf("calendar:render:%s:*", professionalID)
	keys, err := s.Cache.Keys(ctx, pattern).Result()
	if err != nil {
		utils.GetLogger().Warn("failed to scan render cache", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate render cache", zap.String("pattern", pattern), zap.Error(err))
	}
}
