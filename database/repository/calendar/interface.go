// File: database/repository/calendar/interface.go
package calendarRepo

import (
	"context"
	"errors"

	"pawcal/database"
	"pawcal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrProfessionalNotFound is returned when no profile exists for the ID.
var ErrProfessionalNotFound = errors.New("professional not found")

// CalendarRepository persists the availability ledger, weekly default rules,
// and read-only booking occupancy. The engine itself never touches storage;
// the calendar service goes through this interface.
type CalendarRepository interface {
	// GetDayRecords fetches materialized day records keyed by date.
	// toDate may be empty for an open-ended upper bound.
	GetDayRecords(ctx context.Context, professionalID, fromDate, toDate string) (map[string]models.DayRecord, error)
	// ApplyDiff upserts changed records and deletes cleared dates.
	ApplyDiff(ctx context.Context, professionalID string, diff models.LedgerDiff) error
	// GetBookings fetches confirmed bookings keyed by date. Bookings are
	// owned by the booking collaborator and never written here.
	GetBookings(ctx context.Context, professionalID, fromDate, toDate string) (map[string][]models.Booking, error)
	GetWeeklyDefaults(ctx context.Context, professionalID string) ([]models.WeeklyDefaultRule, error)
	SaveWeeklyDefaults(ctx context.Context, professionalID string, rules []models.WeeklyDefaultRule) error
	// GetOfferedServices returns the service types on the professional's
	// profile, used to scope all-day classification.
	GetOfferedServices(ctx context.Context, professionalID string) ([]string, error)
	// ListProfessionalsWithDefaults returns every professional carrying
	// weekly default rules, for the background re-expansion worker.
	ListProfessionalsWithDefaults(ctx context.Context) ([]string, error)
}

// MongoCalendarRepo implements CalendarRepository using MongoDB.
type MongoCalendarRepo struct {
	dayColl      *mongo.Collection
	defaultsColl *mongo.Collection
	bookingColl  *mongo.Collection
	profColl     *mongo.Collection
}

// NewMongoCalendarRepo constructs a new MongoDB CalendarRepository.
func NewMongoCalendarRepo() CalendarRepository {
	db := database.MongoClient.Database("pawcal")
	return &MongoCalendarRepo{
		dayColl:      db.Collection("calendar_days"),
		defaultsColl: db.Collection("weekly_defaults"),
		bookingColl:  db.Collection("bookings"),
		profColl:     db.Collection("professionals"),
	}
}
