// File: database/repository/calendar/calendarMongoQueries.go
package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pawcal/models"
)

// dayRecordDoc is the stored shape of one materialized day record.
type dayRecordDoc struct {
	ProfessionalID   string `bson:"professionalId"`
	models.DayRecord `bson:",inline"`
}

// bookingDoc is the stored shape of one confirmed booking, written by the
// booking collaborator.
type bookingDoc struct {
	ProfessionalID string `bson:"professionalId"`
	models.Booking `bson:",inline"`
}

func dateRangeFilter(professionalID, fromDate, toDate string) bson.M {
	filter := bson.M{"professionalId": professionalID}
	dateCond := bson.M{}
	if fromDate != "" {
		dateCond["$gte"] = fromDate
	}
	if toDate != "" {
		dateCond["$lte"] = toDate
	}
	if len(dateCond) > 0 {
		filter["date"] = dateCond
	}
	return filter
}

// GetDayRecords fetches the materialized day records for the date span,
// keyed by date. ISO dates compare correctly as strings, so the range filter
// works on the raw values.
func (repo *MongoCalendarRepo) GetDayRecords(ctx context.Context, professionalID, fromDate, toDate string) (map[string]models.DayRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.dayColl.Find(ctx, dateRangeFilter(professionalID, fromDate, toDate))
	if err != nil {
		return nil, fmt.Errorf("error fetching day records for professional %s: %w", professionalID, err)
	}
	defer cursor.Close(ctx)

	records := make(map[string]models.DayRecord)
	for cursor.Next(ctx) {
		var doc dayRecordDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding day record: %w", err)
		}
		records[doc.Date] = doc.DayRecord
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating day records: %w", err)
	}
	return records, nil
}

// GetBookings fetches confirmed bookings for the date span, keyed by date.
func (repo *MongoCalendarRepo) GetBookings(ctx context.Context, professionalID, fromDate, toDate string) (map[string][]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.bookingColl.Find(ctx, dateRangeFilter(professionalID, fromDate, toDate))
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for professional %s: %w", professionalID, err)
	}
	defer cursor.Close(ctx)

	bookings := make(map[string][]models.Booking)
	for cursor.Next(ctx) {
		var doc bookingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings[doc.Date] = append(bookings[doc.Date], doc.Booking)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}
	return bookings, nil
}

// GetWeeklyDefaults returns the professional's weekly default rules. A
// professional with no stored rules gets an empty slice.
func (repo *MongoCalendarRepo) GetWeeklyDefaults(ctx context.Context, professionalID string) ([]models.WeeklyDefaultRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Rules []models.WeeklyDefaultRule `bson:"rules"`
	}
	filter := bson.M{"professionalId": professionalID}
	if err := repo.defaultsColl.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return []models.WeeklyDefaultRule{}, nil
		}
		return nil, fmt.Errorf("error fetching weekly defaults for professional %s: %w", professionalID, err)
	}
	return doc.Rules, nil
}

// GetOfferedServices returns the service types on the professional's profile.
func (repo *MongoCalendarRepo) GetOfferedServices(ctx context.Context, professionalID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Services []string `bson:"services"`
	}
	filter := bson.M{"id": professionalID}
	if err := repo.profColl.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("professional %s: %w", professionalID, ErrProfessionalNotFound)
		}
		return nil, fmt.Errorf("error fetching services for professional %s: %w", professionalID, err)
	}
	return doc.Services, nil
}

// ListProfessionalsWithDefaults returns the IDs of every professional that
// stored weekly default rules.
func (repo *MongoCalendarRepo) ListProfessionalsWithDefaults(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	values, err := repo.defaultsColl.Distinct(ctx, "professionalId", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing professionals with defaults: %w", err)
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
