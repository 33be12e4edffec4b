// File: database/repository/calendar/indexes.go
package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the calendar collections.
func (repo *MongoCalendarRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dayIndexes := []mongo.IndexModel{
		// One record per professional per date (primary query pattern).
		{
			Keys:    bson.D{{Key: "professionalId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("professional_date_idx"),
		},
	}
	if _, err := repo.dayColl.Indexes().CreateMany(ctx, dayIndexes); err != nil {
		return fmt.Errorf("failed to create calendar day indexes: %w", err)
	}

	defaultsIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "professionalId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("professional_idx"),
		},
	}
	if _, err := repo.defaultsColl.Indexes().CreateMany(ctx, defaultsIndexes); err != nil {
		return fmt.Errorf("failed to create weekly default indexes: %w", err)
	}

	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "professionalId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("booking_professional_date_idx"),
		},
	}
	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
