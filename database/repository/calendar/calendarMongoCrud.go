// File: database/repository/calendar/calendarMongoCrud.go
package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pawcal/models"
)

// ApplyDiff persists a ledger diff: changed dates are upserted, cleared dates
// are deleted so they fall back to implicit availability.
func (repo *MongoCalendarRepo) ApplyDiff(ctx context.Context, professionalID string, diff models.LedgerDiff) error {
	if diff.IsEmpty() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, change := range diff.Changes {
		filter := bson.M{"professionalId": professionalID, "date": change.Date}
		if change.After == nil {
			if _, err := repo.dayColl.DeleteOne(ctx, filter); err != nil {
				return fmt.Errorf("error clearing day record %s for professional %s: %w", change.Date, professionalID, err)
			}
			continue
		}
		doc := dayRecordDoc{ProfessionalID: professionalID, DayRecord: *change.After}
		opts := options.Replace().SetUpsert(true)
		if _, err := repo.dayColl.ReplaceOne(ctx, filter, doc, opts); err != nil {
			return fmt.Errorf("error upserting day record %s for professional %s: %w", change.Date, professionalID, err)
		}
	}
	return nil
}

// SaveWeeklyDefaults replaces the professional's weekly default rule set.
func (repo *MongoCalendarRepo) SaveWeeklyDefaults(ctx context.Context, professionalID string, rules []models.WeeklyDefaultRule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professionalId": professionalID}
	update := bson.M{"$set": bson.M{
		"professionalId": professionalID,
		"rules":          rules,
		"updatedAt":      time.Now().UTC(),
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.defaultsColl.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error saving weekly defaults for professional %s: %w", professionalID, err)
	}
	return nil
}
