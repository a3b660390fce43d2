package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"glowbook/database"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new instance of AvailabilityRepository using MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	coll := database.Collection("availability")
	repo := &MongoAvailabilityRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert stores the whole slot list for one date.
func (r *MongoAvailabilityRepo) Upsert(day *models.DayAvailability) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	day.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"date": day.Date}, day, opts); err != nil {
		return fmt.Errorf("failed to upsert availability for %s: %w", day.Date, err)
	}
	return nil
}

// GetByDate retrieves the record for one date. Returns (nil, nil) when absent.
func (r *MongoAvailabilityRepo) GetByDate(date string) (*models.DayAvailability, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var day models.DayAvailability
	if err := r.coll.FindOne(ctx, bson.M{"date": date}).Decode(&day); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch availability for %s: %w", date, err)
	}
	return &day, nil
}

// GetAll retrieves every configured day.
func (r *MongoAvailabilityRepo) GetAll() ([]models.DayAvailability, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	defer cursor.Close(ctx)

	var days []models.DayAvailability
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("failed to decode availability: %w", err)
	}
	return days, nil
}

// Delete removes the record for one date.
func (r *MongoAvailabilityRepo) Delete(date string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"date": date}); err != nil {
		return fmt.Errorf("failed to delete availability for %s: %w", date, err)
	}
	return nil
}
