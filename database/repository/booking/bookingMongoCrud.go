package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"campuscare/database"
	"campuscare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.DB().Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctxWithTimeout, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctxWithTimeout, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// Update replaces the stored fields of an existing booking document.
func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": booking.ID}
	update := bson.M{"$set": booking}
	if booking.SlotKey == "" {
		// $set with an omitempty field leaves stale keys behind; drop
		// the slot key explicitly so the unique index frees the slot.
		update["$unset"] = bson.M{"slot_key": ""}
	}
	res, err := r.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", booking.ID)
	}
	return nil
}
