package bookingRepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"campuscare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dateLayout = "2006-01-02"

// activeStatusValues lists every stored spelling that counts as an
// active booking. Canonical capitalization is enforced on write, but
// legacy rows may still carry lowercase values.
func activeStatusValues() bson.A {
	return bson.A{
		string(models.StatusPending), strings.ToLower(string(models.StatusPending)),
		string(models.StatusConfirmed), strings.ToLower(string(models.StatusConfirmed)),
	}
}

// ownerFilter scopes a query to a caller: bookings linked to their
// account, or guest bookings carrying their email.
func ownerFilter(ownerID, ownerEmail string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"user_id": ownerID},
		bson.M{"email": strings.ToLower(ownerEmail), "user_id": ""},
	}}
}

// sortFieldMap whitelists caller-chosen sort fields.
var sortFieldMap = map[string]string{
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
	"date":            "date",
	"preferredDate":   "preferred_date",
	"time":            "time",
	"status":          "status",
	"fullName":        "full_name",
	"email":           "email",
	"appointmentType": "appointment_type",
}

// FindActiveBySlot returns the active booking occupying (date, time)
// under either date representation, or nil when the slot is free.
func (r *MongoBookingRepo) FindActiveBySlot(ctx context.Context, date, timeOfDay, excludeID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	slotOr := bson.A{
		bson.M{"date": date, "time": timeOfDay},
	}
	if parsed, err := time.ParseInLocation(dateLayout, date, time.UTC); err == nil {
		slotOr = append(slotOr, bson.M{"preferred_date": parsed, "preferred_time": timeOfDay})
	}

	filter := bson.M{
		"$or":    slotOr,
		"status": bson.M{"$in": activeStatusValues()},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	var booking models.Booking
	err := r.coll.FindOne(ctxWithTimeout, filter).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check slot %s %s: %w", date, timeOfDay, err)
	}
	return &booking, nil
}

// ListPastConfirmed returns Confirmed bookings dated strictly before
// the given day. Dates are "2006-01-02" strings, so lexicographic $lt
// is chronological.
func (r *MongoBookingRepo) ListPastConfirmed(ctx context.Context, before string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status": bson.M{"$in": bson.A{
			string(models.StatusConfirmed), strings.ToLower(string(models.StatusConfirmed)),
		}},
		"date": bson.M{"$lt": before},
	}

	cursor, err := r.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list past confirmed bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	for cursor.Next(ctxWithTimeout) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("past bookings cursor error: %w", err)
	}
	return bookings, nil
}

// buildListFilter assembles the Mongo filter for a booking query.
func buildListFilter(q models.BookingQuery) bson.M {
	var clauses bson.A

	if q.OwnerID != "" || q.OwnerEmail != "" {
		clauses = append(clauses, ownerFilter(q.OwnerID, q.OwnerEmail))
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"full_name": pattern},
			bson.M{"email": pattern},
			bson.M{"appointment_type": pattern},
			bson.M{"additional_notes": pattern},
		}})
	}

	if q.Status != "" {
		clauses = append(clauses, bson.M{"status": bson.M{"$in": bson.A{
			string(q.Status), strings.ToLower(string(q.Status)),
		}}})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		if m, ok := clauses[0].(bson.M); ok {
			return m
		}
	}
	return bson.M{"$and": clauses}
}

// List returns one page of bookings matching the query plus the total
// match count.
func (r *MongoBookingRepo) List(ctx context.Context, q models.BookingQuery) ([]models.Booking, int64, error) {
	ctxWithTimeout, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := buildListFilter(q)

	sortField, ok := sortFieldMap[q.SortBy]
	if !ok {
		sortField = "created_at"
	}
	sortDir := -1
	if strings.EqualFold(q.SortOrder, "asc") {
		sortDir = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	for cursor.Next(ctxWithTimeout) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, 0, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("booking cursor error: %w", err)
	}

	total, err := r.coll.CountDocuments(ctxWithTimeout, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return bookings, total, nil
}

// CountByStatus aggregates booking counts by status for the given
// owner scope (global when both owner fields are empty).
func (r *MongoBookingRepo) CountByStatus(ctx context.Context, ownerID, ownerEmail string) (models.BookingStats, error) {
	ctxWithTimeout, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	match := bson.M{}
	if ownerID != "" || ownerEmail != "" {
		match = ownerFilter(ownerID, ownerEmail)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$toLower": "$status"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return models.BookingStats{}, fmt.Errorf("failed to aggregate booking stats: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var stats models.BookingStats
	for cursor.Next(ctxWithTimeout) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return models.BookingStats{}, fmt.Errorf("failed to decode stats row: %w", err)
		}
		stats.Total += row.Count
		switch row.Status {
		case "pending":
			stats.Pending = row.Count
		case "confirmed":
			stats.Confirmed = row.Count
		case "completed":
			stats.Completed = row.Count
		case "cancelled":
			stats.Cancelled = row.Count
		}
	}
	if err := cursor.Err(); err != nil {
		return models.BookingStats{}, fmt.Errorf("stats cursor error: %w", err)
	}
	return stats, nil
}
