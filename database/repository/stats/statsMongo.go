package statsRepo

import (
	"context"
	"fmt"
	"time"

	"campuscare/database"
	"campuscare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStatsRepo implements StatsRepository using MongoDB.
type MongoStatsRepo struct {
	questionColl *mongo.Collection
	feedbackColl *mongo.Collection
	emotionColl  *mongo.Collection
}

// NewMongoStatsRepo creates a new instance of StatsRepository using MongoDB.
func NewMongoStatsRepo() StatsRepository {
	db := database.DB()
	return &MongoStatsRepo{
		questionColl: db.Collection("question_stats"),
		feedbackColl: db.Collection("feedback_stats"),
		emotionColl:  db.Collection("emotion_logs"),
	}
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// LogQuestion records one incoming chat question.
func (r *MongoStatsRepo) LogQuestion(ctx context.Context, stat models.QuestionStat) error {
	ctxWithTimeout, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if stat.Timestamp.IsZero() {
		stat.Timestamp = time.Now()
	}
	if stat.EmotionTags == nil {
		stat.EmotionTags = []string{}
	}
	if _, err := r.questionColl.InsertOne(ctxWithTimeout, stat); err != nil {
		return fmt.Errorf("error logging question: %w", err)
	}
	return nil
}

// LogFeedback records whether a reply was helpful.
func (r *MongoStatsRepo) LogFeedback(ctx context.Context, stat models.FeedbackStat) error {
	ctxWithTimeout, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if stat.Timestamp.IsZero() {
		stat.Timestamp = time.Now()
	}
	if _, err := r.feedbackColl.InsertOne(ctxWithTimeout, stat); err != nil {
		return fmt.Errorf("error logging feedback: %w", err)
	}
	return nil
}

// LogEmotion records one detected distress keyword.
func (r *MongoStatsRepo) LogEmotion(ctx context.Context, entry models.EmotionLog) error {
	ctxWithTimeout, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if _, err := r.emotionColl.InsertOne(ctxWithTimeout, entry); err != nil {
		return fmt.Errorf("error logging emotion: %w", err)
	}
	return nil
}

// QuestionTimestamps groups logged questions by text.
func (r *MongoStatsRepo) QuestionTimestamps(ctx context.Context) (map[string][]time.Time, error) {
	ctxWithTimeout, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        "$question",
			"timestamps": bson.M{"$push": "$timestamp"},
		}}},
	}
	cursor, err := r.questionColl.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate question stats: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	result := make(map[string][]time.Time)
	for cursor.Next(ctxWithTimeout) {
		var row struct {
			Question   string      `bson:"_id"`
			Timestamps []time.Time `bson:"timestamps"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode question stats row: %w", err)
		}
		result[row.Question] = row.Timestamps
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("question stats cursor error: %w", err)
	}
	return result, nil
}

// FeedbackSummaries tallies helpful/not-helpful feedback per question.
func (r *MongoStatsRepo) FeedbackSummaries(ctx context.Context) ([]models.FeedbackSummary, error) {
	ctxWithTimeout, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": "$question",
			"helpful": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$was_helpful", true}}, 1, 0},
			}},
			"notHelpful": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$was_helpful", false}}, 1, 0},
			}},
		}}},
	}
	cursor, err := r.feedbackColl.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate feedback stats: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var summaries []models.FeedbackSummary
	for cursor.Next(ctxWithTimeout) {
		var s models.FeedbackSummary
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode feedback summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("feedback stats cursor error: %w", err)
	}
	return summaries, nil
}

// EmotionCountsByDay counts emotion detections per calendar day.
func (r *MongoStatsRepo) EmotionCountsByDay(ctx context.Context) (map[string]int64, error) {
	ctxWithTimeout, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$timestamp",
			}},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.emotionColl.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate emotion stats: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	result := make(map[string]int64)
	for cursor.Next(ctxWithTimeout) {
		var row struct {
			Day   string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode emotion stats row: %w", err)
		}
		result[row.Day] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("emotion stats cursor error: %w", err)
	}
	return result, nil
}

// ClearAll drops every analytics record.
func (r *MongoStatsRepo) ClearAll(ctx context.Context) error {
	ctxWithTimeout, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	for _, coll := range []*mongo.Collection{r.questionColl, r.feedbackColl, r.emotionColl} {
		if _, err := coll.DeleteMany(ctxWithTimeout, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear %s: %w", coll.Name(), err)
		}
	}
	return nil
}
