package statsRepo

import (
	"context"
	"time"

	"campuscare/models"
)

// StatsRepository persists chat analytics: incoming questions, reply
// feedback and detected emotion keywords.
type StatsRepository interface {
	LogQuestion(ctx context.Context, stat models.QuestionStat) error
	LogFeedback(ctx context.Context, stat models.FeedbackStat) error
	LogEmotion(ctx context.Context, entry models.EmotionLog) error

	// QuestionTimestamps groups logged questions by text, mapping each
	// distinct question to the timestamps it was asked at.
	QuestionTimestamps(ctx context.Context) (map[string][]time.Time, error)

	// FeedbackSummaries tallies helpful/not-helpful feedback per question.
	FeedbackSummaries(ctx context.Context) ([]models.FeedbackSummary, error)

	// EmotionCountsByDay counts emotion detections per calendar day
	// ("2006-01-02" keys).
	EmotionCountsByDay(ctx context.Context) (map[string]int64, error)

	// ClearAll drops every analytics record.
	ClearAll(ctx context.Context) error
}
