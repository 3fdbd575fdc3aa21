package models

import "time"

// FAQ is one knowledge-base entry the chat matcher scores against.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// ChatReply is the matcher's produced answer: the reply text, the
// matched category (empty on fallback) and ranked secondary
// suggestions.
type ChatReply struct {
	Reply       string   `json:"reply"`
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions"`
}

// QuestionStat records one incoming chat question for analytics.
type QuestionStat struct {
	Question    string    `bson:"question" json:"question"`
	UserID      string    `bson:"user_id,omitempty" json:"userId,omitempty"`
	EmotionTags []string  `bson:"emotion_tags" json:"emotionTags"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}

// FeedbackStat records whether a produced reply was helpful.
type FeedbackStat struct {
	Question   string    `bson:"question" json:"question"`
	WasHelpful bool      `bson:"was_helpful" json:"wasHelpful"`
	UserID     string    `bson:"user_id,omitempty" json:"userId,omitempty"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

// EmotionLog records a single detected distress keyword occurrence.
type EmotionLog struct {
	Keyword   string    `bson:"keyword" json:"keyword"`
	Message   string    `bson:"message" json:"message"`
	UserID    string    `bson:"user_id,omitempty" json:"userId,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// FeedbackSummary is the helpful/not-helpful tally for one question.
type FeedbackSummary struct {
	Question   string `bson:"_id" json:"question"`
	Helpful    int64  `bson:"helpful" json:"helpful"`
	NotHelpful int64  `bson:"notHelpful" json:"notHelpful"`
}

// ChatContext is the rolling window of a user's recent chat turns,
// kept in Redis with a TTL.
type ChatContext struct {
	Turns []string `json:"turns"`
}
