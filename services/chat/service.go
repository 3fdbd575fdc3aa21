package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"campuscare/models"
	"campuscare/utils"
)

// Send processes one chat message: detects emotion keywords, logs the
// question and each detected keyword, appends the turn to the user's
// rolling context, and matches the message against the FAQ base.
func (s *DefaultChatService) Send(ctx context.Context, message, userID string) (*models.ChatReply, error) {
	logger := utils.GetLogger()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errors.New("message is required")
	}

	detected := DetectEmotions(message)

	if err := s.Stats.LogQuestion(ctx, models.QuestionStat{
		Question:    message,
		UserID:      userID,
		EmotionTags: detected,
		Timestamp:   time.Now(),
	}); err != nil {
		return nil, err
	}

	for _, keyword := range detected {
		if err := s.Stats.LogEmotion(ctx, models.EmotionLog{
			Keyword:   keyword,
			Message:   message,
			UserID:    userID,
			Timestamp: time.Now(),
		}); err != nil {
			return nil, err
		}
	}

	// The rolling context feeds analytics only; losing it must not
	// fail the reply.
	if s.Context != nil && userID != "" {
		if err := s.Context.Append(ctx, userID, message); err != nil {
			logger.Warn("failed to append chat context",
				zap.String("userID", userID), zap.Error(err))
		}
	}

	kb := s.FAQs.All()
	reply := Match(message, kb, s.Options)

	if len(detected) > 0 {
		logger.Info("Emotion keywords detected",
			zap.Strings("keywords", detected),
			zap.String("userID", userID),
		)
	}

	return &reply, nil
}

// ResetContext drops the caller's rolling chat context ("start over").
func (s *DefaultChatService) ResetContext(ctx context.Context, userID string) error {
	if s.Context == nil || userID == "" {
		return nil
	}
	return s.Context.Clear(ctx, userID)
}

// Feedback records whether a produced reply was helpful.
func (s *DefaultChatService) Feedback(ctx context.Context, question string, wasHelpful bool, userID string) error {
	if strings.TrimSpace(question) == "" {
		return errors.New("question is required")
	}
	return s.Stats.LogFeedback(ctx, models.FeedbackStat{
		Question:   question,
		WasHelpful: wasHelpful,
		UserID:     userID,
		Timestamp:  time.Now(),
	})
}

// QuestionStats groups logged questions by text.
func (s *DefaultChatService) QuestionStats(ctx context.Context) (map[string][]time.Time, error) {
	return s.Stats.QuestionTimestamps(ctx)
}

// FeedbackStats tallies helpful/not-helpful feedback per question.
func (s *DefaultChatService) FeedbackStats(ctx context.Context) ([]models.FeedbackSummary, error) {
	return s.Stats.FeedbackSummaries(ctx)
}

// EmotionStats counts emotion detections per calendar day.
func (s *DefaultChatService) EmotionStats(ctx context.Context) (map[string]int64, error) {
	return s.Stats.EmotionCountsByDay(ctx)
}

// ClearStats drops all chat analytics.
func (s *DefaultChatService) ClearStats(ctx context.Context) error {
	return s.Stats.ClearAll(ctx)
}
