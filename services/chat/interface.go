package chat

import (
	"context"
	"time"

	statsRepo "campuscare/database/repository/stats"
	"campuscare/models"
	"campuscare/services/faq"
)

// ContextStore keeps each user's rolling window of recent chat turns.
type ContextStore interface {
	Get(ctx context.Context, userID string) (*models.ChatContext, error)
	Append(ctx context.Context, userID, turn string) error
	Clear(ctx context.Context, userID string) error
}

// ChatService handles incoming chat messages: emotion tagging,
// analytics logging and FAQ matching. The matcher itself is stateless;
// the service owns the I/O around it.
type ChatService interface {
	Send(ctx context.Context, message, userID string) (*models.ChatReply, error)
	Feedback(ctx context.Context, question string, wasHelpful bool, userID string) error
	ResetContext(ctx context.Context, userID string) error

	QuestionStats(ctx context.Context) (map[string][]time.Time, error)
	FeedbackStats(ctx context.Context) ([]models.FeedbackSummary, error)
	EmotionStats(ctx context.Context) (map[string]int64, error)
	ClearStats(ctx context.Context) error
}

// DefaultChatService implements ChatService.
type DefaultChatService struct {
	FAQs    *faq.Store
	Stats   statsRepo.StatsRepository
	Context ContextStore
	Options MatchOptions
}

// NewDefaultChatService wires a chat service over the FAQ store, the
// analytics repository and the rolling context store.
func NewDefaultChatService(faqs *faq.Store, stats statsRepo.StatsRepository, ctxStore ContextStore) *DefaultChatService {
	return &DefaultChatService{
		FAQs:    faqs,
		Stats:   stats,
		Context: ctxStore,
		Options: DefaultMatchOptions(),
	}
}
