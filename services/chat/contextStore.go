package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"campuscare/models"
)

const (
	chatContextPrefix = "chat:ctx:"
	maxContextTurns   = 10
)

// RedisContextStore keeps a rolling window of a user's recent chat
// turns in Redis with a TTL.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, userID string) (*models.ChatContext, error) {
	key := chatContextPrefix + userID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.ChatContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var chatCtx models.ChatContext
	if err := json.Unmarshal([]byte(data), &chatCtx); err != nil {
		return nil, err
	}
	return &chatCtx, nil
}

// Append pushes a turn onto the user's rolling context, trimming to
// the most recent maxContextTurns and refreshing the TTL.
func (s *RedisContextStore) Append(ctx context.Context, userID, turn string) error {
	chatCtx, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	chatCtx.Turns = append(chatCtx.Turns, turn)
	if len(chatCtx.Turns) > maxContextTurns {
		chatCtx.Turns = chatCtx.Turns[len(chatCtx.Turns)-maxContextTurns:]
	}

	b, err := json.Marshal(chatCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, chatContextPrefix+userID, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, chatContextPrefix+userID).Err()
}
