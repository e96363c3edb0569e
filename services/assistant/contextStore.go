// File: services/assistant/contextStore.go
package assistant

import (
	"context"
	"encoding/json"
	"time"

	"calbot/models"

	"github.com/go-redis/redis/v8"
)

const chatContextPrefix = "chat:ctx:"

// ContextStore keeps per-session conversation transcripts in Redis. The
// transcript is loaded by the handler, threaded through the assistant turn,
// and written back; nothing here is process-global.
type ContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewContextStore(client *redis.Client, ttl time.Duration) *ContextStore {
	return &ContextStore{client: client, ttl: ttl}
}

func (s *ContextStore) Get(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	key := chatContextPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return []models.ChatMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	var history []models.ChatMessage
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *ContextStore) Save(ctx context.Context, sessionID string, history []models.ChatMessage) error {
	key := chatContextPrefix + sessionID
	b, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *ContextStore) Clear(ctx context.Context, sessionID string) error {
	key := chatContextPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
