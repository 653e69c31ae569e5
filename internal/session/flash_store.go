package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultFlashTTL = 15 * time.Minute

// Message is one pending notification for a user.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// FlashStore queues one-shot outcome messages per user. Messages survive
// the redirect after checkout and are consumed on the next read.
type FlashStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFlashStore(client *redis.Client, ttl time.Duration) *FlashStore {
	if ttl <= 0 {
		ttl = defaultFlashTTL
	}
	return &FlashStore{client: client, ttl: ttl}
}

// Flash appends a message to the user's queue.
func (s *FlashStore) Flash(ctx context.Context, userID, level, text string) error {
	payload, err := json.Marshal(Message{Level: level, Text: text})
	if err != nil {
		return fmt.Errorf("marshal flash message: %w", err)
	}

	key := flashKey(userID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push flash message: %w", err)
	}
	return nil
}

// Drain pops and returns all pending messages for the user.
func (s *FlashStore) Drain(ctx context.Context, userID string) ([]Message, error) {
	key := flashKey(userID)

	pipe := s.client.TxPipeline()
	rangeCmd := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("drain flash messages: %w", err)
	}

	raw := rangeCmd.Val()
	out := make([]Message, 0, len(raw))
	for _, item := range raw {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
