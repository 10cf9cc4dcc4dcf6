// Package redisstore keeps per-user generation history in Redis lists so a
// server restart doesn't lose it and multiple instances share one view.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ignite/jarvis-crm/internal/domain"
	"github.com/redis/go-redis/v9"
)

const historyKeyPrefix = "content:history:"

// HistoryStore implements content.HistoryRepository on a Redis list per
// user. Entries are LPUSHed so index 0 is always the newest, and the list is
// trimmed to the retention cap on every append.
type HistoryStore struct {
	client    *redis.Client
	retention int
}

// NewHistoryStore creates a Redis-backed history store keeping at most
// retention entries per user (0 means the default of 500).
func NewHistoryStore(client *redis.Client, retention int) *HistoryStore {
	if retention <= 0 {
		retention = 500
	}
	return &HistoryStore{client: client, retention: retention}
}

func historyKey(userID string) string { return historyKeyPrefix + userID }

func (s *HistoryStore) Append(ctx context.Context, gc *domain.GeneratedContent) error {
	payload, err := json.Marshal(gc)
	if err != nil {
		return fmt.Errorf("marshal generated content: %w", err)
	}

	key := historyKey(gc.UserID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, int64(s.retention-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (s *HistoryStore) List(ctx context.Context, userID string, limit int) ([]domain.GeneratedContent, error) {
	if limit <= 0 || limit > s.retention {
		limit = s.retention
	}

	raw, err := s.client.LRange(ctx, historyKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	out := make([]domain.GeneratedContent, 0, len(raw))
	for _, item := range raw {
		var gc domain.GeneratedContent
		if err := json.Unmarshal([]byte(item), &gc); err != nil {
			return nil, fmt.Errorf("unmarshal history entry: %w", err)
		}
		out = append(out, gc)
	}
	return out, nil
}
