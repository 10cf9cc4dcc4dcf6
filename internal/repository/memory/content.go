// Package memory provides in-memory repository implementations, used for
// tests and for running the server without external storage.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ignite/jarvis-crm/internal/content"
	"github.com/ignite/jarvis-crm/internal/domain"
)

// TemplateStore implements content.TemplateRepository with per-user slices,
// which preserve insertion order for the deterministic category fallback.
type TemplateStore struct {
	mu     sync.RWMutex
	byUser map[string][]*domain.ContentTemplate
}

// NewTemplateStore creates an empty in-memory template store.
func NewTemplateStore() *TemplateStore {
	return &TemplateStore{byUser: make(map[string][]*domain.ContentTemplate)}
}

func (s *TemplateStore) List(_ context.Context, userID string, category domain.ContentCategory) ([]domain.ContentTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ContentTemplate
	for _, t := range s.byUser[userID] {
		if category != "" && t.Category != category {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *TemplateStore) Create(_ context.Context, t *domain.ContentTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *t
	s.byUser[t.UserID] = append(s.byUser[t.UserID], &cp)
	return nil
}

func (s *TemplateStore) Get(_ context.Context, userID, id string) (*domain.ContentTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.byUser[userID] {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, content.ErrTemplateNotFound
}

func (s *TemplateStore) GetByCategory(_ context.Context, userID string, category domain.ContentCategory) (*domain.ContentTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.byUser[userID] {
		if t.Category == category {
			cp := *t
			return &cp, nil
		}
	}
	return nil, content.ErrTemplateNotFound
}

func (s *TemplateStore) IncrementUsage(_ context.Context, userID, id string, success bool, responseTimeHours float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.byUser[userID] {
		if t.ID != id {
			continue
		}
		p := &t.Performance
		n := float64(p.UsageCount)
		outcome := 0.0
		if success {
			outcome = 1.0
		}
		p.SuccessRate = (p.SuccessRate*n + outcome) / (n + 1)
		p.AvgResponseTime = (p.AvgResponseTime*n + responseTimeHours) / (n + 1)
		p.UsageCount++
		now := time.Now().UTC()
		p.LastUsedAt = &now
		t.UpdatedAt = now
		return nil
	}
	return content.ErrTemplateNotFound
}

// HistoryStore implements content.HistoryRepository, newest first, capped at
// the configured retention.
type HistoryStore struct {
	mu        sync.RWMutex
	byUser    map[string][]domain.GeneratedContent
	retention int
}

// NewHistoryStore creates a history store keeping at most retention entries
// per user (0 means the default of 500).
func NewHistoryStore(retention int) *HistoryStore {
	if retention <= 0 {
		retention = 500
	}
	return &HistoryStore{
		byUser:    make(map[string][]domain.GeneratedContent),
		retention: retention,
	}
}

func (s *HistoryStore) Append(_ context.Context, gc *domain.GeneratedContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append([]domain.GeneratedContent{*gc}, s.byUser[gc.UserID]...)
	if len(entries) > s.retention {
		entries = entries[:s.retention]
	}
	s.byUser[gc.UserID] = entries
	return nil
}

func (s *HistoryStore) List(_ context.Context, userID string, limit int) ([]domain.GeneratedContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.byUser[userID]
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	out := make([]domain.GeneratedContent, limit)
	copy(out, entries[:limit])
	return out, nil
}
