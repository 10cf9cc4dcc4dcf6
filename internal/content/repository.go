package content

import (
	"context"

	"github.com/ignite/jarvis-crm/internal/domain"
)

// TemplateRepository defines the data access contract for content templates.
// Implementations must be safe for concurrent use.
type TemplateRepository interface {
	// List returns the user's templates in insertion order, optionally
	// filtered by category. An empty result is not an error.
	List(ctx context.Context, userID string, category domain.ContentCategory) ([]domain.ContentTemplate, error)

	// Create inserts a new template. The caller assigns the ID.
	Create(ctx context.Context, t *domain.ContentTemplate) error

	// Get returns a single template. Returns ErrTemplateNotFound if it
	// doesn't exist or belongs to another user.
	Get(ctx context.Context, userID, id string) (*domain.ContentTemplate, error)

	// GetByCategory returns the oldest template in the category — the
	// deterministic fallback when a request carries no template id.
	// Returns ErrTemplateNotFound when the category is empty.
	GetByCategory(ctx context.Context, userID string, category domain.ContentCategory) (*domain.ContentTemplate, error)

	// IncrementUsage records one usage outcome: bumps the usage count,
	// folds success into the rolling success rate, folds responseTimeHours
	// into the rolling average, and stamps last-used.
	IncrementUsage(ctx context.Context, userID, id string, success bool, responseTimeHours float64) error
}

// HistoryRepository stores generated content per user, newest first.
// Entries are immutable once appended; implementations apply the retention
// cap they were configured with.
type HistoryRepository interface {
	Append(ctx context.Context, gc *domain.GeneratedContent) error

	// List returns up to limit entries, newest first. limit <= 0 means the
	// implementation's default page size.
	List(ctx context.Context, userID string, limit int) ([]domain.GeneratedContent, error)
}
