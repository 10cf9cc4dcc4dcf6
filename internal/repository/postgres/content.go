// Package postgres implements the content repositories against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ignite/jarvis-crm/internal/content"
	"github.com/ignite/jarvis-crm/internal/domain"
)

// TemplateRepo implements content.TemplateRepository against PostgreSQL.
// Variables and rules are stored as JSONB documents; the engine treats them
// as opaque template structure, so there is nothing to join on.
type TemplateRepo struct{ db *sql.DB }

// NewTemplateRepo creates a Postgres-backed template repository.
func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

const templateColumns = `id, user_id, name, category, type, body, variables, rules,
       usage_count, success_rate, avg_response_time, last_used_at, created_at, updated_at`

func (r *TemplateRepo) List(ctx context.Context, userID string, category domain.ContentCategory) ([]domain.ContentTemplate, error) {
	q := `SELECT ` + templateColumns + ` FROM crm_content_templates WHERE user_id = $1`
	args := []interface{}{userID}
	if category != "" {
		q += ` AND category = $2`
		args = append(args, string(category))
	}
	q += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []domain.ContentTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TemplateRepo) Create(ctx context.Context, t *domain.ContentTemplate) error {
	variables, err := json.Marshal(t.Variables)
	if err != nil {
		return fmt.Errorf("marshal variables: %w", err)
	}
	rules, err := json.Marshal(t.Rules)
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO crm_content_templates
			(id, user_id, name, category, type, body, variables, rules,
			 usage_count, success_rate, avg_response_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, 0, $9, $10)
	`, t.ID, t.UserID, t.Name, string(t.Category), string(t.Type), t.Body,
		variables, rules, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

func (r *TemplateRepo) Get(ctx context.Context, userID, id string) (*domain.ContentTemplate, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+templateColumns+`
		FROM crm_content_templates
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, content.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) GetByCategory(ctx context.Context, userID string, category domain.ContentCategory) (*domain.ContentTemplate, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+templateColumns+`
		FROM crm_content_templates
		WHERE user_id = $1 AND category = $2
		ORDER BY created_at ASC
		LIMIT 1
	`, userID, string(category))

	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, content.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template by category: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) IncrementUsage(ctx context.Context, userID, id string, success bool, responseTimeHours float64) error {
	outcome := 0.0
	if success {
		outcome = 1.0
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE crm_content_templates SET
			success_rate      = (success_rate * usage_count + $1) / (usage_count + 1),
			avg_response_time = (avg_response_time * usage_count + $2) / (usage_count + 1),
			usage_count       = usage_count + 1,
			last_used_at      = NOW(),
			updated_at        = NOW()
		WHERE id = $3 AND user_id = $4
	`, outcome, responseTimeHours, id, userID)
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return content.ErrTemplateNotFound
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*domain.ContentTemplate, error) {
	var (
		t          domain.ContentTemplate
		category   string
		tplType    string
		variables  []byte
		rules      []byte
		lastUsedAt sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Name, &category, &tplType, &t.Body, &variables, &rules,
		&t.Performance.UsageCount, &t.Performance.SuccessRate,
		&t.Performance.AvgResponseTime, &lastUsedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Category = domain.ContentCategory(category)
	t.Type = domain.TemplateType(tplType)
	if lastUsedAt.Valid {
		t.Performance.LastUsedAt = &lastUsedAt.Time
	}
	if len(variables) > 0 {
		if err := json.Unmarshal(variables, &t.Variables); err != nil {
			return nil, fmt.Errorf("unmarshal variables: %w", err)
		}
	}
	if len(rules) > 0 {
		if err := json.Unmarshal(rules, &t.Rules); err != nil {
			return nil, fmt.Errorf("unmarshal rules: %w", err)
		}
	}
	return &t, nil
}
