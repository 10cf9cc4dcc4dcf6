package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ignite/jarvis-crm/internal/domain"
)

func staticSource(values map[string]string) SourceResolver {
	return SourceResolverFunc(func(_ context.Context, _, field string) (string, bool, error) {
		v, ok := values[field]
		return v, ok, nil
	})
}

func TestResolvePrecedence(t *testing.T) {
	crm := staticSource(map[string]string{"contact.first_name": "Ada"})
	r := NewResolver(map[domain.SourceKind]SourceResolver{domain.SourceCRMField: crm}, 0)

	variable := domain.ContentVariable{
		Name: "first_name",
		Type: domain.VarDynamic,
		DynamicSource: &domain.DynamicSource{
			Kind:     domain.SourceCRMField,
			Field:    "contact.first_name",
			Fallback: "there",
		},
		DefaultValue: "friend",
	}

	tests := []struct {
		name      string
		variable  domain.ContentVariable
		overrides map[string]string
		want      string
	}{
		{
			name:      "custom override wins over everything",
			variable:  variable,
			overrides: map[string]string{"first_name": "Grace"},
			want:      "Grace",
		},
		{
			name:     "dynamic source wins over fallback and default",
			variable: variable,
			want:     "Ada",
		},
		{
			name: "fallback when source misses",
			variable: domain.ContentVariable{
				Name: "first_name",
				DynamicSource: &domain.DynamicSource{
					Kind:     domain.SourceCRMField,
					Field:    "contact.nickname",
					Fallback: "there",
				},
				DefaultValue: "friend",
			},
			want: "there",
		},
		{
			name: "default when source misses and no fallback",
			variable: domain.ContentVariable{
				Name: "first_name",
				DynamicSource: &domain.DynamicSource{
					Kind:  domain.SourceCRMField,
					Field: "contact.nickname",
				},
				DefaultValue: "friend",
			},
			want: "friend",
		},
		{
			name: "empty override is still an override",
			variable: domain.ContentVariable{
				Name:         "first_name",
				DefaultValue: "friend",
			},
			overrides: map[string]string{"first_name": ""},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), "user-1", tt.variable, nil, tt.overrides)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveRequiredMissing(t *testing.T) {
	r := NewResolver(nil, 0)
	variable := domain.ContentVariable{Name: "company", Required: true}

	_, err := r.Resolve(context.Background(), "user-1", variable, nil, nil)
	var missing *MissingRequiredVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("Resolve() error = %v, want MissingRequiredVariableError", err)
	}
	if missing.Variable != "company" {
		t.Errorf("missing.Variable = %q, want %q", missing.Variable, "company")
	}
}

func TestResolveOptionalMissingIsEmpty(t *testing.T) {
	r := NewResolver(nil, 0)
	got, err := r.Resolve(context.Background(), "user-1", domain.ContentVariable{Name: "company"}, nil, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "" {
		t.Errorf("Resolve() = %q, want empty", got)
	}
}

func TestResolveContextDataSource(t *testing.T) {
	r := NewResolver(nil, 0)
	variable := domain.ContentVariable{
		Name: "deal_value",
		DynamicSource: &domain.DynamicSource{
			Kind:  domain.SourceContextData,
			Field: "deal.value",
		},
	}
	reqCtx := map[string]interface{}{
		"deal": map[string]interface{}{"value": 50000.0},
	}

	got, err := r.Resolve(context.Background(), "user-1", variable, reqCtx, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "50000" {
		t.Errorf("Resolve() = %q, want %q", got, "50000")
	}
}

func TestResolveSourceErrorFallsThrough(t *testing.T) {
	failing := SourceResolverFunc(func(_ context.Context, _, _ string) (string, bool, error) {
		return "", false, errors.New("crm unavailable")
	})
	r := NewResolver(map[domain.SourceKind]SourceResolver{domain.SourceCRMField: failing}, 0)

	variable := domain.ContentVariable{
		Name: "company",
		DynamicSource: &domain.DynamicSource{
			Kind:     domain.SourceCRMField,
			Field:    "account.name",
			Fallback: "your team",
		},
	}

	got, err := r.Resolve(context.Background(), "user-1", variable, nil, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "your team" {
		t.Errorf("Resolve() = %q, want fallback", got)
	}
}

func TestResolveSlowSourceTimesOut(t *testing.T) {
	slow := SourceResolverFunc(func(ctx context.Context, _, _ string) (string, bool, error) {
		select {
		case <-time.After(time.Second):
			return "too late", true, nil
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	})
	r := NewResolver(map[domain.SourceKind]SourceResolver{domain.SourceCRMField: slow}, 10*time.Millisecond)

	variable := domain.ContentVariable{
		Name: "company",
		DynamicSource: &domain.DynamicSource{
			Kind:     domain.SourceCRMField,
			Field:    "account.name",
			Fallback: "your team",
		},
	}

	got, err := r.Resolve(context.Background(), "user-1", variable, nil, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "your team" {
		t.Errorf("Resolve() = %q, want fallback after timeout", got)
	}
}

func TestResolveConstraints(t *testing.T) {
	r := NewResolver(nil, 0)

	tests := []struct {
		name       string
		validation *domain.VariableValidation
		value      string
		wantErr    bool
	}{
		{"within bounds", &domain.VariableValidation{MinLength: 2, MaxLength: 10}, "Ada", false},
		{"too short", &domain.VariableValidation{MinLength: 5}, "Ada", true},
		{"too long", &domain.VariableValidation{MaxLength: 2}, "Ada", true},
		{"pattern match", &domain.VariableValidation{Pattern: `^[A-Z]`}, "Ada", false},
		{"pattern mismatch", &domain.VariableValidation{Pattern: `^[0-9]+$`}, "Ada", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variable := domain.ContentVariable{Name: "v", Validation: tt.validation}
			_, err := r.Resolve(context.Background(), "u", variable, nil, map[string]string{"v": tt.value})

			var verr *ValidationError
			if tt.wantErr && !errors.As(err, &verr) {
				t.Errorf("Resolve() error = %v, want ValidationError", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Resolve() unexpected error = %v", err)
			}
		})
	}
}
