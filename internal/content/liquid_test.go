package content

import (
	"strings"
	"testing"
)

func TestRendererFilters(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		body     string
		bindings map[string]interface{}
		want     string
	}{
		{
			name:     "default filter with missing binding",
			body:     `Hi {{ company | default: "your team" }}`,
			bindings: map[string]interface{}{},
			want:     "Hi your team",
		},
		{
			name:     "default filter with present binding",
			body:     `Hi {{ company | default: "your team" }}`,
			bindings: map[string]interface{}{"company": "Ignite"},
			want:     "Hi Ignite",
		},
		{
			name:     "first_name",
			body:     `{{ recipient_name | first_name }}`,
			bindings: map[string]interface{}{"recipient_name": "Ada Lovelace"},
			want:     "Ada",
		},
		{
			name:     "capitalize",
			body:     `{{ role | capitalize }}`,
			bindings: map[string]interface{}{"role": "director"},
			want:     "Director",
		},
		{
			name:     "shorten",
			body:     `{{ summary | shorten: 10 }}`,
			bindings: map[string]interface{}{"summary": "a very long summary line"},
			want:     "a very ...",
		},
		{
			name:     "currency",
			body:     `{{ deal_value | currency }}`,
			bindings: map[string]interface{}{"deal_value": 1250000},
			want:     "$1,250,000",
		},
		{
			name:     "percentage",
			body:     `{{ win_rate | percentage }}`,
			bindings: map[string]interface{}{"win_rate": 42.5},
			want:     "42.5%",
		},
		{
			name:     "conditional block",
			body:     `{% if stage == "negotiation" %}Almost there.{% else %}Early days.{% endif %}`,
			bindings: map[string]interface{}{"stage": "negotiation"},
			want:     "Almost there.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render("", tt.body, tt.bindings)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRendererParseRejectsBadSyntax(t *testing.T) {
	r := NewRenderer()
	if err := r.Parse(`{% if x %}unclosed`); err == nil {
		t.Error("Parse() accepted unclosed tag")
	}
	if err := r.Parse(`plain {{ name }}`); err != nil {
		t.Errorf("Parse() rejected valid body: %v", err)
	}
}

func TestRendererCacheInvalidate(t *testing.T) {
	r := NewRenderer()

	got, err := r.Render("tpl-1", `v1 {{ name }}`, map[string]interface{}{"name": "x"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "v1 x" {
		t.Fatalf("Render() = %q", got)
	}

	// Same key still serves the cached compilation.
	got, err = r.Render("tpl-1", `v2 {{ name }}`, map[string]interface{}{"name": "x"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "v1 x" {
		t.Errorf("Render() = %q, cache was bypassed", got)
	}

	r.Invalidate("tpl-1")
	got, err = r.Render("tpl-1", `v2 {{ name }}`, map[string]interface{}{"name": "x"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "v2 x" {
		t.Errorf("Render() = %q after invalidate, want recompile", got)
	}
}

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{1234.5, "1,234.50"},
		{-9876, "-9,876"},
	}
	for _, tt := range tests {
		if got := formatThousands(tt.in); got != tt.want {
			t.Errorf("formatThousands(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFiltersCatalogMatchesRegistrations(t *testing.T) {
	r := NewRenderer()
	for _, f := range r.Filters() {
		if f.Name == "" || f.Description == "" || !strings.Contains(f.Example, f.Name) {
			t.Errorf("malformed filter entry: %+v", f)
		}
	}
}
