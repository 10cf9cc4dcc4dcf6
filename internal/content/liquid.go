package content

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/osteele/liquid"
)

// Renderer renders adaptive template bodies with the Liquid template
// language. Plain templates use literal {{name}} substitution and never go
// through this path; adaptive templates get filters and conditionals with
// the resolved variables and request context as bindings.
type Renderer struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template, keyed by template id
}

// NewRenderer creates a renderer with the CRM filter set registered.
func NewRenderer() *Renderer {
	r := &Renderer{engine: liquid.NewEngine()}
	r.registerFilters()
	return r
}

func (r *Renderer) registerFilters() {
	// Fallback value: {{ company | default: "your team" }}
	r.engine.RegisterFilter("default", func(value interface{}, fallback string) interface{} {
		if value == nil {
			return fallback
		}
		s := fmt.Sprintf("%v", value)
		if s == "" || s == "<nil>" {
			return fallback
		}
		return value
	})

	// First word of a full name: {{ recipient_name | first_name }}
	r.engine.RegisterFilter("first_name", func(s string) string {
		fields := strings.Fields(s)
		if len(fields) == 0 {
			return s
		}
		return fields[0]
	})

	// Capitalize first letter: {{ role | capitalize }}
	r.engine.RegisterFilter("capitalize", func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	})

	// Truncate with ellipsis: {{ summary | shorten: 80 }}
	r.engine.RegisterFilter("shorten", func(s string, length int) string {
		if len(s) <= length {
			return s
		}
		if length <= 3 {
			return s[:length]
		}
		return s[:length-3] + "..."
	})

	// Deal values as currency: {{ deal_value | currency }}
	r.engine.RegisterFilter("currency", func(value interface{}) string {
		f, ok := asNumber(value)
		if !ok {
			return fmt.Sprintf("%v", value)
		}
		return "$" + formatThousands(f)
	})

	// Rates as percentages: {{ win_rate | percentage }}
	r.engine.RegisterFilter("percentage", func(value interface{}) string {
		f, ok := asNumber(value)
		if !ok {
			return fmt.Sprintf("%v", value)
		}
		return fmt.Sprintf("%.1f%%", f)
	})
}

// Parse compiles a template body, returning any Liquid syntax error. Used at
// template creation so bad adaptive templates are rejected early.
func (r *Renderer) Parse(body string) error {
	_, err := r.engine.ParseString(body)
	return err
}

// Render renders an adaptive body with the given bindings, caching the
// compiled template under cacheKey when one is provided.
func (r *Renderer) Render(cacheKey, body string, bindings map[string]interface{}) (string, error) {
	if cacheKey != "" {
		if cached, ok := r.cache.Load(cacheKey); ok {
			return cached.(*liquid.Template).RenderString(bindings)
		}
	}

	tpl, err := r.engine.ParseString(body)
	if err != nil {
		return "", fmt.Errorf("parse adaptive template: %w", err)
	}
	if cacheKey != "" {
		r.cache.Store(cacheKey, tpl)
	}

	out, err := tpl.RenderString(bindings)
	if err != nil {
		return "", fmt.Errorf("render adaptive template: %w", err)
	}
	return out, nil
}

// Invalidate drops a cached compiled template, e.g. after a template edit.
func (r *Renderer) Invalidate(cacheKey string) {
	r.cache.Delete(cacheKey)
}

// FilterInfo describes one registered Liquid filter for the catalog endpoint.
type FilterInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// Filters returns the catalog of filters available in adaptive templates.
func (r *Renderer) Filters() []FilterInfo {
	return []FilterInfo{
		{Name: "default", Description: "Provide a fallback value", Example: `{{ company | default: "your team" }}`},
		{Name: "first_name", Description: "First word of a full name", Example: `{{ recipient_name | first_name }}`},
		{Name: "capitalize", Description: "Capitalize the first letter", Example: `{{ role | capitalize }}`},
		{Name: "shorten", Description: "Truncate with ellipsis", Example: `{{ summary | shorten: 80 }}`},
		{Name: "currency", Description: "Format a number as dollars", Example: `{{ deal_value | currency }}`},
		{Name: "percentage", Description: "Format a rate as a percentage", Example: `{{ win_rate | percentage }}`},
	}
}

// formatThousands renders a number with comma separators and two decimals
// only when the value is fractional.
func formatThousands(f float64) string {
	neg := f < 0
	if neg {
		f = -f
	}
	whole := int64(f)
	frac := f - float64(whole)

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(c)
	}
	out := b.String()
	if frac > 0 {
		out += strings.TrimPrefix(fmt.Sprintf("%.2f", frac), "0")
	}
	if neg {
		return "-" + out
	}
	return out
}
