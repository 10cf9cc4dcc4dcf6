package content

import (
	"fmt"
	"regexp"

	"github.com/ignite/jarvis-crm/internal/domain"
)

// TemplateDraft holds the caller-supplied fields for a new template.
type TemplateDraft struct {
	Name      string                       `json:"name"`
	Category  domain.ContentCategory       `json:"category"`
	Type      domain.TemplateType          `json:"type"`
	Body      string                       `json:"body"`
	Variables []domain.ContentVariable     `json:"variables"`
	Rules     []domain.PersonalizationRule `json:"personalization_rules"`
}

// ValidateDraft checks a template draft for every problem that must be
// caught at creation time: bad enums, duplicate variable names, malformed
// rule shapes, uncompilable validation patterns, and (for adaptive
// templates) Liquid syntax errors. Rejecting here keeps generation free of
// template-shape failures.
func ValidateDraft(d TemplateDraft, renderer *Renderer) []ValidationError {
	var issues []ValidationError
	add := func(field, format string, args ...interface{}) {
		issues = append(issues, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if d.Name == "" {
		add("name", "name is required")
	}
	if !d.Category.Valid() {
		add("category", "unknown category %q", d.Category)
	}
	if !d.Type.Valid() {
		add("type", "unknown template type %q", d.Type)
	}

	seen := make(map[string]bool, len(d.Variables))
	for i, v := range d.Variables {
		field := fmt.Sprintf("variables[%d]", i)
		if v.Name == "" {
			add(field, "variable name is required")
			continue
		}
		if seen[v.Name] {
			add(field, "duplicate variable name %q", v.Name)
		}
		seen[v.Name] = true

		if !v.Type.Valid() {
			add(field, "unknown variable type %q", v.Type)
		}
		if v.Type == domain.VarSelect && len(v.Options) == 0 {
			add(field, "select variable %q needs options", v.Name)
		}
		if src := v.DynamicSource; src != nil {
			if !src.Kind.Valid() {
				add(field, "unknown source kind %q", src.Kind)
			}
			if src.Field == "" {
				add(field, "dynamic source needs a field path")
			}
		}
		if v.Validation != nil && v.Validation.Pattern != "" {
			if _, err := regexp.Compile(v.Validation.Pattern); err != nil {
				add(field, "validation pattern does not compile: %v", err)
			}
		}
	}

	for i, r := range d.Rules {
		field := fmt.Sprintf("personalization_rules[%d]", i)
		if r.Name == "" {
			add(field, "rule name is required")
		}
		if r.Condition.Field == "" {
			add(field, "condition field path is required")
		}
		if !r.Condition.Operator.Valid() {
			add(field, "unknown operator %q", r.Condition.Operator)
		}
		if (r.Condition.Operator == domain.OpIn || r.Condition.Operator == domain.OpNotIn) && r.Condition.Value != nil {
			if _, ok := comparisonList(r.Condition.Value); !ok {
				add(field, "operator %q requires a list comparison value", r.Condition.Operator)
			}
		}
		if !r.Action.Kind.Valid() {
			add(field, "unknown action kind %q", r.Action.Kind)
		}
		switch r.Action.Kind {
		case domain.ActionReplaceText:
			if r.Action.From == "" {
				add(field, "replace_text needs a from/to pair")
			}
		case domain.ActionAddSection, domain.ActionRemoveSection, domain.ActionAddCallToAction:
			if r.Action.Content == "" {
				add(field, "%s needs content", r.Action.Kind)
			}
		}
	}

	if d.Type == domain.TypeAdaptive && renderer != nil {
		if err := renderer.Parse(d.Body); err != nil {
			add("body", "liquid syntax: %v", err)
		}
	}

	return issues
}
