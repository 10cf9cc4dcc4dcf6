package content

import (
	"strings"
	"testing"

	"github.com/ignite/jarvis-crm/internal/domain"
)

func validDraft() TemplateDraft {
	return TemplateDraft{
		Name:     "intro email",
		Category: domain.CategoryEmail,
		Type:     domain.TypeTemplate,
		Body:     "Hi {{first_name}}",
		Variables: []domain.ContentVariable{
			{Name: "first_name", Type: domain.VarText, Required: true},
		},
		Rules: []domain.PersonalizationRule{
			{
				Name:      "enterprise greeting",
				Condition: domain.RuleCondition{Field: "company.size", Operator: domain.OpGreaterThan, Value: 500},
				Action:    domain.RuleAction{Kind: domain.ActionAddSection, Content: "extra"},
				IsActive:  true,
			},
		},
	}
}

func TestValidateDraft(t *testing.T) {
	renderer := NewRenderer()

	tests := []struct {
		name      string
		mutate    func(*TemplateDraft)
		wantField string
	}{
		{"valid draft passes", func(d *TemplateDraft) {}, ""},
		{"missing name", func(d *TemplateDraft) { d.Name = "" }, "name"},
		{"bad category", func(d *TemplateDraft) { d.Category = "newsletter" }, "category"},
		{"bad type", func(d *TemplateDraft) { d.Type = "static" }, "type"},
		{
			"duplicate variable names",
			func(d *TemplateDraft) {
				d.Variables = append(d.Variables, domain.ContentVariable{Name: "first_name", Type: domain.VarText})
			},
			"variables[1]",
		},
		{
			"select without options",
			func(d *TemplateDraft) {
				d.Variables = []domain.ContentVariable{{Name: "greeting", Type: domain.VarSelect}}
			},
			"variables[0]",
		},
		{
			"bad source kind",
			func(d *TemplateDraft) {
				d.Variables[0].DynamicSource = &domain.DynamicSource{Kind: "clipboard", Field: "x"}
			},
			"variables[0]",
		},
		{
			"source without field",
			func(d *TemplateDraft) {
				d.Variables[0].DynamicSource = &domain.DynamicSource{Kind: domain.SourceCRMField}
			},
			"variables[0]",
		},
		{
			"uncompilable pattern",
			func(d *TemplateDraft) {
				d.Variables[0].Validation = &domain.VariableValidation{Pattern: "("}
			},
			"variables[0]",
		},
		{
			"rule without name",
			func(d *TemplateDraft) { d.Rules[0].Name = "" },
			"personalization_rules[0]",
		},
		{
			"unknown operator",
			func(d *TemplateDraft) { d.Rules[0].Condition.Operator = "between" },
			"personalization_rules[0]",
		},
		{
			"in operator with scalar value",
			func(d *TemplateDraft) {
				d.Rules[0].Condition.Operator = domain.OpIn
				d.Rules[0].Condition.Value = "negotiation"
			},
			"personalization_rules[0]",
		},
		{
			"replace_text without from",
			func(d *TemplateDraft) {
				d.Rules[0].Action = domain.RuleAction{Kind: domain.ActionReplaceText, To: "x"}
			},
			"personalization_rules[0]",
		},
		{
			"add_section without content",
			func(d *TemplateDraft) {
				d.Rules[0].Action = domain.RuleAction{Kind: domain.ActionAddSection}
			},
			"personalization_rules[0]",
		},
		{
			"adaptive body with bad liquid",
			func(d *TemplateDraft) {
				d.Type = domain.TypeAdaptive
				d.Body = "{% if x %}unclosed"
			},
			"body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)

			issues := ValidateDraft(draft, renderer)
			if tt.wantField == "" {
				if len(issues) != 0 {
					t.Fatalf("ValidateDraft() = %v, want none", issues)
				}
				return
			}
			if len(issues) == 0 {
				t.Fatal("ValidateDraft() found no issues")
			}
			found := false
			for _, issue := range issues {
				if strings.HasPrefix(issue.Field, tt.wantField) {
					found = true
				}
			}
			if !found {
				t.Errorf("ValidateDraft() = %v, no issue on field %q", issues, tt.wantField)
			}
		})
	}
}
