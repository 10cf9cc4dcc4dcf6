package content

import (
	"sort"
	"strings"

	"github.com/ignite/jarvis-crm/internal/domain"
)

// ToneTransformer rewrites text into a target tone. The engine ships without
// an implementation; modify_tone actions are skipped until one is injected.
type ToneTransformer interface {
	Transform(text string, tone domain.Tone) string
}

// Substitute replaces every literal {{name}} placeholder for the declared
// variables with its resolved value. Placeholders for variables not declared
// on the template are left untouched — the template author controls both
// sides, so an unknown marker is literal text, not an error.
func Substitute(body string, variables []domain.ContentVariable, values map[string]string) string {
	out := body
	for _, v := range variables {
		out = strings.ReplaceAll(out, "{{"+v.Name+"}}", values[v.Name])
	}
	return out
}

// ApplyRules evaluates the template's rules against the request context in
// ascending priority order (declaration order on ties) and applies each
// firing rule's action to the working text. It returns the transformed text
// and the names of the rules that were actually applied.
//
// A rule whose condition fired but whose action was suppressed — an
// add_call_to_action when the request opted out, or a modify_tone with no
// transformer installed — is NOT recorded: the audit trail lists rules that
// influenced the content.
func ApplyRules(text string, rules []domain.PersonalizationRule, reqCtx map[string]interface{}, includeCTA bool, tone domain.Tone, transformer ToneTransformer) (string, []string) {
	active := make([]domain.PersonalizationRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority < active[j].Priority
	})

	applied := []string{}
	for _, rule := range active {
		if !EvaluateCondition(rule.Condition, reqCtx) {
			continue
		}
		next, ok := applyAction(text, rule.Action, includeCTA, tone, transformer)
		if !ok {
			continue
		}
		text = next
		applied = append(applied, rule.Name)
	}
	return text, applied
}

// applyAction returns the transformed text and whether the action ran at all.
func applyAction(text string, action domain.RuleAction, includeCTA bool, tone domain.Tone, transformer ToneTransformer) (string, bool) {
	switch action.Kind {
	case domain.ActionAddSection:
		if action.Position != nil {
			return insertAt(text, action.Content, *action.Position), true
		}
		return text + action.Content, true

	case domain.ActionRemoveSection:
		// No-op when the marker text is absent, but still counts as applied.
		return strings.Replace(text, action.Content, "", 1), true

	case domain.ActionReplaceText:
		return strings.Replace(text, action.From, action.To, 1), true

	case domain.ActionModifyTone:
		if transformer == nil {
			return text, false
		}
		return transformer.Transform(text, tone), true

	case domain.ActionAddCallToAction:
		if !includeCTA {
			return text, false
		}
		if text == "" {
			return action.Content, true
		}
		return strings.TrimRight(text, "\n") + "\n\n" + action.Content, true
	}

	return text, false
}

// insertAt inserts content at a character offset, clamped to the text bounds.
func insertAt(text, content string, pos int) string {
	if pos < 0 {
		pos = 0
	}
	if pos > len(text) {
		pos = len(text)
	}
	return text[:pos] + content + text[pos:]
}
