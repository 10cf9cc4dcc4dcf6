package content

import (
	"strings"

	"github.com/ignite/jarvis-crm/internal/domain"
)

// EvaluateCondition decides whether one rule condition holds for one request
// context. An unresolvable field path means the rule does not fire; it is
// never an error. Unknown operators also evaluate to false — they are
// rejected at template creation, so hitting one here means the template
// predates the current validation.
func EvaluateCondition(cond domain.RuleCondition, ctx map[string]interface{}) bool {
	resolved, ok := LookupPath(ctx, cond.Field)
	if !ok {
		return false
	}

	switch cond.Operator {
	case domain.OpEquals:
		return equalAfterCoercion(resolved, cond.Value)

	case domain.OpContains:
		needle, isStr := cond.Value.(string)
		if !isStr {
			return false
		}
		return strings.Contains(stringify(resolved), needle)

	case domain.OpGreaterThan:
		left, lok := asNumber(resolved)
		right, rok := asNumber(cond.Value)
		return lok && rok && left > right

	case domain.OpLessThan:
		left, lok := asNumber(resolved)
		right, rok := asNumber(cond.Value)
		return lok && rok && left < right

	case domain.OpIn:
		list, ok := comparisonList(cond.Value)
		return ok && listContains(list, resolved)

	case domain.OpNotIn:
		list, ok := comparisonList(cond.Value)
		return ok && !listContains(list, resolved)
	}

	return false
}

// equalAfterCoercion implements strict equality after coercing the resolved
// value to the comparison value's type.
func equalAfterCoercion(resolved, comparison interface{}) bool {
	switch cmp := comparison.(type) {
	case bool:
		b, ok := resolved.(bool)
		return ok && b == cmp
	case float64, float32, int, int64:
		left, lok := asNumber(resolved)
		right, rok := asNumber(comparison)
		return lok && rok && left == right
	case string:
		return stringify(resolved) == cmp
	default:
		return stringify(resolved) == stringify(comparison)
	}
}

// comparisonList normalizes the IN/NOT_IN comparison value. JSON decoding
// produces []interface{}; typed slices are accepted for callers constructing
// rules in Go.
func comparisonList(v interface{}) ([]interface{}, bool) {
	switch list := v.(type) {
	case []interface{}:
		return list, true
	case []string:
		out := make([]interface{}, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out, true
	case []float64:
		out := make([]interface{}, len(list))
		for i, f := range list {
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}

func listContains(list []interface{}, resolved interface{}) bool {
	for _, item := range list {
		if equalAfterCoercion(resolved, item) {
			return true
		}
	}
	return false
}
