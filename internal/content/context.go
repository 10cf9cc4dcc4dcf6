package content

import (
	"fmt"
	"strconv"
	"strings"
)

// LookupPath walks a dot-separated path through a request context object.
// It is the single path-resolution primitive shared by the variable resolver
// (context_data sources) and the rule evaluator, so both see identical
// semantics. The second return is false if any segment is missing or an
// intermediate value is not a plain mapping.
func LookupPath(ctx map[string]interface{}, path string) (interface{}, bool) {
	if ctx == nil || path == "" {
		return nil, false
	}

	var current interface{} = ctx
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// stringify renders a context value the way it should appear in content.
// Floats that carry integral values print without a decimal point, so JSON
// numbers like 75000 don't surface as "75000.000000".
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// asNumber coerces a context or comparison value to float64.
func asNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
