package content

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/ignite/jarvis-crm/internal/domain"
)

// SourceResolver looks up a dynamic variable value from an external system
// (CRM, behavioral store, performance metrics). Implementations live outside
// this package; the engine only sees the seam. The second return reports
// whether a value was found.
type SourceResolver interface {
	Lookup(ctx context.Context, userID, field string) (string, bool, error)
}

// SourceResolverFunc adapts a function to the SourceResolver interface.
type SourceResolverFunc func(ctx context.Context, userID, field string) (string, bool, error)

// Lookup implements SourceResolver.
func (f SourceResolverFunc) Lookup(ctx context.Context, userID, field string) (string, bool, error) {
	return f(ctx, userID, field)
}

// Resolver produces a final string value for one variable declaration and
// one request. It is a pure function of its inputs plus the injected source
// resolvers.
type Resolver struct {
	sources map[domain.SourceKind]SourceResolver
	// timeout bounds each external lookup so a slow CRM call cannot stall
	// assembly; a timed-out lookup is treated as unresolved.
	timeout time.Duration
}

// NewResolver creates a resolver with the given external source lookups.
// context_data sources are handled internally and need no entry in sources.
func NewResolver(sources map[domain.SourceKind]SourceResolver, lookupTimeout time.Duration) *Resolver {
	if lookupTimeout <= 0 {
		lookupTimeout = 2 * time.Second
	}
	return &Resolver{sources: sources, timeout: lookupTimeout}
}

// Resolve applies the precedence chain for one variable:
//
//  1. custom variable override (verbatim, no coercion)
//  2. declared dynamic source
//  3. source fallback, then declared default value
//  4. required and still unresolved -> MissingRequiredVariableError;
//     optional -> empty string
//
// Resolved non-empty values are checked against the variable's declared
// validation constraints.
func (r *Resolver) Resolve(ctx context.Context, userID string, v domain.ContentVariable, reqCtx map[string]interface{}, overrides map[string]string) (string, error) {
	value, resolved := r.resolveRaw(ctx, userID, v, reqCtx, overrides)

	if !resolved {
		if v.Required {
			return "", &MissingRequiredVariableError{Variable: v.Name}
		}
		return "", nil
	}

	if err := checkConstraints(v, value); err != nil {
		return "", err
	}
	return value, nil
}

func (r *Resolver) resolveRaw(ctx context.Context, userID string, v domain.ContentVariable, reqCtx map[string]interface{}, overrides map[string]string) (string, bool) {
	if override, ok := overrides[v.Name]; ok {
		return override, true
	}

	if src := v.DynamicSource; src != nil {
		if value, ok := r.lookupSource(ctx, userID, *src, reqCtx); ok {
			return value, true
		}
		if src.Fallback != "" {
			return src.Fallback, true
		}
	}

	if v.DefaultValue != "" {
		return v.DefaultValue, true
	}
	return "", false
}

func (r *Resolver) lookupSource(ctx context.Context, userID string, src domain.DynamicSource, reqCtx map[string]interface{}) (string, bool) {
	if src.Kind == domain.SourceContextData {
		value, ok := LookupPath(reqCtx, src.Field)
		if !ok {
			return "", false
		}
		return stringify(value), true
	}

	resolver, ok := r.sources[src.Kind]
	if !ok {
		return "", false
	}

	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	value, found, err := resolver.Lookup(lookupCtx, userID, src.Field)
	if err != nil || !found {
		// Errors and timeouts follow the same fallback chain as "no value".
		return "", false
	}
	return value, true
}

func checkConstraints(v domain.ContentVariable, value string) error {
	val := v.Validation
	if val == nil || value == "" {
		return nil
	}
	if val.MinLength > 0 && len(value) < val.MinLength {
		return &ValidationError{
			Field:   v.Name,
			Message: fmt.Sprintf("value shorter than minimum length %d", val.MinLength),
		}
	}
	if val.MaxLength > 0 && len(value) > val.MaxLength {
		return &ValidationError{
			Field:   v.Name,
			Message: fmt.Sprintf("value longer than maximum length %d", val.MaxLength),
		}
	}
	if val.Pattern != "" {
		// Patterns are compile-checked at template creation, so a failure
		// here means the value didn't match, not that the regex is bad.
		re, err := regexp.Compile(val.Pattern)
		if err != nil {
			return &ValidationError{Field: v.Name, Message: "invalid validation pattern"}
		}
		if !re.MatchString(value) {
			return &ValidationError{
				Field:   v.Name,
				Message: fmt.Sprintf("value does not match pattern %q", val.Pattern),
			}
		}
	}
	return nil
}
