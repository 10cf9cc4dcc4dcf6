package content

import "github.com/ignite/jarvis-crm/internal/domain"

// OperatorMetadata describes one condition operator for UI builders.
type OperatorMetadata struct {
	Operator      domain.Operator `json:"operator"`
	Label         string          `json:"label"`
	Description   string          `json:"description"`
	RequiresArray bool            `json:"requires_array"`
}

// OperatorCatalog returns metadata for every supported rule operator.
func OperatorCatalog() []OperatorMetadata {
	return []OperatorMetadata{
		{domain.OpEquals, "Equals", "Strict equality after coercing to the comparison value's type", false},
		{domain.OpContains, "Contains", "Resolved value contains the text", false},
		{domain.OpGreaterThan, "Greater than", "Numeric comparison; non-numeric operands never fire", false},
		{domain.OpLessThan, "Less than", "Numeric comparison; non-numeric operands never fire", false},
		{domain.OpIn, "Is one of", "Resolved value is a member of the list", true},
		{domain.OpNotIn, "Is not one of", "Resolved value is not a member of the list", true},
	}
}
