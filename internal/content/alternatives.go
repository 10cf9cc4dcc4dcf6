package content

import (
	"strings"

	"github.com/ignite/jarvis-crm/internal/domain"
)

// Variant labels and their fixed heuristic confidences.
const (
	variantConcise  = "concise"
	variantDetailed = "detailed"

	conciseConfidence  = 0.88
	detailedConfidence = 0.82
)

// Fixed suffixes for the placeholder variants.
const (
	conciseMarker  = "\n\n[Condensed for a quick read]"
	detailedSuffix = "\n\nP.S. Happy to share more detail or a relevant case study if useful."
)

// Condense and Expand are the seams for a real generative-text collaborator.
// The defaults are intentionally cheap textual transforms; swapping in a
// model-backed implementation must not touch the assembler.
type (
	CondenseFunc func(text string) string
	ExpandFunc   func(text string) string
)

// VariantGenerator derives alternative renditions of assembled content.
type VariantGenerator struct {
	condense CondenseFunc
	expand   ExpandFunc
	newID    func() string
}

// NewVariantGenerator creates a generator with the default transforms.
// Either func may be nil to keep the default.
func NewVariantGenerator(condense CondenseFunc, expand ExpandFunc, newID func() string) *VariantGenerator {
	g := &VariantGenerator{
		condense: defaultCondense,
		expand:   defaultExpand,
		newID:    newID,
	}
	if condense != nil {
		g.condense = condense
	}
	if expand != nil {
		g.expand = expand
	}
	return g
}

// Generate returns the concise and detailed variants for the content.
// Empty content yields no variants.
func (g *VariantGenerator) Generate(text string) []domain.ContentAlternative {
	if text == "" {
		return nil
	}
	return []domain.ContentAlternative{
		{
			ID:         g.newID(),
			Content:    g.condense(text),
			Variation:  variantConcise,
			Confidence: conciseConfidence,
		},
		{
			ID:         g.newID(),
			Content:    g.expand(text),
			Variation:  variantDetailed,
			Confidence: detailedConfidence,
		},
	}
}

// defaultCondense keeps the first three newline-delimited lines.
func defaultCondense(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 3 {
		lines = lines[:3]
	}
	return strings.Join(lines, "\n") + conciseMarker
}

func defaultExpand(text string) string {
	return text + detailedSuffix
}
