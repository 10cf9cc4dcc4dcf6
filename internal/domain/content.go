package domain

import "time"

// ==========================================
// ENUMS
// ==========================================

// ContentCategory classifies what kind of outreach a template produces.
type ContentCategory string

const (
	CategoryEmail             ContentCategory = "email"
	CategoryLinkedIn          ContentCategory = "linkedin"
	CategoryProposal          ContentCategory = "proposal"
	CategoryPresentation      ContentCategory = "presentation"
	CategoryFollowUp          ContentCategory = "follow_up"
	CategoryMeetingInvite     ContentCategory = "meeting_invite"
	CategoryThankYou          ContentCategory = "thank_you"
	CategoryObjectionHandling ContentCategory = "objection_handling"
)

// Valid reports whether c is one of the known categories.
func (c ContentCategory) Valid() bool {
	switch c {
	case CategoryEmail, CategoryLinkedIn, CategoryProposal, CategoryPresentation,
		CategoryFollowUp, CategoryMeetingInvite, CategoryThankYou, CategoryObjectionHandling:
		return true
	}
	return false
}

// TemplateType determines how a template body is rendered.
type TemplateType string

const (
	// TypeTemplate and TypeDynamic bodies use literal {{name}} placeholders.
	TypeTemplate TemplateType = "template"
	TypeDynamic  TemplateType = "dynamic"
	// TypeAdaptive bodies may use Liquid markup (filters, conditionals) and
	// are rendered with the resolved variables as bindings.
	TypeAdaptive TemplateType = "adaptive"
)

// Valid reports whether t is a known template type.
func (t TemplateType) Valid() bool {
	switch t {
	case TypeTemplate, TypeDynamic, TypeAdaptive:
		return true
	}
	return false
}

// VariableType is the declared semantic type of a substitution point.
type VariableType string

const (
	VarText    VariableType = "text"
	VarNumber  VariableType = "number"
	VarDate    VariableType = "date"
	VarBoolean VariableType = "boolean"
	VarSelect  VariableType = "select"
	VarDynamic VariableType = "dynamic"
)

// Valid reports whether v is a known variable type.
func (v VariableType) Valid() bool {
	switch v {
	case VarText, VarNumber, VarDate, VarBoolean, VarSelect, VarDynamic:
		return true
	}
	return false
}

// SourceKind names where a dynamic variable value comes from.
type SourceKind string

const (
	SourceCRMField          SourceKind = "crm_field"
	SourceBehavioralData    SourceKind = "behavioral_data"
	SourcePerformanceMetric SourceKind = "performance_metric"
	SourceContextData       SourceKind = "context_data"
)

// Valid reports whether k is a known source kind.
func (k SourceKind) Valid() bool {
	switch k {
	case SourceCRMField, SourceBehavioralData, SourcePerformanceMetric, SourceContextData:
		return true
	}
	return false
}

// Operator is a rule-condition comparison operator.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpContains    Operator = "contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpIn          Operator = "in"
	OpNotIn       Operator = "not_in"
)

// Valid reports whether o is a known operator.
func (o Operator) Valid() bool {
	switch o {
	case OpEquals, OpContains, OpGreaterThan, OpLessThan, OpIn, OpNotIn:
		return true
	}
	return false
}

// ActionKind is what a firing personalization rule does to the content.
type ActionKind string

const (
	ActionReplaceText     ActionKind = "replace_text"
	ActionAddSection      ActionKind = "add_section"
	ActionRemoveSection   ActionKind = "remove_section"
	ActionModifyTone      ActionKind = "modify_tone"
	ActionAddCallToAction ActionKind = "add_call_to_action"
)

// Valid reports whether k is a known action kind.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionReplaceText, ActionAddSection, ActionRemoveSection,
		ActionModifyTone, ActionAddCallToAction:
		return true
	}
	return false
}

// Tone is the requested voice for generated content.
type Tone string

const (
	ToneProfessional   Tone = "professional"
	ToneFriendly       Tone = "friendly"
	ToneUrgent         Tone = "urgent"
	ToneConversational Tone = "conversational"
	ToneFormal         Tone = "formal"
)

// ContentLength is the requested length bucket.
type ContentLength string

const (
	LengthShort  ContentLength = "short"
	LengthMedium ContentLength = "medium"
	LengthLong   ContentLength = "long"
)

// PersonalizationLevel controls how aggressively content is personalized.
type PersonalizationLevel string

const (
	LevelBasic    PersonalizationLevel = "basic"
	LevelAdvanced PersonalizationLevel = "advanced"
	LevelMaximum  PersonalizationLevel = "maximum"
)

// Complexity buckets generated content by reading difficulty.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Sentiment is the keyword-derived emotional label of generated content.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ==========================================
// TEMPLATE STRUCTURES
// ==========================================

// DynamicSource binds a variable to an external or contextual lookup.
type DynamicSource struct {
	Kind     SourceKind `json:"kind"`
	Field    string     `json:"field"`
	Fallback string     `json:"fallback,omitempty"`
}

// VariableValidation holds optional constraints checked on resolved values.
type VariableValidation struct {
	MinLength int    `json:"min_length,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// ContentVariable is one substitution point in a template body.
type ContentVariable struct {
	Name          string              `json:"name"`
	Type          VariableType        `json:"type"`
	Required      bool                `json:"required"`
	DefaultValue  string              `json:"default_value,omitempty"`
	Options       []string            `json:"options,omitempty"`
	Validation    *VariableValidation `json:"validation,omitempty"`
	DynamicSource *DynamicSource      `json:"dynamic_source,omitempty"`
}

// RuleCondition decides whether a personalization rule fires.
// Field is a dot-path into the generation request's context object.
type RuleCondition struct {
	Field    string      `json:"field"`
	Operator Operator    `json:"operator"`
	Value    interface{} `json:"value"`
}

// RuleAction transforms the assembled content when its rule fires.
// replace_text uses the explicit From/To pair; the other kinds use Content.
type RuleAction struct {
	Kind     ActionKind `json:"kind"`
	Content  string     `json:"content,omitempty"`
	From     string     `json:"from,omitempty"`
	To       string     `json:"to,omitempty"`
	Position *int       `json:"position,omitempty"`
}

// PersonalizationRule is a condition/action pair on a template.
// Lower priority runs first; ties break by declaration order.
type PersonalizationRule struct {
	Name      string        `json:"name"`
	Condition RuleCondition `json:"condition"`
	Action    RuleAction    `json:"action"`
	Priority  int           `json:"priority"`
	IsActive  bool          `json:"is_active"`
}

// TemplatePerformance aggregates usage outcomes for a template. Counters are
// mutated only by usage tracking, never by generation itself.
type TemplatePerformance struct {
	UsageCount      int        `json:"usage_count"`
	SuccessRate     float64    `json:"success_rate"`
	AvgResponseTime float64    `json:"avg_response_time_hours"`
	LastUsedAt      *time.Time `json:"last_used_at,omitempty"`
}

// ContentTemplate is a reusable message skeleton with named placeholders,
// variable declarations, and conditional personalization rules.
type ContentTemplate struct {
	ID          string                `json:"id"`
	UserID      string                `json:"user_id"`
	Name        string                `json:"name"`
	Category    ContentCategory       `json:"category"`
	Type        TemplateType          `json:"type"`
	Body        string                `json:"body"`
	Variables   []ContentVariable     `json:"variables"`
	Rules       []PersonalizationRule `json:"personalization_rules"`
	Performance TemplatePerformance   `json:"performance"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// Variable returns the declared variable with the given name, or nil.
func (t *ContentTemplate) Variable(name string) *ContentVariable {
	for i := range t.Variables {
		if t.Variables[i].Name == name {
			return &t.Variables[i]
		}
	}
	return nil
}

// ==========================================
// GENERATION STRUCTURES
// ==========================================

// GenerationRequest is the ephemeral input to one content generation.
// CustomVariables are explicit overrides and take highest precedence.
type GenerationRequest struct {
	UserID               string                 `json:"user_id"`
	TemplateID           string                 `json:"template_id,omitempty"`
	Category             ContentCategory        `json:"category"`
	Context              map[string]interface{} `json:"context,omitempty"`
	PersonalizationLevel PersonalizationLevel   `json:"personalization_level"`
	Tone                 Tone                   `json:"tone"`
	Length               ContentLength          `json:"length"`
	IncludeCallToAction  bool                   `json:"include_call_to_action"`
	CustomVariables      map[string]string      `json:"custom_variables,omitempty"`
}

// PersonalizationApplied is the audit trail for one generation: which rules
// actually changed the content and what every variable resolved to.
type PersonalizationApplied struct {
	RulesApplied      []string          `json:"rules_applied"`
	VariablesResolved map[string]string `json:"variables_resolved"`
	Tone              Tone              `json:"tone"`
	Length            ContentLength     `json:"length"`
}

// PerformanceEstimate carries the deterministic engagement heuristic.
// This is a fixed scoring rule, not a statistical model.
type PerformanceEstimate struct {
	EstimatedEngagement float64  `json:"estimated_engagement"`
	Confidence          float64  `json:"confidence"`
	Suggestions         []string `json:"suggestions"`
}

// ContentAlternative is a cheap textual variant offered for user choice.
type ContentAlternative struct {
	ID         string  `json:"id"`
	Content    string  `json:"content"`
	Variation  string  `json:"variation"`
	Confidence float64 `json:"confidence"`
}

// ContentMetadata describes the assembled text.
type ContentMetadata struct {
	WordCount          int        `json:"word_count"`
	ReadingTimeMinutes int        `json:"reading_time_minutes"`
	Complexity         Complexity `json:"complexity"`
	Sentiment          Sentiment  `json:"sentiment"`
}

// GeneratedContent is the immutable output of one generation, kept in the
// requesting user's history.
type GeneratedContent struct {
	ID                     string                 `json:"id"`
	UserID                 string                 `json:"user_id"`
	TemplateID             string                 `json:"template_id"`
	Content                string                 `json:"content"`
	Subject                string                 `json:"subject"`
	Preview                string                 `json:"preview"`
	PersonalizationApplied PersonalizationApplied `json:"personalization_applied"`
	Performance            PerformanceEstimate    `json:"performance"`
	Alternatives           []ContentAlternative   `json:"alternatives"`
	Metadata               ContentMetadata        `json:"metadata"`
	CreatedAt              time.Time              `json:"created_at"`
}
