package content

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/jarvis-crm/internal/domain"
)

const (
	previewLength    = 150
	subjectMaxLength = 78
)

// Service implements the content generation business logic. It coordinates
// the resolver, rule evaluator, assembler, and scoring over the repository
// interfaces. All public methods are safe for concurrent use if the
// underlying repositories are concurrency-safe; a single generation runs
// end-to-end without interleaving.
type Service struct {
	templates TemplateRepository
	history   HistoryRepository
	resolver  *Resolver
	renderer  *Renderer
	variants  *VariantGenerator
	tone      ToneTransformer
	newID     func() string
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithSources installs external dynamic-source resolvers (CRM, behavioral,
// performance metrics) with the given per-lookup timeout.
func WithSources(sources map[domain.SourceKind]SourceResolver, timeout time.Duration) Option {
	return func(s *Service) { s.resolver = NewResolver(sources, timeout) }
}

// WithToneTransformer installs the modify_tone collaborator.
func WithToneTransformer(t ToneTransformer) Option {
	return func(s *Service) { s.tone = t }
}

// WithVariantFuncs swaps the condense/expand seams used for alternatives.
func WithVariantFuncs(condense CondenseFunc, expand ExpandFunc) Option {
	return func(s *Service) {
		s.variants = NewVariantGenerator(condense, expand, s.newID)
	}
}

// WithIDGenerator replaces the id collaborator (uuid by default). Ids must
// be collision-free under concurrent creation; wall-clock ids are not.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
		s.variants = NewVariantGenerator(nil, nil, newID)
	}
}

// WithClock replaces the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a content service backed by the given repositories.
func NewService(templates TemplateRepository, history HistoryRepository, opts ...Option) *Service {
	s := &Service{
		templates: templates,
		history:   history,
		resolver:  NewResolver(nil, 0),
		renderer:  NewRenderer(),
		newID:     uuid.NewString,
		now:       time.Now,
	}
	s.variants = NewVariantGenerator(nil, nil, s.newID)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Renderer exposes the Liquid renderer for the filter catalog endpoint.
func (s *Service) Renderer() *Renderer { return s.renderer }

// ==========================================
// TEMPLATE CRUD
// ==========================================

// CreateTemplate validates a draft and persists it with zeroed performance
// counters. Returns a *ValidationError for the first problem found.
func (s *Service) CreateTemplate(ctx context.Context, userID string, draft TemplateDraft) (*domain.ContentTemplate, error) {
	if issues := ValidateDraft(draft, s.renderer); len(issues) > 0 {
		return nil, &issues[0]
	}

	now := s.now().UTC()
	t := &domain.ContentTemplate{
		ID:        s.newID(),
		UserID:    userID,
		Name:      draft.Name,
		Category:  draft.Category,
		Type:      draft.Type,
		Body:      draft.Body,
		Variables: draft.Variables,
		Rules:     draft.Rules,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListTemplates returns the user's templates, optionally filtered by
// category ("" means all).
func (s *Service) ListTemplates(ctx context.Context, userID string, category domain.ContentCategory) ([]domain.ContentTemplate, error) {
	return s.templates.List(ctx, userID, category)
}

// GetTemplate returns one template.
func (s *Service) GetTemplate(ctx context.Context, userID, id string) (*domain.ContentTemplate, error) {
	return s.templates.Get(ctx, userID, id)
}

// RecordUsage folds one downstream outcome (reply received, deal advanced)
// into the template's performance counters. Generation never touches them.
func (s *Service) RecordUsage(ctx context.Context, userID, id string, success bool, responseTimeHours float64) error {
	return s.templates.IncrementUsage(ctx, userID, id, success, responseTimeHours)
}

// History returns the user's generated content, newest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]domain.GeneratedContent, error) {
	return s.history.List(ctx, userID, limit)
}

// ==========================================
// GENERATION
// ==========================================

// Generate runs one end-to-end content generation: template resolution,
// variable resolution, rule application, scoring, and alternatives. The
// result is appended to the user's history before being returned.
func (s *Service) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedContent, error) {
	applyRequestDefaults(&req)

	tpl, err := s.resolveTemplate(ctx, req)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(tpl.Variables))
	for _, v := range tpl.Variables {
		value, err := s.resolver.Resolve(ctx, req.UserID, v, req.Context, req.CustomVariables)
		if err != nil {
			return nil, err
		}
		values[v.Name] = value
	}

	text, err := s.renderBody(tpl, values, req.Context)
	if err != nil {
		return nil, err
	}

	text, applied := ApplyRules(text, tpl.Rules, req.Context, req.IncludeCallToAction, req.Tone, s.tone)

	gc := &domain.GeneratedContent{
		ID:         s.newID(),
		UserID:     req.UserID,
		TemplateID: tpl.ID,
		Content:    text,
		Subject:    deriveSubject(text),
		Preview:    derivePreview(text),
		PersonalizationApplied: domain.PersonalizationApplied{
			RulesApplied:      applied,
			VariablesResolved: values,
			Tone:              req.Tone,
			Length:            req.Length,
		},
		Performance: domain.PerformanceEstimate{
			EstimatedEngagement: EstimateEngagement(req),
			Confidence:          confidenceFor(req.PersonalizationLevel),
			Suggestions:         Suggestions(text),
		},
		Alternatives: s.variants.Generate(text),
		Metadata:     BuildMetadata(text),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.history.Append(ctx, gc); err != nil {
		// Generation succeeded; losing one history entry is not worth
		// failing the request over.
		log.Printf("[content.Service] history append failed for user %s: %v", req.UserID, err)
	}
	return gc, nil
}

func (s *Service) resolveTemplate(ctx context.Context, req domain.GenerationRequest) (*domain.ContentTemplate, error) {
	if req.TemplateID != "" {
		return s.templates.Get(ctx, req.UserID, req.TemplateID)
	}
	if !req.Category.Valid() {
		return nil, &ValidationError{Field: "category", Message: "a template id or a valid category is required"}
	}
	return s.templates.GetByCategory(ctx, req.UserID, req.Category)
}

func (s *Service) renderBody(tpl *domain.ContentTemplate, values map[string]string, reqCtx map[string]interface{}) (string, error) {
	if tpl.Type != domain.TypeAdaptive {
		return Substitute(tpl.Body, tpl.Variables, values), nil
	}

	bindings := make(map[string]interface{}, len(reqCtx)+len(values))
	for k, v := range reqCtx {
		bindings[k] = v
	}
	for k, v := range values {
		bindings[k] = v
	}
	return s.renderer.Render(tpl.ID, tpl.Body, bindings)
}

func applyRequestDefaults(req *domain.GenerationRequest) {
	if req.Tone == "" {
		req.Tone = domain.ToneProfessional
	}
	if req.Length == "" {
		req.Length = domain.LengthMedium
	}
	if req.PersonalizationLevel == "" {
		req.PersonalizationLevel = domain.LevelBasic
	}
}

// confidenceFor mirrors the engagement heuristic: deeper personalization
// means the estimate is grounded in more signals.
func confidenceFor(level domain.PersonalizationLevel) float64 {
	switch level {
	case domain.LevelMaximum:
		return 0.85
	case domain.LevelAdvanced:
		return 0.75
	default:
		return 0.65
	}
}

// deriveSubject takes the first non-empty line, truncated to the
// conventional subject length.
func deriveSubject(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > subjectMaxLength {
			return line[:subjectMaxLength-3] + "..."
		}
		return line
	}
	return ""
}

func derivePreview(text string) string {
	if len(text) <= previewLength {
		return text
	}
	return text[:previewLength]
}

// IsNotFound reports whether err is the template lookup miss, for callers
// that don't want to import the sentinel directly.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}
