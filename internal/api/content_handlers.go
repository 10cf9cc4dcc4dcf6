package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ignite/jarvis-crm/internal/content"
	"github.com/ignite/jarvis-crm/internal/domain"
)

// userIDFromRequest scopes every operation to the caller. Auth is handled
// upstream; the gateway injects the header after verifying the session.
func userIDFromRequest(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "default"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] write response: %v", err)
	}
}

// writeError maps service errors onto HTTP statuses. Unknown errors are
// returned as a generic 500 so internals don't leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var verr *content.ValidationError
	var merr *content.MissingRequiredVariableError
	switch {
	case errors.Is(err, content.ErrTemplateNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error(), "field": verr.Field})
	case errors.As(err, &merr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": merr.Error(), "variable": merr.Variable})
	default:
		log.Printf("[api] internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "jarvis-crm-content"})
}

// ==========================================
// GENERATION
// ==========================================

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.UserID = userIDFromRequest(r)

	gc, err := s.content.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gc)
}

// ==========================================
// TEMPLATES
// ==========================================

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	category := domain.ContentCategory(r.URL.Query().Get("category"))
	if category != "" && !category.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown category"})
		return
	}

	templates, err := s.content.ListTemplates(r.Context(), userIDFromRequest(r), category)
	if err != nil {
		writeError(w, err)
		return
	}
	if templates == nil {
		templates = []domain.ContentTemplate{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
		"count":     len(templates),
	})
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var draft content.TemplateDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	t, err := s.content.CreateTemplate(r.Context(), userIDFromRequest(r), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.content.GetTemplate(r.Context(), userIDFromRequest(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleRecordUsage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Success           bool    `json:"success"`
		ResponseTimeHours float64 `json:"response_time_hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	err := s.content.RecordUsage(r.Context(), userIDFromRequest(r), chi.URLParam(r, "id"), body.Success, body.ResponseTimeHours)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// ==========================================
// HISTORY, VALIDATION, CATALOGS
// ==========================================

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	entries, err := s.content.History(r.Context(), userIDFromRequest(r), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.GeneratedContent{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": entries,
		"count":   len(entries),
	})
}

// handleValidate dry-runs draft validation without persisting anything, so
// the template builder UI can surface problems as the user types.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var draft content.TemplateDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	issues := content.ValidateDraft(draft, s.content.Renderer())
	if issues == nil {
		issues = []content.ValidationError{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  len(issues) == 0,
		"issues": issues,
	})
}

func (s *Server) handleOperators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"operators": content.OperatorCatalog(),
	})
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"filters": s.content.Renderer().Filters(),
	})
}
