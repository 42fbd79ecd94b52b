// Package api exposes the dashboard aggregations and the chat
// assistant over HTTP for the external presentation layer.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"budgetlens/internal/analysis"
	"budgetlens/internal/chat"
	"budgetlens/internal/models"
	"budgetlens/internal/search"
	"budgetlens/internal/store"
)

type Handler struct {
	Store    *store.Store
	Analysis *analysis.Service
	Search   *search.Service
	Bot      *chat.Bot

	sessions *sessionRegistry
}

// NewHandler wires the HTTP layer over the loaded services.
func NewHandler(st *store.Store, an *analysis.Service, se *search.Service, bot *chat.Bot) *Handler {
	return &Handler{
		Store:    st,
		Analysis: an,
		Search:   se,
		Bot:      bot,
		sessions: newSessionRegistry(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Get("/api/years", h.GetYears)
	r.Get("/api/overview/{year}", h.GetYearOverview)
	r.Get("/api/ministry", h.GetMinistryDetail)
	r.Get("/api/compare", h.CompareYears)
	r.Get("/api/insights", h.GetInsights)
	r.Get("/api/search", h.SearchData)
	r.Get("/api/outcomes", h.GetSchemeOutcomes)

	r.Post("/api/chat", h.Chat)
	r.Delete("/api/chat/{sessionID}", h.ClearChat)
	r.Get("/api/chat/{sessionID}/summary", h.ChatSummary)
	r.Get("/api/questions", h.GetSuggestedQuestions)
	r.Post("/api/speech/{year}/analysis", h.AnalyzeSpeech)
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ============================================================================
// Dashboard data
// ============================================================================

func (h *Handler) GetYears(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.YearsResponse{
		Range:   h.Store.Years(),
		Covered: h.Store.CoveredYears(),
	})
}

func (h *Handler) GetYearOverview(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeBadRequest(w, "year must be an integer")
		return
	}
	overview, err := h.Analysis.YearOverview(year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *Handler) GetMinistryDetail(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeBadRequest(w, "year must be an integer")
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeBadRequest(w, "name is required")
		return
	}
	detail, err := h.Analysis.MinistryDetail(year, name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) CompareYears(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("years")
	if raw == "" {
		writeBadRequest(w, "years is required, e.g. years=2024,2025")
		return
	}
	var years []int
	for _, part := range strings.Split(raw, ",") {
		y, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			writeBadRequest(w, "years must be a comma-separated list of integers")
			return
		}
		years = append(years, y)
	}
	cmp, err := h.Analysis.CompareYears(years)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Analysis.Insights())
}

func (h *Handler) SearchData(w http.ResponseWriter, r *http.Request) {
	// An empty q matches everything; that is the documented contract.
	writeJSON(w, http.StatusOK, h.Search.Search(r.URL.Query().Get("q")))
}

func (h *Handler) GetSchemeOutcomes(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		var err error
		if year, err = strconv.Atoi(raw); err != nil {
			writeBadRequest(w, "year must be an integer")
			return
		}
	}
	outcomes := h.Store.SchemeOutcomes(year)
	if outcomes == nil {
		outcomes = []models.SchemeOutcome{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"outcomes": outcomes})
}

// ============================================================================
// Chat
// ============================================================================

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeBadRequest(w, "message is required")
		return
	}

	id, sess := h.sessions.getOrCreate(req.SessionID)
	reply := h.Bot.Respond(r.Context(), sess, req.Message, req.Year)

	writeJSON(w, http.StatusOK, models.ChatResponse{SessionID: id, Reply: reply})
}

func (h *Handler) ClearChat(w http.ResponseWriter, r *http.Request) {
	h.sessions.remove(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ChatSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, models.NotFound("unknown session"))
		return
	}
	summary := h.Bot.SummarizeConversation(r.Context(), sess)
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *Handler) GetSuggestedQuestions(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		var err error
		if year, err = strconv.Atoi(raw); err != nil {
			writeBadRequest(w, "year must be an integer")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"questions": chat.SuggestedQuestions(year)})
}

func (h *Handler) AnalyzeSpeech(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeBadRequest(w, "year must be an integer")
		return
	}
	analysisText := h.Bot.AnalyzeSpeech(r.Context(), year)
	writeJSON(w, http.StatusOK, map[string]string{"analysis": analysisText})
}

// ============================================================================
// Helpers
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// writeError maps the error taxonomy onto HTTP statuses. Missing data
// is a 404 with a user-renderable message; anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	if models.IsNotFound(err) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
