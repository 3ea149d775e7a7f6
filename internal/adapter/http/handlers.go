package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/kestrelworks/meritd/internal/domain/ability"
	"github.com/kestrelworks/meritd/internal/domain/agent"
	"github.com/kestrelworks/meritd/internal/domain/badge"
	"github.com/kestrelworks/meritd/internal/domain/task"
	"github.com/kestrelworks/meritd/internal/port/cache"
	"github.com/kestrelworks/meritd/internal/service"
)

// Handlers bundles the services the REST adapter exposes. ReadCache, when
// set, caches leaderboard and stats responses for CacheTTL.
type Handlers struct {
	Agents      *service.AgentService
	Tasks       *service.TaskService
	Reviews     *service.ReviewService
	Badges      *service.BadgeService
	Leaderboard *service.LeaderboardService
	Recommend   *service.RecommendService
	Advisory    *service.AdvisoryService

	ReadCache cache.Cache
	CacheTTL  time.Duration
}

// --- Agents ---

type registerRequest struct {
	ID string `json:"id"`
	agent.Profile
}

// RegisterAgent handles POST /api/v1/agents.
func (h *Handlers) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[registerRequest](w, r)
	if !ok {
		return
	}
	if !requireField(w, req.ID, "id") {
		return
	}

	a, err := h.Agents.Register(r.Context(), req.ID, req.Profile)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// GetAgent handles GET /api/v1/agents/{id}.
func (h *Handlers) GetAgent(w http.ResponseWriter, r *http.Request) {
	p, err := h.Agents.Profile(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type updateAbilityRequest struct {
	Score  int    `json:"score"`
	Source string `json:"source,omitempty"`
}

// UpdateAbility handles PUT /api/v1/agents/{id}/abilities/{dimension}.
func (h *Handlers) UpdateAbility(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[updateAbilityRequest](w, r)
	if !ok {
		return
	}

	ab, err := h.Agents.UpdateAbility(r.Context(),
		urlParam(r, "id"),
		ability.Dimension(urlParam(r, "dimension")),
		req.Score,
		req.Source,
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ab)
}

// AwardBadge handles POST /api/v1/agents/{id}/badges/{badge}.
func (h *Handlers) AwardBadge(w http.ResponseWriter, r *http.Request) {
	awarded, err := h.Badges.Award(r.Context(), urlParam(r, "id"), badge.ID(urlParam(r, "badge")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"awarded": awarded})
}

// --- Tasks ---

// CreateTask handles POST /api/v1/tasks.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[task.CreateRequest](w, r)
	if !ok {
		return
	}

	t, err := h.Tasks.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// GetTask handles GET /api/v1/tasks/{id}.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.Tasks.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type acceptRequest struct {
	AgentID string `json:"agent_id"`
}

// AcceptTask handles POST /api/v1/tasks/{id}/accept.
func (h *Handlers) AcceptTask(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[acceptRequest](w, r)
	if !ok {
		return
	}
	if !requireField(w, req.AgentID, "agent_id") {
		return
	}

	t, err := h.Tasks.Accept(r.Context(), req.AgentID, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type completeRequest struct {
	AgentID string `json:"agent_id"`
	Quality int    `json:"quality"`
}

// CompleteTask handles POST /api/v1/tasks/{id}/complete.
func (h *Handlers) CompleteTask(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[completeRequest](w, r)
	if !ok {
		return
	}
	if !requireField(w, req.AgentID, "agent_id") {
		return
	}

	t, err := h.Tasks.Complete(r.Context(), req.AgentID, urlParam(r, "id"), req.Quality)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// RecommendAgents handles GET /api/v1/tasks/{id}/recommendations.
func (h *Handlers) RecommendAgents(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	recs, err := h.Recommend.Recommend(r.Context(), urlParam(r, "id"), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// --- Reviews ---

type submitReviewRequest struct {
	ReviewerID string `json:"reviewer_id"`
	TargetID   string `json:"target_id"`
	service.SubmitRequest
}

// SubmitReview handles POST /api/v1/reviews.
func (h *Handlers) SubmitReview(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[submitReviewRequest](w, r)
	if !ok {
		return
	}
	if !requireField(w, req.ReviewerID, "reviewer_id") || !requireField(w, req.TargetID, "target_id") {
		return
	}

	rec, err := h.Reviews.Submit(r.Context(), req.ReviewerID, req.TargetID, req.SubmitRequest)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// --- Read side ---

// GetLeaderboard handles GET /api/v1/leaderboard?by=&limit=.
func (h *Handlers) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	by := service.Metric(r.URL.Query().Get("by"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	key := "leaderboard:" + string(by) + ":" + strconv.Itoa(limit)
	if h.serveCached(w, r, key) {
		return
	}

	entries, err := h.Leaderboard.Leaderboard(r.Context(), by, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.writeCached(w, r, key, entries)
}

// GetStats handles GET /api/v1/stats.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	const key = "stats"
	if h.serveCached(w, r, key) {
		return
	}
	h.writeCached(w, r, key, h.Leaderboard.SystemStats(r.Context()))
}

// ExportState handles GET /api/v1/export.
func (h *Handlers) ExportState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Leaderboard.ExportState(r.Context()))
}

// ListBadges handles GET /api/v1/badges.
func (h *Handlers) ListBadges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Badges.Catalog(r.Context()))
}

// ListDimensions handles GET /api/v1/dimensions.
func (h *Handlers) ListDimensions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ability.Dimensions())
}

// --- Advisory ---

// GetSuggestions handles GET /api/v1/agents/{id}/suggestions.
func (h *Handlers) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	advice, err := h.Advisory.Suggestions(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, advice)
}

// GetAnalysis handles GET /api/v1/agents/{id}/analysis.
func (h *Handlers) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.Advisory.Analysis(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// GetGoals handles GET /api/v1/agents/{id}/goals?days=N.
func (h *Handlers) GetGoals(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	plan, err := h.Advisory.Goals(r.Context(), urlParam(r, "id"), days)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// --- Read-side caching ---

// serveCached writes a cached response when available. Cache errors are
// treated as misses.
func (h *Handlers) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if h.ReadCache == nil {
		return false
	}
	data, ok, err := h.ReadCache.Get(r.Context(), key)
	if err != nil || !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return true
}

// writeCached serializes the response once, stores it, and writes it.
func (h *Handlers) writeCached(w http.ResponseWriter, r *http.Request, key string, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if h.ReadCache != nil {
		_ = h.ReadCache.Set(r.Context(), key, body, h.CacheTTL)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
