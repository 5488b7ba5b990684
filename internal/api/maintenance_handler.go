package api

import (
	"net/http"

	"github.com/eignung/flashcards/internal/domain/question"
)

// ── Request / Response types ────────────────────────────────────────────────

type CategoryStatsResponse struct {
	Category      string `json:"category"`
	Count         int    `json:"count"`
	NeverAnswered int    `json:"never_answered"`
	Correct       int    `json:"correct"`
	Wrong         int    `json:"wrong"`
}

type DashboardResponse struct {
	Total      int                     `json:"total"`
	Correct    int                     `json:"correct"`
	Wrong      int                     `json:"wrong"`
	Categories []CategoryStatsResponse `json:"categories"`
}

type CleanupResponse struct {
	ExactDuplicates int `json:"exact_duplicates"`
	NearDuplicates  int `json:"near_duplicates"`
	EmptyChoices    int `json:"empty_choices"`
	Placeholders    int `json:"placeholders"`
	Total           int `json:"total"`
}

func toCategoryStatsResponse(cs question.CategoryStats) CategoryStatsResponse {
	return CategoryStatsResponse{
		Category:      cs.Category,
		Count:         cs.Count,
		NeverAnswered: cs.NeverAnswered,
		Correct:       cs.Correct,
		Wrong:         cs.Wrong,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /dashboard
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.app.Dashboard.Summary(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	resp := DashboardResponse{
		Total:      d.Totals.Total,
		Correct:    d.Totals.Correct,
		Wrong:      d.Totals.Wrong,
		Categories: make([]CategoryStatsResponse, 0, len(d.Categories)),
	}
	for _, cs := range d.Categories {
		resp.Categories = append(resp.Categories, toCategoryStatsResponse(cs))
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /maintenance/cleanup
func (h *Handler) cleanup(w http.ResponseWriter, r *http.Request) {
	res, err := h.app.Maintenance.Cleanup(r.Context())
	if h.handleStoreError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, CleanupResponse{
		ExactDuplicates: res.ExactDuplicates,
		NearDuplicates:  res.NearDuplicates,
		EmptyChoices:    res.EmptyChoices,
		Placeholders:    res.Placeholders,
		Total:           res.Total(),
	})
}

// POST /maintenance/categorize
func (h *Handler) autoCategorize(w http.ResponseWriter, r *http.Request) {
	n, err := h.app.Maintenance.AutoCategorize(r.Context())
	if h.handleStoreError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, CountResponse{Count: n})
}

// POST /maintenance/reset-stats
// Returns the number of questions.
func (h *Handler) resetStatistics(w http.ResponseWriter, r *http.Request) {
	n, err := h.app.Maintenance.ResetStatistics(r.Context())
	if h.handleStoreError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, CountResponse{Count: n})
}

// POST /maintenance/truncate
// Returns the number of questions left.
func (h *Handler) truncate(w http.ResponseWriter, r *http.Request) {
	n, err := h.app.Maintenance.Truncate(r.Context())
	if h.handleStoreError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, CountResponse{Count: n})
}
