package api

import (
	"net/http"

	"github.com/eignung/flashcards/internal/domain/category"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type RenameCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type MergeCategoryRequest struct {
	TargetID int64 `json:"target_id" validate:"required,gt=0"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CountResponse struct {
	Count int `json:"count"`
}

func toCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /categories
func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.app.Categories.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, toCategoryResponse(c))
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /categories
// Returns 201 for a new category and 200 when the name already exists.
func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cat, created, err := h.app.Categories.Add(r.Context(), req.Name)
	if h.handleStoreError(w, err, "category") {
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, toCategoryResponse(cat))
}

// GET /categories/{categoryID}
func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}

	cat, err := h.app.Categories.Get(r.Context(), id)
	if h.handleStoreError(w, err, "category") {
		return
	}
	respondJSON(w, http.StatusOK, toCategoryResponse(cat))
}

// PUT /categories/{categoryID}
func (h *Handler) renameCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	var req RenameCategoryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cat, err := h.app.Categories.Rename(r.Context(), id, req.Name)
	if h.handleStoreError(w, err, "category") {
		return
	}
	respondJSON(w, http.StatusOK, toCategoryResponse(cat))
}

// DELETE /categories/{categoryID}
func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}

	if h.handleStoreError(w, h.app.Categories.Delete(r.Context(), id), "category") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /categories/unused
func (h *Handler) deleteUnusedCategories(w http.ResponseWriter, r *http.Request) {
	n, err := h.app.Categories.DeleteUnused(r.Context())
	if h.handleStoreError(w, err, "category") {
		return
	}
	respondJSON(w, http.StatusOK, CountResponse{Count: n})
}

// POST /categories/{categoryID}/merge
func (h *Handler) mergeCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	var req MergeCategoryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	moved, err := h.app.Categories.Merge(r.Context(), id, req.TargetID)
	if h.handleStoreError(w, err, "category") {
		return
	}
	respondJSON(w, http.StatusOK, CountResponse{Count: moved})
}
