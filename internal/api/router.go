// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Import / export
	mux.HandleFunc("POST /import", h.importQuestions)
	mux.HandleFunc("GET /export", h.exportQuestions)

	// Categories
	mux.HandleFunc("GET /categories", h.listCategories)
	mux.HandleFunc("POST /categories", h.createCategory)
	mux.HandleFunc("DELETE /categories/unused", h.deleteUnusedCategories)
	mux.HandleFunc("GET /categories/{categoryID}", h.getCategory)
	mux.HandleFunc("PUT /categories/{categoryID}", h.renameCategory)
	mux.HandleFunc("DELETE /categories/{categoryID}", h.deleteCategory)
	mux.HandleFunc("POST /categories/{categoryID}/merge", h.mergeCategory)

	// Questions
	mux.HandleFunc("GET /questions", h.listQuestions)
	mux.HandleFunc("POST /questions", h.createQuestion)
	mux.HandleFunc("GET /questions/{questionID}", h.getQuestion)
	mux.HandleFunc("PUT /questions/{questionID}", h.updateQuestion)
	mux.HandleFunc("DELETE /questions/{questionID}", h.deleteQuestion)

	// Quiz
	mux.HandleFunc("GET /quiz/next", h.nextCard)
	mux.HandleFunc("POST /quiz/{questionID}/answer", h.answerChoice)
	mux.HandleFunc("POST /quiz/{questionID}/mark", h.markAnswer)

	// Dashboard & maintenance
	mux.HandleFunc("GET /dashboard", h.dashboard)
	mux.HandleFunc("POST /maintenance/cleanup", h.cleanup)
	mux.HandleFunc("POST /maintenance/categorize", h.autoCategorize)
	mux.HandleFunc("POST /maintenance/reset-stats", h.resetStatistics)
	mux.HandleFunc("POST /maintenance/truncate", h.truncate)
}
