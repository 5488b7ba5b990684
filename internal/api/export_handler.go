package api

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/eignung/flashcards/internal/importer"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /export
func (h *Handler) exportQuestions(w http.ResponseWriter, r *http.Request) {
	records, err := h.app.Exporter.Records(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load questions")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=flashcards-export.json")
	respondJSON(w, http.StatusOK, records)
}

// POST /import?mode=skip|update
// The body is the raw question file. Problems with its content are part of
// the report, which is always returned with 200.
func (h *Handler) importQuestions(w http.ResponseWriter, r *http.Request) {
	mode, err := importer.ParseConflictMode(r.URL.Query().Get("mode"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "import file too large")
			return
		}
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	report, err := h.app.Importer.Import(r.Context(), string(body), mode)
	if err != nil {
		h.logger.Error("import failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "import failed, nothing was saved")
		return
	}
	respondJSON(w, http.StatusOK, report)
}
