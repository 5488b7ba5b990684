package api

import (
	"net/http"
	"strconv"

	"github.com/eignung/flashcards/internal/domain/question"
)

// ── Request / Response types ────────────────────────────────────────────────

type QuestionRequest struct {
	Text         string   `json:"question_text" validate:"required"`
	Code         string   `json:"question_code"`
	Answers      []string `json:"answers" validate:"max=4"`
	CorrectMask  int      `json:"correct_mask" validate:"min=0,max=15"`
	Type         string   `json:"type" validate:"required,oneof=choice text code"`
	SolutionText string   `json:"solution_text"`
	SolutionCode string   `json:"solution_code"`
	CategoryID   *int64   `json:"category_id" validate:"omitempty,gt=0"`
}

func (req *QuestionRequest) toQuestion(id int64) *question.Question {
	q := &question.Question{
		ID:           id,
		Text:         req.Text,
		Code:         req.Code,
		CorrectMask:  req.CorrectMask,
		Type:         question.TypeFromDB(req.Type),
		SolutionText: req.SolutionText,
		SolutionCode: req.SolutionCode,
		CategoryID:   req.CategoryID,
	}
	copy(q.Answers[:], req.Answers)
	return q
}

type QuestionResponse struct {
	ID           int64     `json:"id"`
	Text         string    `json:"question_text"`
	Code         string    `json:"question_code"`
	Answers      [4]string `json:"answers"`
	CorrectMask  int       `json:"correct_mask"`
	Type         string    `json:"type"`
	SolutionText string    `json:"solution_text"`
	SolutionCode string    `json:"solution_code"`
	CategoryID   *int64    `json:"category_id"`
	TimesCorrect int       `json:"times_correct"`
	TimesWrong   int       `json:"times_wrong"`
}

func toQuestionResponse(q *question.Question) QuestionResponse {
	return QuestionResponse{
		ID:           q.ID,
		Text:         q.Text,
		Code:         q.Code,
		Answers:      q.Answers,
		CorrectMask:  q.CorrectMask,
		Type:         q.Type.DBValue(),
		SolutionText: q.SolutionText,
		SolutionCode: q.SolutionCode,
		CategoryID:   q.CategoryID,
		TimesCorrect: q.TimesCorrect,
		TimesWrong:   q.TimesWrong,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /questions?type=&category_id=&q=
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	f := question.ListFilter{Search: query.Get("q")}

	if v := query.Get("type"); v != "" {
		t, ok := question.ParseType(v)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid type")
			return
		}
		f.Type = &t
	}
	if v := query.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		f.CategoryID = &id
	}

	questions, err := h.app.Questions.List(r.Context(), f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load questions")
		return
	}

	resp := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		resp = append(resp, toQuestionResponse(q))
	}
	respondJSON(w, http.StatusOK, resp)
}

// GET /questions/{questionID}
func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "questionID")
	if !ok {
		return
	}

	q, err := h.app.Questions.Get(r.Context(), id)
	if h.handleStoreError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, toQuestionResponse(q))
}

// POST /questions
func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuestionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	q := req.toQuestion(0)
	if h.handleStoreError(w, h.app.Questions.Save(r.Context(), q), "question") {
		return
	}
	respondJSON(w, http.StatusCreated, toQuestionResponse(q))
}

// PUT /questions/{questionID}
func (h *Handler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "questionID")
	if !ok {
		return
	}
	var req QuestionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	q := req.toQuestion(id)
	if h.handleStoreError(w, h.app.Questions.Save(r.Context(), q), "question") {
		return
	}
	respondJSON(w, http.StatusOK, toQuestionResponse(q))
}

// DELETE /questions/{questionID}
func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "questionID")
	if !ok {
		return
	}

	if h.handleStoreError(w, h.app.Questions.Delete(r.Context(), id), "question") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
