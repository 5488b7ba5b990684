package api

import (
	"net/http"
	"strconv"

	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/domain/quiz"
)

// ── Request / Response types ────────────────────────────────────────────────

type ChoiceResponse struct {
	Slot int    `json:"slot"`
	Text string `json:"text"`
}

type CardResponse struct {
	QuestionID   int64            `json:"question_id"`
	Text         string           `json:"question_text"`
	Code         string           `json:"question_code"`
	Type         string           `json:"type"`
	Choices      []ChoiceResponse `json:"choices,omitempty"`
	SolutionText string           `json:"solution_text"`
	SolutionCode string           `json:"solution_code"`
}

type AnswerRequest struct {
	Slots []int `json:"slots" validate:"dive,min=0,max=3"`
}

type AnswerResponse struct {
	Correct      bool   `json:"correct"`
	CorrectSlots []int  `json:"correct_slots"`
	SolutionText string `json:"solution_text"`
	SolutionCode string `json:"solution_code"`
}

type MarkRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

func toCardResponse(c *quiz.Card) CardResponse {
	resp := CardResponse{
		QuestionID:   c.QuestionID,
		Text:         c.Text,
		Code:         c.Code,
		Type:         c.Type.DBValue(),
		SolutionText: c.SolutionText,
		SolutionCode: c.SolutionCode,
	}
	for _, ch := range c.Choices {
		resp.Choices = append(resp.Choices, ChoiceResponse{Slot: ch.Slot, Text: ch.Text})
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /quiz/next?mode=random|new|wrong&type=choice|text|code|any&category_id=1&category_id=2
// Without a type, multiple-choice questions are drawn.
func (h *Handler) nextCard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	f := quiz.DefaultFilter()

	mode, err := quiz.ParseMode(query.Get("mode"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	f.Mode = mode

	switch v := query.Get("type"); v {
	case "":
	case "any":
		f.Type = nil
	default:
		t, ok := question.ParseType(v)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid type")
			return
		}
		f.Type = &t
	}

	for _, v := range query["category_id"] {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		f.CategoryIDs = append(f.CategoryIDs, id)
	}

	card, err := h.app.Quiz.Next(r.Context(), f)
	if h.handleStoreError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, toCardResponse(card))
}

// POST /quiz/{questionID}/answer
func (h *Handler) answerChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "questionID")
	if !ok {
		return
	}
	var req AnswerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.app.Quiz.AnswerChoice(r.Context(), id, req.Slots)
	if h.handleStoreError(w, err, "question") {
		return
	}
	respondJSON(w, http.StatusOK, AnswerResponse{
		Correct:      res.Correct,
		CorrectSlots: res.CorrectSlots,
		SolutionText: res.SolutionText,
		SolutionCode: res.SolutionCode,
	})
}

// POST /quiz/{questionID}/mark
func (h *Handler) markAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "questionID")
	if !ok {
		return
	}
	var req MarkRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if h.handleStoreError(w, h.app.Quiz.Mark(r.Context(), id, *req.Correct), "question") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
