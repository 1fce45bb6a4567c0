package handler

import (
	"fmt"
	"net/http"

	"trivia-api/internal/data"
	"trivia-api/internal/errs"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/query"
	"trivia-api/internal/service"
)

// allCategoriesType is the quiz_category type the client sends when the
// player picks every category.
const allCategoriesType = "click"

// DrawObserver records the outcome of quiz draws.
type DrawObserver interface {
	ObserveDraw(drawn bool)
}

// QuizHandler serves quiz draws.
type QuizHandler struct {
	svc      service.QuestionServicer
	observer DrawObserver
	log      logger.Logger
}

// NewQuizHandler creates a new QuizHandler. observer may be nil.
func NewQuizHandler(svc service.QuestionServicer, observer DrawObserver, log logger.Logger) *QuizHandler {
	return &QuizHandler{svc: svc, observer: observer, log: log}
}

type quizCategory struct {
	ID   flexInt `json:"id"`
	Type string  `json:"type"`
}

type quizRequest struct {
	PreviousQuestions *[]flexInt    `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
}

type quizResponse struct {
	Success  bool           `json:"success"`
	Question *data.Question `json:"question"`
}

func (c quizCategory) selector() query.Selector {
	if c.Type == allCategoriesType {
		return query.AllCategories()
	}
	return query.InCategory(int64(c.ID))
}

// nextQuestion draws a question the player has not seen. A null question
// tells the client the quiz is over.
func (h *QuizHandler) nextQuestion(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req quizRequest
	if appErr := decodeJSON(w, r, &req); appErr != nil {
		return appErr
	}
	if req.PreviousQuestions == nil || req.QuizCategory == nil {
		return middleware.FromError(fmt.Errorf("previous_questions and quiz_category are required: %w", errs.ErrInvalidInput))
	}

	previous := make([]int64, 0, len(*req.PreviousQuestions))
	for _, id := range *req.PreviousQuestions {
		previous = append(previous, int64(id))
	}

	q, err := h.svc.NextQuizQuestion(r.Context(), req.QuizCategory.selector(), previous)
	if err != nil {
		return middleware.FromError(err)
	}
	if h.observer != nil {
		h.observer.ObserveDraw(q != nil)
	}
	return writeJSON(w, http.StatusOK, quizResponse{Success: true, Question: q})
}
