package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trivia-api/internal/data"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"
)

// QuestionHandler holds the dependencies for the question and category handlers.
type QuestionHandler struct {
	svc service.QuestionServicer
	log logger.Logger
}

// NewQuestionHandler creates a new QuestionHandler with the given dependencies.
func NewQuestionHandler(svc service.QuestionServicer, log logger.Logger) *QuestionHandler {
	return &QuestionHandler{svc: svc, log: log}
}

type categoriesResponse struct {
	Success    bool             `json:"success"`
	Categories map[int64]string `json:"categories"`
}

type questionsResponse struct {
	Success         bool             `json:"success"`
	Questions       []data.Question  `json:"questions"`
	TotalQuestions  int              `json:"total_questions"`
	TotalPages      int              `json:"total_pages"`
	Categories      map[int64]string `json:"categories,omitempty"`
	CurrentCategory interface{}      `json:"current_category"`
}

type createRequest struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   flexInt `json:"category"`
	Difficulty flexInt `json:"difficulty"`
}

type createResponse struct {
	Success  bool          `json:"success"`
	Created  int64         `json:"created"`
	Question data.Question `json:"question"`
}

type deleteResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

type searchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

func categoryMap(categories []data.Category) map[int64]string {
	m := make(map[int64]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}

// categories lists every category as an id to type map.
func (h *QuestionHandler) categories(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		return middleware.FromError(err)
	}
	return writeJSON(w, http.StatusOK, categoriesResponse{
		Success:    true,
		Categories: categoryMap(categories),
	})
}

// listQuestions returns one page of all questions.
func (h *QuestionHandler) listQuestions(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	page, appErr := pageParam(r)
	if appErr != nil {
		return appErr
	}

	res, err := h.svc.ListQuestions(r.Context(), page)
	if err != nil {
		return middleware.FromError(err)
	}
	return writeJSON(w, http.StatusOK, questionsResponse{
		Success:        true,
		Questions:      res.Questions,
		TotalQuestions: res.Total,
		TotalPages:     res.Pages,
		Categories:     categoryMap(res.Categories),
	})
}

// createQuestion stores a new question from a JSON body.
func (h *QuestionHandler) createQuestion(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req createRequest
	if appErr := decodeJSON(w, r, &req); appErr != nil {
		return appErr
	}

	q, err := h.svc.CreateQuestion(r.Context(), service.NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   int64(req.Category),
		Difficulty: int(req.Difficulty),
	})
	if err != nil {
		return middleware.FromError(err)
	}

	h.log.With(map[string]interface{}{"question_id": q.ID}).Info("question created")
	return writeJSON(w, http.StatusOK, createResponse{Success: true, Created: q.ID, Question: q})
}

// deleteQuestion removes the question named in the path.
func (h *QuestionHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(chi.URLParam(r, "id"))
	if appErr != nil {
		return appErr
	}

	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		return middleware.FromError(err)
	}

	h.log.With(map[string]interface{}{"question_id": id}).Info("question deleted")
	return writeJSON(w, http.StatusOK, deleteResponse{Success: true, Deleted: id})
}

// searchQuestions returns one page of questions matching the posted term.
func (h *QuestionHandler) searchQuestions(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	page, appErr := pageParam(r)
	if appErr != nil {
		return appErr
	}
	var req searchRequest
	if appErr := decodeJSON(w, r, &req); appErr != nil {
		return appErr
	}
	if req.SearchTerm == nil {
		return middleware.BadRequest(errors.New("searchTerm is required"))
	}

	res, err := h.svc.SearchQuestions(r.Context(), *req.SearchTerm, page)
	if err != nil {
		return middleware.FromError(err)
	}
	return writeJSON(w, http.StatusOK, questionsResponse{
		Success:         true,
		Questions:       res.Questions,
		TotalQuestions:  res.Total,
		TotalPages:      res.Pages,
		CurrentCategory: res.CategoryIDs,
	})
}

// questionsByCategory returns one page of the questions in the category named in the path.
func (h *QuestionHandler) questionsByCategory(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(chi.URLParam(r, "id"))
	if appErr != nil {
		return appErr
	}
	page, appErr := pageParam(r)
	if appErr != nil {
		return appErr
	}

	res, err := h.svc.QuestionsByCategory(r.Context(), id, page)
	if err != nil {
		return middleware.FromError(fmt.Errorf("category %d: %w", id, err))
	}
	return writeJSON(w, http.StatusOK, questionsResponse{
		Success:         true,
		Questions:       res.Questions,
		TotalQuestions:  res.Total,
		TotalPages:      res.Pages,
		CurrentCategory: res.CategoryID,
	})
}
