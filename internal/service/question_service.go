package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"trivia-api/internal/data"
	"trivia-api/internal/errs"
	"trivia-api/internal/query"
)

// QuestionRepository defines the interface for database operations on questions.
type QuestionRepository interface {
	AllQuestions(ctx context.Context) ([]data.Question, error)
	Insert(ctx context.Context, q data.Question) (data.Question, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// CategoryRepository defines the interface for reading categories.
type CategoryRepository interface {
	AllCategories(ctx context.Context) ([]data.Category, error)
	GetByID(ctx context.Context, id int64) (*data.Category, error)
}

// Store is the storage contract the question service depends on.
type Store interface {
	QuestionRepository
	CategoryRepository
}

// QuestionServicer defines the interface for interacting with the question bank.
type QuestionServicer interface {
	Categories(ctx context.Context) ([]data.Category, error)
	ListQuestions(ctx context.Context, page int) (QuestionPage, error)
	CreateQuestion(ctx context.Context, in NewQuestion) (data.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
	SearchQuestions(ctx context.Context, term string, page int) (SearchResult, error)
	QuestionsByCategory(ctx context.Context, categoryID int64, page int) (CategoryPage, error)
	NextQuizQuestion(ctx context.Context, sel query.Selector, previous []int64) (*data.Question, error)
}

// QuestionPage is one page of the full question list.
type QuestionPage struct {
	Questions  []data.Question
	Total      int
	Pages      int
	Categories []data.Category
}

// SearchResult is one page of search matches. CategoryIDs covers every
// match, not just the current page.
type SearchResult struct {
	Questions   []data.Question
	Total       int
	Pages       int
	CategoryIDs []int64
}

// CategoryPage is one page of the questions in a single category.
type CategoryPage struct {
	Questions  []data.Question
	Total      int
	Pages      int
	CategoryID int64
}

// NewQuestion carries the fields of a question to be created.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// Options tunes a QuestionService. A nil CategoryRange means the range is
// derived from the stored categories on every call.
type Options struct {
	PageSize      int
	CategoryRange *query.CategoryRange
	Rand          query.Rand
}

// QuestionService provides business logic for the question bank.
type QuestionService struct {
	store     Store
	selector  *query.QuizSelector
	sanitizer *bluemonday.Policy
	pageSize  int
	bounds    *query.CategoryRange
}

var _ QuestionServicer = (*QuestionService)(nil)

// NewQuestionService creates a new QuestionService over store.
func NewQuestionService(store Store, opts Options) *QuestionService {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &QuestionService{
		store:     store,
		selector:  query.NewQuizSelector(opts.Rand),
		sanitizer: bluemonday.StrictPolicy(),
		pageSize:  pageSize,
		bounds:    opts.CategoryRange,
	}
}

// PageSize returns the number of questions per page.
func (s *QuestionService) PageSize() int {
	return s.pageSize
}

// Categories returns every category ordered by id.
func (s *QuestionService) Categories(ctx context.Context) ([]data.Category, error) {
	return s.store.AllCategories(ctx)
}

// ListQuestions returns one page of all questions ordered by id. A page
// with no questions fails with errs.ErrEmptyResult.
func (s *QuestionService) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	all, err := s.store.AllQuestions(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	questions := query.Paginate(all, page, s.pageSize)
	if len(questions) == 0 {
		return QuestionPage{}, fmt.Errorf("page %d of %d questions: %w", page, len(all), errs.ErrEmptyResult)
	}

	categories, err := s.store.AllCategories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:  questions,
		Total:      len(all),
		Pages:      query.PageCount(len(all), s.pageSize),
		Categories: categories,
	}, nil
}

// CreateQuestion validates and stores a new question. Text is stored as sent,
// minus surrounding whitespace; text containing HTML markup is rejected
// rather than rewritten.
func (s *QuestionService) CreateQuestion(ctx context.Context, in NewQuestion) (data.Question, error) {
	q := data.Question{
		Question:   strings.TrimSpace(in.Question),
		Answer:     strings.TrimSpace(in.Answer),
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}

	switch {
	case q.Question == "":
		return data.Question{}, fmt.Errorf("question text is required: %w", errs.ErrInvalidInput)
	case q.Answer == "":
		return data.Question{}, fmt.Errorf("answer text is required: %w", errs.ErrInvalidInput)
	case s.hasMarkup(q.Question):
		return data.Question{}, fmt.Errorf("question text contains markup: %w", errs.ErrInvalidInput)
	case s.hasMarkup(q.Answer):
		return data.Question{}, fmt.Errorf("answer text contains markup: %w", errs.ErrInvalidInput)
	case q.Difficulty <= 0:
		return data.Question{}, fmt.Errorf("difficulty must be positive: %w", errs.ErrInvalidInput)
	}

	if _, err := s.store.GetByID(ctx, q.Category); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return data.Question{}, fmt.Errorf("category %d does not exist: %w", q.Category, errs.ErrInvalidInput)
		}
		return data.Question{}, err
	}

	return s.store.Insert(ctx, q)
}

// DeleteQuestion removes a question. Deleting an absent id fails with errs.ErrNotFound.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id int64) error {
	removed, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("question %d: %w", id, errs.ErrNotFound)
	}
	return nil
}

// SearchQuestions returns one page of the questions containing term. No
// matches at all fails with errs.ErrEmptyResult.
func (s *QuestionService) SearchQuestions(ctx context.Context, term string, page int) (SearchResult, error) {
	all, err := s.store.AllQuestions(ctx)
	if err != nil {
		return SearchResult{}, err
	}

	matches, categoryIDs := query.Search(all, term)
	if len(matches) == 0 {
		return SearchResult{}, fmt.Errorf("search %q: %w", term, errs.ErrEmptyResult)
	}

	return SearchResult{
		Questions:   query.Paginate(matches, page, s.pageSize),
		Total:       len(matches),
		Pages:       query.PageCount(len(matches), s.pageSize),
		CategoryIDs: categoryIDs,
	}, nil
}

// QuestionsByCategory returns one page of the questions in a category. The
// id is checked against the category range before questions are loaded.
func (s *QuestionService) QuestionsByCategory(ctx context.Context, categoryID int64, page int) (CategoryPage, error) {
	bounds, err := s.categoryRange(ctx)
	if err != nil {
		return CategoryPage{}, err
	}
	if err := bounds.Check(categoryID); err != nil {
		return CategoryPage{}, err
	}

	all, err := s.store.AllQuestions(ctx)
	if err != nil {
		return CategoryPage{}, err
	}
	questions, err := query.ByCategory(all, categoryID, bounds)
	if err != nil {
		return CategoryPage{}, err
	}

	return CategoryPage{
		Questions:  query.Paginate(questions, page, s.pageSize),
		Total:      len(questions),
		Pages:      query.PageCount(len(questions), s.pageSize),
		CategoryID: categoryID,
	}, nil
}

// NextQuizQuestion draws a random question not in previous. A nil question
// with a nil error means the quiz is exhausted.
func (s *QuestionService) NextQuizQuestion(ctx context.Context, sel query.Selector, previous []int64) (*data.Question, error) {
	all, err := s.store.AllQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return s.selector.DrawNext(all, sel, query.IDSet(previous))
}

func (s *QuestionService) categoryRange(ctx context.Context) (query.CategoryRange, error) {
	if s.bounds != nil {
		return *s.bounds, nil
	}
	categories, err := s.store.AllCategories(ctx)
	if err != nil {
		return query.CategoryRange{}, err
	}
	return query.RangeOf(categories), nil
}

// newlines matches the line-ending normalisation of the HTML tokenizer.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// hasMarkup reports whether the sanitizer would drop anything from text.
// A tag needs a closing '>', so text without one is plain even when it holds
// a '<' such as "x<y".
func (s *QuestionService) hasMarkup(text string) bool {
	if !strings.Contains(text, ">") {
		return false
	}
	plain := newlines.Replace(html.UnescapeString(text))
	return newlines.Replace(html.UnescapeString(s.sanitizer.Sanitize(text))) != plain
}
