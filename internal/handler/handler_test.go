//go:build unit

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trivia-api/internal/config"
	"trivia-api/internal/data"
	"trivia-api/internal/errs"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"
)

// memStore is an in-memory implementation of service.Store.
type memStore struct {
	questions  []data.Question
	categories []data.Category
	nextID     int64
	err        error
}

var _ service.Store = (*memStore)(nil)

func (m *memStore) AllQuestions(ctx context.Context) ([]data.Question, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]data.Question(nil), m.questions...), nil
}

func (m *memStore) Insert(ctx context.Context, q data.Question) (data.Question, error) {
	if m.err != nil {
		return data.Question{}, m.err
	}
	m.nextID++
	q.ID = m.nextID
	m.questions = append(m.questions, q)
	return q, nil
}

func (m *memStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for i, q := range m.questions {
		if q.ID == id {
			m.questions = append(m.questions[:i], m.questions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) AllCategories(ctx context.Context) ([]data.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]data.Category(nil), m.categories...), nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*data.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category %d: %w", id, errs.ErrNotFound)
}

type pinger struct{ err error }

func (p pinger) PingContext(ctx context.Context) error { return p.err }

type testApp struct {
	Router  *chi.Mux
	Store   *memStore
	Metrics *metrics.Metrics
}

func newTestApp(t *testing.T, questions int) *testApp {
	t.Helper()
	store := &memStore{categories: []data.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Geography"},
	}}
	for i := 0; i < questions; i++ {
		_, _ = store.Insert(context.Background(), data.Question{
			Question:   "Which river is number " + string(rune('A'+i%26)) + "?",
			Answer:     "Answer",
			Category:   int64(i%2 + 1),
			Difficulty: 1,
		})
	}

	log := logger.Nop()
	svc := service.NewQuestionService(store, service.Options{Rand: rand.New(rand.NewPCG(7, 7))})
	m := metrics.New()
	router := NewRouter(
		NewQuestionHandler(svc, log),
		NewQuizHandler(svc, m, log),
		NewHealthHandler(pinger{}),
		middleware.Error(log),
		m,
		config.CORSConfig{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET", "POST", "DELETE"}},
	)
	return &testApp{Router: router, Store: store, Metrics: m}
}

func (a *testApp) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	var out map[string]interface{}
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	}
	return rr, out
}

func assertFailure(t *testing.T, rr *httptest.ResponseRecorder, body map[string]interface{}, code int) {
	t.Helper()
	assert.Equal(t, code, rr.Code, rr.Body.String())
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(code), body["error"])
}

func TestCategories(t *testing.T) {
	app := newTestApp(t, 0)
	rr, body := app.do(t, http.MethodGet, "/categories", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{"1": "Science", "2": "Geography"}, body["categories"])
}

func TestListQuestions(t *testing.T) {
	app := newTestApp(t, 12)

	rr, body := app.do(t, http.MethodGet, "/questions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, body["questions"], 10)
	assert.Equal(t, float64(12), body["total_questions"])
	assert.Equal(t, float64(2), body["total_pages"])
	assert.Nil(t, body["current_category"])
	assert.Len(t, body["categories"], 2)

	rr, body = app.do(t, http.MethodGet, "/questions?page=2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, body["questions"], 2)

	rr, body = app.do(t, http.MethodGet, "/questions?page=3", "")
	assertFailure(t, rr, body, http.StatusNotFound)

	for _, page := range []string{"0", "-1", "abc"} {
		rr, body = app.do(t, http.MethodGet, "/questions?page="+page, "")
		assertFailure(t, rr, body, http.StatusBadRequest)
	}
}

func TestCreateQuestion(t *testing.T) {
	app := newTestApp(t, 0)

	rr, body := app.do(t, http.MethodPost, "/questions",
		`{"question":"What is the capital of Peru?","answer":"Lima","category":"2","difficulty":3}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["created"])
	require.Len(t, app.Store.questions, 1)
	assert.Equal(t, int64(2), app.Store.questions[0].Category)

	rr, body = app.do(t, http.MethodPost, "/questions", `{"question":"If x<y and y<z, is x<z?","answer":"Yes","category":1,"difficulty":2}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "If x<y and y<z, is x<z?", body["question"].(map[string]interface{})["question"])
	require.Len(t, app.Store.questions, 2)
	assert.Equal(t, "If x<y and y<z, is x<z?", app.Store.questions[1].Question)

	rr, body = app.do(t, http.MethodPost, "/questions", `{"question":"Which HTML tag <b> makes text bold?","answer":"b","category":1,"difficulty":2}`)
	assertFailure(t, rr, body, http.StatusUnprocessableEntity)
	assert.Len(t, app.Store.questions, 2)

	rr, body = app.do(t, http.MethodPost, "/questions", `{"question":"","answer":"Lima","category":2,"difficulty":3}`)
	assertFailure(t, rr, body, http.StatusUnprocessableEntity)

	rr, body = app.do(t, http.MethodPost, "/questions", `{"question":"q","answer":"a","category":9,"difficulty":1}`)
	assertFailure(t, rr, body, http.StatusUnprocessableEntity)

	rr, body = app.do(t, http.MethodPost, "/questions", `{"question":`)
	assertFailure(t, rr, body, http.StatusBadRequest)

	rr, body = app.do(t, http.MethodPost, "/questions", `{"question":"q","answer":"a","category":"two","difficulty":1}`)
	assertFailure(t, rr, body, http.StatusBadRequest)
}

func TestDeleteQuestion(t *testing.T) {
	app := newTestApp(t, 2)

	rr, body := app.do(t, http.MethodDelete, "/questions/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), body["deleted"])

	rr, body = app.do(t, http.MethodDelete, "/questions/1", "")
	assertFailure(t, rr, body, http.StatusNotFound)

	rr, body = app.do(t, http.MethodDelete, "/questions/abc", "")
	assertFailure(t, rr, body, http.StatusNotFound)

	app.Store.err = errs.ErrWriteFailed
	rr, body = app.do(t, http.MethodDelete, "/questions/2", "")
	assertFailure(t, rr, body, http.StatusInternalServerError)
}

func TestSearchQuestions(t *testing.T) {
	app := newTestApp(t, 0)
	app.Store.questions = []data.Question{
		{ID: 1, Question: "Longest river?", Category: 2},
		{ID: 2, Question: "Who painted it?", Category: 1},
		{ID: 3, Question: "River through Cairo?", Category: 1},
	}

	rr, body := app.do(t, http.MethodPost, "/questions/search", `{"searchTerm":"RIVER"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(2), body["total_questions"])
	assert.Equal(t, []interface{}{float64(1), float64(2)}, body["current_category"])
	questions := body["questions"].([]interface{})
	require.Len(t, questions, 2)
	assert.Equal(t, float64(3), questions[0].(map[string]interface{})["id"])

	rr, body = app.do(t, http.MethodPost, "/questions/search?page=2", `{"searchTerm":"river"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, body["questions"])

	rr, body = app.do(t, http.MethodPost, "/questions/search", `{"searchTerm":"volcano"}`)
	assertFailure(t, rr, body, http.StatusNotFound)

	rr, body = app.do(t, http.MethodPost, "/questions/search", `{}`)
	assertFailure(t, rr, body, http.StatusBadRequest)
}

func TestQuestionsByCategory(t *testing.T) {
	app := newTestApp(t, 5)

	rr, body := app.do(t, http.MethodGet, "/categories/1/questions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(3), body["total_questions"])
	assert.Equal(t, float64(1), body["current_category"])

	rr, body = app.do(t, http.MethodGet, "/categories/3/questions", "")
	assertFailure(t, rr, body, http.StatusNotFound)

	app.Store.questions = nil
	rr, body = app.do(t, http.MethodGet, "/categories/2/questions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, body["questions"])
}

func TestQuiz(t *testing.T) {
	app := newTestApp(t, 0)
	app.Store.questions = []data.Question{{ID: 1, Question: "Capital of Peru?", Answer: "Lima", Category: 2, Difficulty: 1}}

	rr, body := app.do(t, http.MethodPost, "/quizzes", `{"previous_questions":[],"quiz_category":{"id":"2","type":"Geography"}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	q := body["question"].(map[string]interface{})
	assert.Equal(t, float64(1), q["id"])

	rr, body = app.do(t, http.MethodPost, "/quizzes", `{"previous_questions":[1],"quiz_category":{"id":2,"type":"Geography"}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, body["question"])

	rr, body = app.do(t, http.MethodPost, "/quizzes", `{"previous_questions":[],"quiz_category":{"id":0,"type":"click"}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, body["question"])

	rr, body = app.do(t, http.MethodPost, "/quizzes", `{"previous_questions":[],"quiz_category":{"id":0,"type":"Geography"}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, body["question"], "id 0 without the click type is an empty category")

	rr, body = app.do(t, http.MethodPost, "/quizzes", `{"quiz_category":{"id":0,"type":"click"}}`)
	assertFailure(t, rr, body, http.StatusUnprocessableEntity)

	rr, body = app.do(t, http.MethodPost, "/quizzes", `{"previous_questions":[]}`)
	assertFailure(t, rr, body, http.StatusUnprocessableEntity)

	rr, body = app.do(t, http.MethodPost, "/quizzes", `not json`)
	assertFailure(t, rr, body, http.StatusBadRequest)

	rr, _ = app.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `trivia_quiz_draws_total{outcome="drawn"} 2`)
	assert.Contains(t, rr.Body.String(), `trivia_quiz_draws_total{outcome="exhausted"} 2`)
}

func TestRouting(t *testing.T) {
	app := newTestApp(t, 1)

	rr, body := app.do(t, http.MethodGet, "/nope", "")
	assertFailure(t, rr, body, http.StatusNotFound)

	rr, body = app.do(t, http.MethodPut, "/questions", "")
	assertFailure(t, rr, body, http.StatusMethodNotAllowed)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr = httptest.NewRecorder()
	app.Router.ServeHTTP(rr, req)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t, 0)
	rr, body := app.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", body["status"])

	log := logger.Nop()
	h := middleware.Error(log)(NewHealthHandler(pinger{err: errors.New("down")}).healthz)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestFlexInt(t *testing.T) {
	var v struct {
		A flexInt `json:"a"`
		B flexInt `json:"b"`
		C flexInt `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":4,"b":"17","c":null}`), &v))
	assert.Equal(t, flexInt(4), v.A)
	assert.Equal(t, flexInt(17), v.B)
	assert.Equal(t, flexInt(0), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":"x"}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1.5}`), &v))
}
