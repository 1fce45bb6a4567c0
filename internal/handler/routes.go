package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"trivia-api/internal/config"
	"trivia-api/internal/metrics"
	"trivia-api/internal/middleware"
)

// NewRouter creates and configures a new chi router.
func NewRouter(
	questionHandler *QuestionHandler,
	quizHandler *QuizHandler,
	healthHandler *HealthHandler,
	errorMiddleware func(middleware.AppHandler) http.Handler,
	m *metrics.Metrics,
	corsCfg config.CORSConfig,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsCfg.AllowedOrigins,
		AllowedMethods: corsCfg.AllowedMethods,
		AllowedHeaders: corsCfg.AllowedHeaders,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, middleware.MsgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, middleware.MsgMethodNotAllowed)
	})

	r.Method(http.MethodGet, "/healthz", errorMiddleware(healthHandler.healthz))
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Method(http.MethodGet, "/categories", errorMiddleware(questionHandler.categories))
	r.Method(http.MethodGet, "/categories/{id:[0-9]+}/questions", errorMiddleware(questionHandler.questionsByCategory))

	r.Method(http.MethodGet, "/questions", errorMiddleware(questionHandler.listQuestions))
	r.Method(http.MethodPost, "/questions", errorMiddleware(questionHandler.createQuestion))
	r.Method(http.MethodPost, "/questions/search", errorMiddleware(questionHandler.searchQuestions))
	r.Method(http.MethodDelete, "/questions/{id:[0-9]+}", errorMiddleware(questionHandler.deleteQuestion))

	r.Method(http.MethodPost, "/quizzes", errorMiddleware(quizHandler.nextQuestion))

	return r
}
