//go:build unit

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveDraw(t *testing.T) {
	m := New()
	m.ObserveDraw(true)
	m.ObserveDraw(true)
	m.ObserveDraw(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.draws.WithLabelValues(OutcomeDrawn)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.draws.WithLabelValues(OutcomeExhausted)))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Delete("/questions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/questions/"+id, nil))
		require.Equal(t, http.StatusNotFound, rr.Code)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodDelete, "/questions/{id}", "404")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveDraw(true)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `trivia_quiz_draws_total{outcome="drawn"} 1`)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
