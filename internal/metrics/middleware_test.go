package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Delete("/api/messages/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/api/messages/{id}", "418"))

	for _, id := range []string{"1", "2", "3"} {
		req := httptest.NewRequest(http.MethodDelete, "/api/messages/"+id, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/api/messages/{id}", "418"))
	assert.Equal(t, float64(3), after-before)
}

func TestMiddleware_UnmatchedWithoutRouter(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, PathUnmatched, "200"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/anything", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, PathUnmatched, "200"))

	assert.Equal(t, float64(1), after-before)
}

func TestObserveTreeState(t *testing.T) {
	ObserveTreeState(7, 3)
	assert.Equal(t, float64(7), testutil.ToFloat64(WateredCount))
	assert.Equal(t, float64(3), testutil.ToFloat64(HarvestCount))
}

func TestMiddleware_SkipsDurationForEventStreams(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
	})

	before := testutil.CollectAndCount(HTTPRequestDuration)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/events", nil))

	assert.Equal(t, before, testutil.CollectAndCount(HTTPRequestDuration))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/events", "200")))
}
