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

func TestInstrumentHandler_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/things/{id}", "418"))

	for _, path := range []string{"/things/1", "/things/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/things/{id}", "418"))
	assert.Equal(t, before+2, after)
	assert.Equal(t, float64(0), testutil.ToFloat64(httpInFlight))
}

func TestInstrumentHandler_Unmatched(t *testing.T) {
	h := InstrumentHandler(http.NotFoundHandler())

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestObserveArticleOperation(t *testing.T) {
	before := testutil.ToFloat64(articleOperations.WithLabelValues("create", ResultRejected))

	ObserveArticleOperation("create", ResultRejected)

	assert.Equal(t, before+1, testutil.ToFloat64(articleOperations.WithLabelValues("create", ResultRejected)))
}

func TestObserveEventPublished(t *testing.T) {
	before := testutil.ToFloat64(eventsPublished.WithLabelValues("deleted", "false"))

	ObserveEventPublished("deleted", false)

	assert.Equal(t, before+1, testutil.ToFloat64(eventsPublished.WithLabelValues("deleted", "false")))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	ObserveArticleOperation("list", ResultOK)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "article_board_articles_operations_total")
}
