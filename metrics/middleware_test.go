package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Middleware)
	router.Get("/medicamento/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := HTTPRequestTotals.WithLabelValues("GET", "/medicamento/{id}", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"MED-001", "MED-002"} {
		req := httptest.NewRequest(http.MethodGet, "/medicamento/"+id, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	// Both requests land on the same pattern-labeled series
	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("pattern series grew by %v, want 2", got)
	}
}

func TestMiddlewareDefaultsToStatusOK(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Middleware)
	router.Get("/estadisticas", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	})

	counter := HTTPRequestTotals.WithLabelValues("GET", "/estadisticas", "200")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/estadisticas", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("implicit 200 not counted, series grew by %v", got)
	}
}
