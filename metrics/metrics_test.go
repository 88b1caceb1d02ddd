package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCounters(t *testing.T) {
	m := New()

	m.TournamentCreated()
	m.TournamentCreated()
	m.PlayersEnrolled(3)
	m.PlayersEnrolled(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.tournamentsCreated))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.playersEnrolled))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/tournaments/{tournamentID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tournaments/"+id, nil))
	}

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/tournaments/{tournamentID}", "404"))
	assert.Equal(t, 2.0, got)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.TournamentCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "padel_tournaments_created_total 1"))
}
