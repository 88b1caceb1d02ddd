package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/padel-tournament-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"x"}`, ""},
		{"empty", ``, "body must not be empty"},
		{"malformed", `{"name":`, "badly-formed JSON"},
		{"wrong type", `{"name":1}`, `incorrect JSON type for field "name"`},
		{"extra keys ignored", `{"name":"x","other":1}`, ""},
		{"two values", `{"name":"a"}{"name":"b"}`, "single JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := readJSON(httptest.NewRecorder(), req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "x", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	helper := newErrorHelper(nil)

	tests := []struct {
		err         error
		wantStatus  int
		wantMessage string
	}{
		{services.ErrTournamentNameRequired, http.StatusBadRequest, services.ErrTournamentNameRequired.Error()},
		{services.ErrUnknownPlayer, http.StatusBadRequest, "player_ids contains an unknown player"},
		{services.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{services.ErrNotTournamentOwner, http.StatusForbidden, services.ErrNotTournamentOwner.Error()},
		{services.ErrTournamentNotFound, http.StatusNotFound, "tournament not found"},
		{services.ErrEmailTaken, http.StatusConflict, services.ErrEmailTaken.Error()},
		{services.ErrUploadsDisabled, http.StatusServiceUnavailable, services.ErrUploadsDisabled.Error()},
		{fmt.Errorf("wrapped: %w", services.ErrPlayerNotFound), http.StatusNotFound, "wrapped: player not found"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			helper.mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"error": tt.wantMessage}, body)
		})
	}
}

func TestRecovererReturnsJSON(t *testing.T) {
	h := NewSystemHandler(nil, nil)
	handler := h.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
