package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
)

type SystemHandler struct {
	errorHelper
	db *sqlx.DB
}

func NewSystemHandler(db *sqlx.DB, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{errorHelper: newErrorHelper(logger), db: db}
}

func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Padel tournament API is running\n"))
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeOrLog(w, r, http.StatusOK, jsonResponse{"ok": true})
}

// Echo returns the decoded request body. Diagnostics only.
func (h *SystemHandler) Echo(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := readJSON(w, r, &body); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	h.writeOrLog(w, r, http.StatusOK, jsonResponse{"got": body})
}

// DBTest checks the database round trip. Diagnostics only.
func (h *SystemHandler) DBTest(w http.ResponseWriter, r *http.Request) {
	var now string
	if err := h.db.GetContext(r.Context(), &now, "SELECT CURRENT_TIMESTAMP"); err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	h.writeOrLog(w, r, http.StatusOK, jsonResponse{"success": true, "time": now, "checked_at": time.Now().UTC()})
}

func (h *SystemHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.errorResponse(w, r, http.StatusNotFound, "route not found")
}

func (h *SystemHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.errorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// Recoverer turns panics into a JSON 500 and logs the panic value.
func (h *SystemHandler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.logger.Error("panic recovered",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec))
				h.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
