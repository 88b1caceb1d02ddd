package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Dosada05/padel-tournament-api/auth"
	"github.com/Dosada05/padel-tournament-api/middleware"
	"github.com/Dosada05/padel-tournament-api/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type jsonResponse map[string]interface{}

const maxBodyBytes = 1_048_576 // 1MB

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBodyBytes))

	// лишние ключи в теле игнорируются
	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// errorHelper writes {error: message} bodies and logs anything that becomes a 500.
type errorHelper struct {
	logger *slog.Logger
}

func newErrorHelper(logger *slog.Logger) errorHelper {
	if logger == nil {
		logger = slog.Default()
	}
	return errorHelper{logger: logger}
}

func (e errorHelper) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := writeJSON(w, status, jsonResponse{"error": message}, nil); err != nil {
		e.logger.Error("failed to write error response",
			slog.String("path", r.URL.Path), slog.Any("error", err))
	}
}

func (e errorHelper) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	e.logger.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	e.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
}

func (e errorHelper) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	e.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (e errorHelper) writeOrLog(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if err := writeJSON(w, status, data, nil); err != nil {
		e.logger.Error("failed to write response", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func (e errorHelper) mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Невалидные данные
	case errors.Is(err, services.ErrRegisterFieldsRequired),
		errors.Is(err, services.ErrLoginFieldsRequired),
		errors.Is(err, services.ErrDisplayNameRequired),
		errors.Is(err, services.ErrTournamentNameRequired),
		errors.Is(err, services.ErrPlayerIDsRequired),
		errors.Is(err, services.ErrUnknownPlayer),
		errors.Is(err, services.ErrAvatarRequired),
		errors.Is(err, services.ErrAvatarContentType):
		e.badRequestResponse(w, r, err)

	// Аутентификация
	case errors.Is(err, services.ErrInvalidCredentials):
		e.errorResponse(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		e.errorResponse(w, r, http.StatusUnauthorized, "account no longer exists")

	// Доступ
	case errors.Is(err, services.ErrNotTournamentOwner),
		errors.Is(err, services.ErrNotPlayerOwner):
		e.errorResponse(w, r, http.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrTournamentNotFound),
		errors.Is(err, services.ErrPlayerNotFound):
		e.errorResponse(w, r, http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrEmailTaken):
		e.errorResponse(w, r, http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrUploadsDisabled):
		e.errorResponse(w, r, http.StatusServiceUnavailable, err.Error())

	default:
		e.serverErrorResponse(w, r, err)
	}
}

func (e errorHelper) currentIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		e.errorResponse(w, r, http.StatusUnauthorized, "authentication required")
	}
	return identity, ok
}

func (e errorHelper) uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		e.errorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}
