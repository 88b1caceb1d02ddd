package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dosada05/padel-tournament-api/services"
)

const maxAvatarBytes = 5 << 20

type PlayerHandler struct {
	errorHelper
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{errorHelper: newErrorHelper(logger), playerService: playerService}
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.currentIdentity(w, r)
	if !ok {
		return
	}

	players, err := h.playerService.List(r.Context(), identity.ID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOrLog(w, r, http.StatusOK, players)
}

func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.currentIdentity(w, r)
	if !ok {
		return
	}

	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.Create(r.Context(), identity.ID, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOrLog(w, r, http.StatusCreated, player)
}

// UploadAvatar expects a multipart form with the image in the "avatar" field.
func (h *PlayerHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.currentIdentity(w, r)
	if !ok {
		return
	}
	playerID, ok := h.uuidParam(w, r, "playerID")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		h.badRequestResponse(w, r, errors.New("avatar must be a multipart upload of at most 5MB"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("avatar")
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, services.ErrAvatarRequired)
		return
	}
	defer file.Close()

	player, err := h.playerService.UploadAvatar(r.Context(), identity.ID, playerID, services.AvatarUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOrLog(w, r, http.StatusOK, player)
}
