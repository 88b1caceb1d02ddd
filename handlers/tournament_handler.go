package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Dosada05/padel-tournament-api/services"
	"github.com/google/uuid"
)

type TournamentHandler struct {
	errorHelper
	tournamentService services.TournamentService
	enrollmentService services.EnrollmentService
}

func NewTournamentHandler(tournamentService services.TournamentService, enrollmentService services.EnrollmentService, logger *slog.Logger) *TournamentHandler {
	return &TournamentHandler{
		errorHelper:       newErrorHelper(logger),
		tournamentService: tournamentService,
		enrollmentService: enrollmentService,
	}
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.currentIdentity(w, r)
	if !ok {
		return
	}

	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), identity.ID, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOrLog(w, r, http.StatusCreated, tournament)
}

func (h *TournamentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.currentIdentity(w, r)
	if !ok {
		return
	}

	list, err := h.tournamentService.ListMine(r.Context(), identity.ID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOrLog(w, r, http.StatusOK, list)
}

func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := h.uuidParam(w, r, "tournamentID")
	if !ok {
		return
	}

	detail, err := h.tournamentService.GetDetail(r.Context(), tournamentID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOrLog(w, r, http.StatusOK, detail)
}

type enrollRequest struct {
	PlayerIDs []string `json:"player_ids"`
}

func (h *TournamentHandler) EnrollPlayers(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.currentIdentity(w, r)
	if !ok {
		return
	}
	tournamentID, ok := h.uuidParam(w, r, "tournamentID")
	if !ok {
		return
	}

	var req enrollRequest
	if err := readJSON(w, r, &req); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	playerIDs := make([]uuid.UUID, 0, len(req.PlayerIDs))
	for _, raw := range req.PlayerIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.badRequestResponse(w, r, fmt.Errorf("player_ids contains an invalid id %q", raw))
			return
		}
		playerIDs = append(playerIDs, id)
	}

	players, err := h.enrollmentService.Enroll(r.Context(), tournamentID, identity.ID, playerIDs)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOrLog(w, r, http.StatusCreated, players)
}

func (h *TournamentHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := h.uuidParam(w, r, "tournamentID")
	if !ok {
		return
	}

	players, err := h.enrollmentService.ListEnrolled(r.Context(), tournamentID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOrLog(w, r, http.StatusOK, players)
}
