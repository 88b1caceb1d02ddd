package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/padel-tournament-api/realtime"
	"github.com/Dosada05/padel-tournament-api/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	errorHelper
	hub               *realtime.Hub
	enrollmentService services.EnrollmentService
	upgrader          websocket.Upgrader
}

// NewWebSocketHandler builds the live feed handler. checkOrigin decides which
// browser origins may open a socket; nil allows all.
func NewWebSocketHandler(hub *realtime.Hub, enrollmentService services.EnrollmentService, checkOrigin func(r *http.Request) bool, logger *slog.Logger) *WebSocketHandler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &WebSocketHandler{
		errorHelper:       newErrorHelper(logger),
		hub:               hub,
		enrollmentService: enrollmentService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// ServeWs joins the caller to the tournament's room and sends the current
// enrolled list as the first message. The client is registered before the
// list is read, so an enrollment that commits meanwhile is still broadcast to it.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := h.uuidParam(w, r, "tournamentID")
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("websocket upgrade failed", slog.String("tournament_id", tournamentID.String()), slog.Any("error", err))
		return
	}

	client := realtime.NewClient(h.hub, conn, realtime.TournamentRoom(tournamentID))
	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}

	players, err := h.enrollmentService.ListEnrolled(r.Context(), tournamentID)
	if err != nil {
		h.logger.Error("failed to load enrollment snapshot",
			slog.String("tournament_id", tournamentID.String()), slog.Any("error", err))
		client.Close()
		return
	}
	if err := client.Queue(realtime.Message{Type: realtime.MessageEnrollmentSnapshot, Payload: players}); err != nil {
		h.logger.Error("failed to queue snapshot", slog.Any("error", err))
	}
	go client.Pump()
}
