package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator"
	"github.com/waveroom/waveroom-go/internal/service"
	"github.com/waveroom/waveroom-go/internal/session"
)

type Handlers struct {
	Router           *chi.Mux
	RoomService      *service.RoomService
	SessionService   *service.SessionService
	WebsocketService *service.WebSocketService
}

func NewHandler(
	roomService *service.RoomService,
	sessionService *service.SessionService,
	websocketService *service.WebSocketService,
) *Handlers {
	return &Handlers{
		Router:           chi.NewRouter(),
		RoomService:      roomService,
		SessionService:   sessionService,
		WebsocketService: websocketService,
	}
}

func (h *Handlers) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Router.ServeHTTP(w, r)
}

func (h *Handlers) GetRooms(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, h.RoomService.GetRooms())
}

func (h *Handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := h.readRoom(w, r)
	if !ok {
		return
	}

	sendJSON(w, room)
}

func (h *Handlers) BindSession(w http.ResponseWriter, r *http.Request) {
	type requestBody struct {
		RoomID string `json:"room_id"`
	}

	var body requestBody
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			slog.Error("failed to decode body", "error", err)
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
	}

	state, err := h.SessionService.Bind(body.RoomID)
	if err != nil {
		slog.Error("error binding session", "room_id", body.RoomID, "error", err)
		sendSessionError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	sendJSON(w, state)
}

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.SessionService.Snapshot(chi.URLParam(r, "room_id"))
	if err != nil {
		sendSessionError(w, err)
		return
	}

	sendJSON(w, state)
}

func (h *Handlers) ReleaseSession(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "room_id")
	if err := h.SessionService.Release(roomID); err != nil {
		sendSessionError(w, err)
		return
	}

	slog.Info("session released", "room_id", roomID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ToggleMute(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.SessionService.ToggleMute)
}

func (h *Handlers) ToggleChat(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.SessionService.ToggleChat)
}

func (h *Handlers) ToggleLive(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.SessionService.ToggleLive)
}

func (h *Handlers) toggle(w http.ResponseWriter, r *http.Request, fn func(roomID string) (session.State, error)) {
	state, err := fn(chi.URLParam(r, "room_id"))
	if err != nil {
		sendSessionError(w, err)
		return
	}

	sendJSON(w, state)
}

func (h *Handlers) CreateSessionMessage(w http.ResponseWriter, r *http.Request) {
	type requestBody struct {
		Text string `json:"text" validate:"required"`
	}

	type response struct {
		ID        string `json:"id"`
		Timestamp int64  `json:"timestamp"`
	}

	var body requestBody
	validate := validator.New()
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(&body); err != nil {
		msg := "validation failed: missing required field(s): text"
		slog.Error(msg, "error", err)
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	msg, ok, err := h.SessionService.SendMessage(chi.URLParam(r, "room_id"), body.Text)
	if err != nil {
		sendSessionError(w, err)
		return
	}

	if !ok {
		// Whitespace-only text is dropped without an error.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusCreated)
	sendJSON(w, response{ID: msg.ID, Timestamp: msg.Timestamp})
}

func (h *Handlers) CreateSessionReaction(w http.ResponseWriter, r *http.Request) {
	type requestBody struct {
		ParticipantID string  `json:"participant_id"`
		X             float64 `json:"x"`
		Y             float64 `json:"y"`
		Random        bool    `json:"random"`
	}

	var body requestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	roomID := chi.URLParam(r, "room_id")

	var (
		token session.ReactionToken
		ok    bool
		err   error
	)
	if body.Random {
		token, ok, err = h.SessionService.ReactRandom(roomID)
	} else {
		if strings.TrimSpace(body.ParticipantID) == "" {
			http.Error(w, "validation failed: missing required field(s): participant_id", http.StatusBadRequest)
			return
		}
		token, ok, err = h.SessionService.React(roomID, body.ParticipantID, session.Position{X: body.X, Y: body.Y})
	}

	if err != nil {
		sendSessionError(w, err)
		return
	}

	if !ok {
		// Unknown participant ids are ignored.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusCreated)
	sendJSON(w, token)
}

func (h *Handlers) SubscribeToRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := h.readRoom(w, r)
	if !ok {
		return
	}

	c, err := h.WebsocketService.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		http.Error(w, "failed to connect to ws connection", http.StatusBadRequest)
		return
	}

	defer c.Close()

	ctx, cancel := context.WithCancel(r.Context())
	h.WebsocketService.SubscribeToRoom(c, ctx, cancel, room.ID, r.RemoteAddr)
}

func (h *Handlers) SubscribeToRoomsList(w http.ResponseWriter, r *http.Request) {
	c, err := h.WebsocketService.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("failed to upgrade connection", "error", err)
		http.Error(w, "failed to connect to ws connection", http.StatusBadRequest)
		return
	}

	defer c.Close()

	ctx, cancel := context.WithCancel(r.Context())
	h.WebsocketService.SubscribeToRoomsList(c, ctx, cancel, r.RemoteAddr)
}
