package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/waveroom/waveroom-go/internal/service"
	"github.com/waveroom/waveroom-go/internal/session"
)

func sendJSON(w http.ResponseWriter, rawData any) {
	data, _ := json.Marshal(rawData)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *Handlers) readRoom(w http.ResponseWriter, r *http.Request) (room session.Room, ok bool) {
	roomID := chi.URLParam(r, "room_id")

	room, err := h.RoomService.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, session.ErrRoomNotFound) || errors.Is(err, session.ErrNoRoomsAvailable) {
			http.Error(w, "room not found", http.StatusNotFound)
			return session.Room{}, false
		}

		http.Error(w, "error getting room", http.StatusInternalServerError)
		return session.Room{}, false
	}

	return room, true
}

func sendSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoSession):
		http.Error(w, "no active session for room", http.StatusNotFound)
	case errors.Is(err, session.ErrRoomNotFound):
		http.Error(w, "room not found", http.StatusNotFound)
	case errors.Is(err, session.ErrNoRoomsAvailable):
		http.Error(w, "no rooms available", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
