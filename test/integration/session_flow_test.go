package integration_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waveroom/waveroom-go/internal/session"
)

func TestSessionLifecycle(t *testing.T) {
	rr := execRequest(http.MethodPost, "/api/session", strings.NewReader(`{"room_id": "5"}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	var state session.State
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.Equal(t, "5", state.Room.ID)
	assert.True(t, state.IsChatOpen)
	seeded := len(state.Messages)

	rr = execRequest(http.MethodPatch, "/api/rooms/5/session/mute", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.True(t, state.IsMuted)

	rr = execRequest(http.MethodPost, "/api/rooms/5/session/messages", strings.NewReader(`{"text": "hello from the integration suite"}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = execRequest(http.MethodGet, "/api/rooms/5/session", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	require.Len(t, state.Messages, seeded+1)
	last := state.Messages[len(state.Messages)-1]
	assert.Equal(t, "hello from the integration suite", last.Text)
	assert.True(t, last.OriginSelf)

	rr = execRequest(http.MethodPost, "/api/rooms/5/session/reactions", strings.NewReader(`{"participant_id": "1", "x": 50, "y": 50}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = execRequest(http.MethodGet, "/api/rooms/5/session", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.Len(t, state.Reactions, 1)

	rr = execRequest(http.MethodDelete, "/api/rooms/5/session", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = execRequest(http.MethodGet, "/api/rooms/5/session", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
