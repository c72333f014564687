package integration_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waveroom/waveroom-go/internal/types"
)

type wsEvent struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

func readEventOfKind(t testing.TB, ws *websocket.Conn, kind string) wsEvent {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		_, p, err := ws.ReadMessage()
		require.NoError(t, err, "failed to read message from websocket")

		var event wsEvent
		require.NoError(t, json.Unmarshal(p, &event), "failed to unmarshal received message")

		if event.Kind == kind {
			return event
		}
	}
}

func TestSubscribeToRoom(t *testing.T) {
	server := httptest.NewServer(Router)
	defer server.Close()

	wsURL := "ws" + server.URL[4:] + "/subscribe/room/6"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "failed to connect to websocket")
	defer ws.Close()

	waitForSubscriber(t, "6")

	rr := execRequest(http.MethodPost, "/api/session", strings.NewReader(`{"room_id": "6"}`))
	require.Equal(t, http.StatusCreated, rr.Code)
	defer execRequest(http.MethodDelete, "/api/rooms/6/session", nil)

	event := readEventOfKind(t, ws, types.MessageKindSessionBound)
	var bound types.SessionBound
	require.NoError(t, json.Unmarshal(event.Value, &bound))
	assert.Equal(t, "6", bound.RoomID)
	assert.Equal(t, "Creative Arts", bound.RoomName)

	rr = execRequest(http.MethodPost, "/api/rooms/6/session/messages", strings.NewReader(`{"text": "can you hear me?"}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	event = readEventOfKind(t, ws, types.MessageKindMessageCreated)
	var created types.MessageCreated
	require.NoError(t, json.Unmarshal(event.Value, &created))
	assert.Equal(t, "can you hear me?", created.Text)
	assert.True(t, created.OriginSelf)

	rr = execRequest(http.MethodPatch, "/api/rooms/6/session/live", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	event = readEventOfKind(t, ws, types.MessageKindLiveToggled)
	var live types.LiveToggled
	require.NoError(t, json.Unmarshal(event.Value, &live))
	assert.False(t, live.Live)
}

func TestSubscribeToRoomsList(t *testing.T) {
	server := httptest.NewServer(Router)
	defer server.Close()

	wsURL := "ws" + server.URL[4:] + "/subscribe"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "failed to connect to websocket")
	defer ws.Close()

	waitForSubscriber(t, "")

	rr := execRequest(http.MethodPost, "/api/session", strings.NewReader(`{"room_id": "4"}`))
	require.Equal(t, http.StatusCreated, rr.Code)
	defer execRequest(http.MethodDelete, "/api/rooms/4/session", nil)

	event := readEventOfKind(t, ws, types.MessageKindSessionBound)
	var bound types.SessionBound
	require.NoError(t, json.Unmarshal(event.Value, &bound))
	assert.Equal(t, "4", bound.RoomID)
	assert.False(t, bound.IsLive)
}

func TestSubscribeToUnknownRoom(t *testing.T) {
	server := httptest.NewServer(Router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/subscribe/room/99")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
