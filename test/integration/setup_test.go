package integration_test

import (
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/waveroom/waveroom-go/internal/registry"
	"github.com/waveroom/waveroom-go/internal/router"
	"github.com/waveroom/waveroom-go/internal/service"
	"github.com/waveroom/waveroom-go/internal/session"
	"github.com/waveroom/waveroom-go/internal/web"
)

var (
	Router           *chi.Mux
	SessionService   *service.SessionService
	WebsocketService *service.WebSocketService
)

func TestMain(m *testing.M) {
	reg := registry.Default()

	WebsocketService = service.NewWebSocketService("http://localhost:5173", "test")
	// Long intervals keep the simulators quiet so tests only observe the
	// events they trigger themselves.
	SessionService = service.NewSessionService(reg, WebsocketService, session.Config{
		SpeakerInterval: time.Hour,
		ChatInterval:    time.Hour,
		ReactionTTL:     time.Hour,
	})

	h := web.NewHandler(service.NewRoomService(reg), SessionService, WebsocketService)
	Router = router.SetupRouter(h, "http://localhost:5173")

	code := m.Run()

	SessionService.TeardownAll()
	os.Exit(code)
}

func execRequest(method, url string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	rr := httptest.NewRecorder()
	Router.ServeHTTP(rr, req)

	return rr
}

func waitForSubscriber(t testing.TB, roomID string) {
	t.Helper()

	for i := 0; i < 50; i++ {
		WebsocketService.Mutex.RLock()
		var n int
		if roomID == "" {
			n = len(WebsocketService.RoomsListSubscribers)
		} else {
			n = len(WebsocketService.RoomSubscribers[roomID])
		}
		WebsocketService.Mutex.RUnlock()

		if n > 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatal("websocket subscriber never registered")
}
