package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/waveroom/waveroom-go/internal/web"
)

func SetupRouter(h *web.Handlers, siteURL string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID, middleware.Recoverer, middleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{siteURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Route("/subscribe", func(router chi.Router) {
		router.Get("/", h.SubscribeToRoomsList)
		router.Get("/room/{room_id}", h.SubscribeToRoom)
	})

	router.Route("/api", func(router chi.Router) {
		router.Post("/session", h.BindSession)

		router.Route("/rooms", func(router chi.Router) {
			router.Get("/", h.GetRooms)

			router.Route("/{room_id}", func(router chi.Router) {
				router.Get("/", h.GetRoom)

				router.Route("/session", func(router chi.Router) {
					router.Get("/", h.GetSession)
					router.Delete("/", h.ReleaseSession)
					router.Patch("/mute", h.ToggleMute)
					router.Patch("/chat", h.ToggleChat)
					router.Patch("/live", h.ToggleLive)
					router.Post("/messages", h.CreateSessionMessage)
					router.Post("/reactions", h.CreateSessionReaction)
				})
			})
		})
	})

	return router
}
