package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/waveroom/waveroom-go/internal/config"
	"github.com/waveroom/waveroom-go/internal/registry"
	"github.com/waveroom/waveroom-go/internal/router"
	"github.com/waveroom/waveroom-go/internal/service"
	"github.com/waveroom/waveroom-go/internal/session"
	"github.com/waveroom/waveroom-go/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("unable to load config", "error", err)
		panic(err)
	}

	reg := registry.Default()

	wsService := service.NewWebSocketService(cfg.SiteURL, cfg.GoEnv)
	roomService := service.NewRoomService(reg)
	sessionService := service.NewSessionService(reg, wsService, session.Config{
		SpeakerInterval:         cfg.SpeakerInterval,
		ChatInterval:            cfg.ChatInterval,
		ReactionTTL:             cfg.ReactionTTL,
		AmbientReactionInterval: cfg.AmbientReactionInterval,
	})
	h := web.NewHandler(roomService, sessionService, wsService)

	router := router.SetupRouter(h, cfg.SiteURL)

	go func() {
		slog.Info("server running on port " + cfg.Port + "...")
		if err := http.ListenAndServe(":"+cfg.Port, router); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("error serving handler.")
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	sessionService.TeardownAll()
}
