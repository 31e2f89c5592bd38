package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Werneck0live/painel-contabil/internal/broker"
	"github.com/Werneck0live/painel-contabil/internal/config"
	"github.com/Werneck0live/painel-contabil/internal/logging"
	"github.com/Werneck0live/painel-contabil/internal/utils"
	"github.com/Werneck0live/painel-contabil/internal/ws"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("dotenv_error", "err", err)
		os.Exit(1)
	}
	wscfg := config.LoadWSConfig()

	log := logging.Setup(wscfg.LogLevel, wscfg.LogFormat).With("svc", "ws")
	if err := wscfg.Validate(); err != nil {
		log.Error("invalid_config", "err", err)
		os.Exit(2)
	}

	hub := ws.NewHub(log)
	go hub.Run()

	consumer, err := broker.NewConsumer(wscfg.RabbitURI, wscfg.RabbitQueue, wscfg.ConsumerPrefetch, "ws-consumer")
	if err != nil {
		log.Error("rabbit_consumer_start_error", "err", err)
		os.Exit(1)
	}
	log.Info("rabbit_consumer_started", "queue", wscfg.RabbitQueue)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// encaminha os eventos da fila para o hub; se a fila cair, derruba o processo
	go func() {
		if err := consumer.Run(ctx, log, hub.Relay); err != nil {
			log.Error("consumer_stopped", "err", err)
			stop()
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.AccessLog)
	r.Use(middleware.Recoverer)
	r.Get("/ws", ws.Handler(hub, ws.NewUpgrader(wscfg.CheckOrigin, wscfg.AllowedOrigin), log))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "clients": hub.Count()})
	})

	srv := &http.Server{
		Addr:              wscfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: wscfg.ReadHeaderTimeout,
	}

	go func() {
		log.Info("ws_listen", "addr", wscfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), wscfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful_shutdown_error", "err", err)
	}
	if err := consumer.Close(); err != nil {
		log.Warn("consumer_close_error", "err", err)
	}
	hub.Stop()

	log.Info("stopped", "dropped_clients", hub.Dropped())
}
