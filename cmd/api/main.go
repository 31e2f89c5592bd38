package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Werneck0live/painel-contabil/internal/admin"
	"github.com/Werneck0live/painel-contabil/internal/broker"
	"github.com/Werneck0live/painel-contabil/internal/config"
	"github.com/Werneck0live/painel-contabil/internal/db"
	"github.com/Werneck0live/painel-contabil/internal/handlers"
	"github.com/Werneck0live/painel-contabil/internal/importer"
	"github.com/Werneck0live/painel-contabil/internal/logging"
	"github.com/Werneck0live/painel-contabil/internal/repository"
)

// cmd/api/main.go
func main() {
	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed | ensure-indexes")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		slog.Error("dotenv_error", "err", err)
		os.Exit(1)
	}
	cfg := config.Load()
	log := logging.Setup(cfg.LogLevel, cfg.LogFormat).With("svc", "api")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid_config", "err", err)
		os.Exit(2)
	}
	log.Info("starting", "port", cfg.Port, "mongo_db", cfg.MongoDB, "task", *task)

	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		log.Error("mongo_connect_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := repository.NewCompanyRepository(client.Database(cfg.MongoDB))

	ictx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = repo.EnsureIndexes(ictx)
	cancel()
	if err != nil {
		log.Error("ensure_indexes_failed", "err", err)
		os.Exit(1)
	}

	if *task != "" {
		code := runTask(*task, repo, log)
		_ = client.Disconnect(context.Background())
		os.Exit(code)
	}

	h := handlers.NewCompanyHandler(repo, nil, importer.New(repo, cfg.ImportRowTimeout, log))
	h.Timeout = cfg.RequestTimeout
	h.ImportTimeout = cfg.ImportTimeout
	h.ImportMaxBytes = cfg.ImportMaxBytes

	// sem broker a API sobe mesmo assim; os eventos só deixam de ser publicados
	pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
	if err != nil {
		log.Warn("rabbitmq_unavailable_events_disabled", "err", err)
	} else {
		h.Pub = pub
		defer pub.Close()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(h),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("api_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	// graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful_shutdown_error", "err", err)
	}
	log.Info("stopped")
}

// runTask executa um job administrativo e devolve o exit code.
func runTask(task string, repo *repository.CompanyRepository, log *slog.Logger) int {
	switch task {
	case "ensure-indexes":
		// já garantidos no start
		log.Info("indexes_ok")
		return 0
	case "seed":
		items, err := admin.LoadSeed()
		if err != nil {
			log.Error("seed_failed", "err", err)
			return 1
		}
		if _, err := admin.SeedCompanies(context.Background(), repo, items, log); err != nil {
			log.Error("seed_failed", "err", err)
			return 1
		}
		return 0
	default:
		log.Error("unknown_admin_task", "task", task)
		return 2
	}
}
