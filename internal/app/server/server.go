package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"hrmconsole/internal/app/workspace"
	"hrmconsole/internal/domain/employee"
	"hrmconsole/internal/domain/leave"
	"hrmconsole/internal/domain/masters"
	"hrmconsole/internal/domain/nav"
	"hrmconsole/internal/domain/payroll"
	"hrmconsole/internal/platform/backend"
	"hrmconsole/internal/platform/config"
	"hrmconsole/internal/platform/jobs"
	"hrmconsole/internal/platform/metrics"
	"hrmconsole/internal/transport/http/api"
	navhandler "hrmconsole/internal/transport/http/handlers/nav"
	screenshandler "hrmconsole/internal/transport/http/handlers/screens"
	"hrmconsole/internal/transport/http/middleware"
)

const sweepJob = "session_sweep"

type App struct {
	Config   config.Config
	Sessions *workspace.Manager
	Jobs     *jobs.Service
	Metrics  *metrics.Collector
	Router   http.Handler
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg))
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = uuid.NewString() + uuid.NewString()
		slog.Warn("SESSION_SECRET not set; sessions will not survive a restart")
	}

	app, err := New(cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Jobs.Start(ctx)
	app.Jobs.Every(ctx, sweepJob, cfg.SessionSweepInterval, func(context.Context) (any, error) {
		return map[string]int{"expired": app.Sessions.Sweep(), "active": app.Sessions.Len()}, nil
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutdown failed", "err", err)
		}
	}()

	slog.Info("HRM console listening", "addr", cfg.Addr, "backend", cfg.BackendURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

// New wires the console: backend client, screen registry, sessions and the
// router. It starts nothing.
func New(cfg config.Config) (*App, error) {
	collector := metrics.New()
	client, err := backend.New(cfg.BackendURL, cfg.BackendTimeout, collector)
	if err != nil {
		return nil, err
	}

	registry, err := workspace.NewRegistry(
		masters.Definitions(),
		payroll.Definitions(),
		leave.Definitions(),
		employee.Definitions(),
	)
	if err != nil {
		return nil, err
	}

	menu, err := nav.Load(cfg.NavFile)
	if err != nil {
		return nil, err
	}
	menu = menu.Filter(registry.Has)

	sessions := workspace.NewManager(registry, client, cfg.LookupDebounce, cfg.SessionTTL, slog.Default())
	jobsSvc := jobs.New()

	app := &App{
		Config:   cfg,
		Sessions: sessions,
		Jobs:     jobsSvc,
		Metrics:  collector,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Session(cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction()))
	router.Use(middleware.Logger(collector))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			snapshot := collector.Snapshot()
			snapshot["sessions"] = sessions.Len()
			snapshot["jobs"] = jobsSvc.History()
			api.Success(w, snapshot, middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.MutationRateLimit(cfg.RateLimitPerMinute, time.Minute))
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			api.Fail(w, http.StatusNotFound, "not_found", "no such endpoint", middleware.GetRequestID(r.Context()))
		})

		navhandler.NewHandler(menu).RegisterRoutes(r)
		screenshandler.NewHandler(sessions).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	app.Router = router
	return app, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if err == nil || os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
