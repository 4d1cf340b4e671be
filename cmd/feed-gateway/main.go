package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/wave-feed/internal/config"
	feedhttp "github.com/pribylovaa/wave-feed/internal/http"
	"github.com/pribylovaa/wave-feed/internal/http/middleware"
	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/querycache"
	"github.com/pribylovaa/wave-feed/internal/querycache/redis"
	"github.com/pribylovaa/wave-feed/internal/service"
	"github.com/pribylovaa/wave-feed/internal/session"
	"github.com/pribylovaa/wave-feed/internal/storage/minio"
	"github.com/pribylovaa/wave-feed/internal/storage/mongo"
	"github.com/pribylovaa/wave-feed/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	// .env необязателен: в контейнерах всё приходит через окружение.
	_ = godotenv.Load()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting feed-gateway", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	if err := run(rootCtx, cfg, log); err != nil {
		log.Error("service_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}

	log.Info("service_stopped")
}

func run(rootCtx context.Context, cfg *config.Config, log *slog.Logger) error {
	// Зависимости.
	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	pg, err := postgres.New(dbCtx, cfg.DB.DatabaseURL, cfg.DB.MaxConns)
	dbCancel()
	if err != nil {
		return err
	}
	defer pg.Close()
	log.Info("postgres_connected")

	s3Ctx, s3Cancel := context.WithTimeout(rootCtx, 10*time.Second)
	objects, err := minio.New(s3Ctx, cfg.S3)
	s3Cancel()
	if err != nil {
		return err
	}
	log.Info("minio_connected", slog.String("endpoint", cfg.S3.Endpoint))

	reg := prometheus.DefaultRegisterer

	cache, err := querycache.New(querycache.Options{
		Capacity:            cfg.Cache.Capacity,
		StaleTime:           cfg.Cache.StaleTime,
		FetchTimeout:        cfg.Cache.FetchTimeout,
		RefetchOnInvalidate: cfg.Cache.RefetchOnInvalidate,
		RefetchConcurrency:  cfg.Cache.RefetchConcurrency,
		Registerer:          reg,
		Logger:              log,
	})
	if err != nil {
		return err
	}
	defer cache.Close()

	var bg sync.WaitGroup
	bgCtx, bgCancel := context.WithCancel(rootCtx)
	defer func() {
		bgCancel()
		bg.Wait()
	}()

	var runnerOpts []mutation.Option
	if cfg.Redis.RedisURL != "" {
		busCtx, busCancel := context.WithTimeout(rootCtx, 5*time.Second)
		bus, err := redis.New(busCtx, cfg.Redis.RedisURL, cfg.Redis.Channel, log)
		busCancel()
		if err != nil {
			return err
		}
		defer func() {
			bgCancel()
			_ = bus.Close()
		}()

		runnerOpts = append(runnerOpts, mutation.WithBroadcaster(bus))

		bg.Add(1)
		go func() {
			defer bg.Done()
			if err := bus.Run(bgCtx, cache); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("invalidation_bus_stopped", slog.String("err", err.Error()))
			}
		}()
		log.Info("invalidation_bus_started", slog.String("channel", cfg.Redis.Channel))
	}

	runner := mutation.NewRunner(cache, runnerOpts...)
	defer runner.Wait()

	svc := service.New(pg, objects, cache, runner, service.Config{
		Auth:    cfg.Auth,
		Limits:  cfg.Limits,
		Buckets: cfg.S3.Buckets,
	})

	if cfg.Mongo.URI != "" {
		mCtx, mCancel := context.WithTimeout(rootCtx, 10*time.Second)
		chats, err := mongo.New(mCtx, cfg.Mongo)
		mCancel()
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = chats.Close(ctx)
		}()

		svc.SetChatStorage(chats)
		log.Info("mongo_connected")
	}

	sessions := session.NewBroker(64)
	defer sessions.Close()
	svc.SetSessionBroker(sessions)

	bg.Add(1)
	go func() {
		defer bg.Done()
		svc.WatchSessions(bgCtx)
	}()

	log.Info("service_initialized")

	// Пробы и метрики — на отдельном порту.
	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pg.Ping(ctx); err != nil {
			http.Error(w, "postgres unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	metricsSrv := &http.Server{
		Addr:              cfg.Metrics.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("metrics_listen_start", slog.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics_serve_failed", slog.String("err", err.Error()))
		}
	}()

	apiHandler := feedhttp.NewRouter(svc, feedhttp.Options{
		Logger:         log,
		Timeout:        cfg.Timeouts.Request,
		UploadTimeout:  cfg.Timeouts.Upload,
		UploadMaxBytes: cfg.Limits.UploadMaxBytes,
		Metrics:        middleware.NewHTTPMetrics(reg),
	})

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           apiHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		return err
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("gateway_ready")

	var serveErr error
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case serveErr = <-serveErrCh:
		if serveErr != nil {
			log.Error("http_serve_failed", slog.String("err", serveErr.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics_shutdown_incomplete", slog.String("err", err.Error()))
	}

	return serveErr
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
