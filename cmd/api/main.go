package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	amqppub "kennel-scheduler/internal/adapters/notify/amqp"
	"kennel-scheduler/internal/adapters/records/remote"
	pg "kennel-scheduler/internal/adapters/storage/postgres"
	rdb "kennel-scheduler/internal/adapters/storage/redis"
	"kennel-scheduler/internal/config"
	"kennel-scheduler/internal/domain/timeline"
	"kennel-scheduler/internal/platform/logger"
	"kennel-scheduler/internal/router"
)

// @title Kennel Scheduler API
// @version 1.0
// @description Habitaciones, estadías, grilla de ocupación y asignación de mascotas.
// @BasePath /
func main() {
	cfgPath := flag.String("config", "config.toml", "path to config.toml")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		// todavía no hay logger configurado
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"err": err})
		logger.Sync(log)
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	weekStart, _ := cfg.Grid.Weekday()
	opts := router.Options{
		DragSessionKey: cfg.Redis.SessionKey,
		Logger:         log,
		Timeline:       timeline.Config{DefaultDays: cfg.Grid.DefaultDays, WeekStart: weekStart},
		DisableMetrics: !cfg.Metrics.Enabled,
		ServiceName:    cfg.Log.App,
	}

	if cfg.Database.DSN != "" {
		db, err := pg.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		opts.DB = db
		log.Info("storage: postgres", nil)
	} else {
		log.Info("storage: memory", nil)
	}

	if cfg.Redis.Addr != "" {
		client, err := rdb.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		opts.Redis = client
		log.Info("drag sessions: redis", map[string]any{"addr": cfg.Redis.Addr})
	}

	if cfg.AMQP.URL != "" {
		pub, err := amqppub.Dial(cfg.AMQP.URL, cfg.AMQP.Queue, log)
		if err != nil {
			return err
		}
		defer pub.Close()
		opts.Publisher = pub
		log.Info("events: amqp", map[string]any{"queue": cfg.AMQP.Queue})
	}

	if cfg.Records.BaseURL != "" {
		rc, err := remote.New(cfg.Records.BaseURL, cfg.Records.Timeout.Duration, log)
		if err != nil {
			return err
		}
		opts.RecordsSource = rc
		log.Info("records: remote", map[string]any{"base_url": cfg.Records.BaseURL})
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", map[string]any{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()
	return srv.Shutdown(ctx)
}
