package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"uk_numcheck/internal/config"
	"uk_numcheck/internal/domain/service/checker"
	"uk_numcheck/internal/domain/service/numplan"
	"uk_numcheck/internal/infrastructure/datastate"
	"uk_numcheck/internal/infrastructure/notifier"
	"uk_numcheck/internal/infrastructure/ofcom"
	"uk_numcheck/internal/infrastructure/persistence"
	"uk_numcheck/internal/server"
	"uk_numcheck/internal/worker"
	"uk_numcheck/pkg/application/connectors"
	"uk_numcheck/pkg/application/modules"
	"uk_numcheck/pkg/logx"
	"uk_numcheck/pkg/middlewarex"
)

const appName = "uk-numcheck"

// Version is stamped by the build.
var Version = "dev" //nolint:gochecknoglobals

func Run(ctx context.Context, log *slog.Logger) error { //nolint:funlen
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	policy, err := numplan.StatusPolicyByName(cfg.Numbering.StatusPolicy)
	if err != nil {
		return fmt.Errorf("numplan.StatusPolicyByName: %w", err)
	}

	// 2. Storage
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db.PingContext: %w", err)
	}
	log.Info("database connection OK")

	rd := &connectors.Redis{
		Address:        cfg.Redis.Address,
		Username:       cfg.Redis.Username,
		Password:       cfg.Redis.Password,
		DatabaseNumber: cfg.Redis.DB,
	}
	redisClient := rd.Client(ctx)
	defer rd.Close(ctx)

	// 3. Dataset pipeline
	snapshots := persistence.NewSnapshotRepository(db)
	checkService := checker.NewService(policy)

	fetcher := ofcom.NewFetcher(cfg.Numbering.BaseURL, cfg.Numbering.Files, datastate.NewStore(redisClient))

	refresher := worker.NewRefresher(fetcher, snapshots, checkService, policy, cfg.Numbering.BaseURL).
		WithSeedFile(cfg.Numbering.SeedFile).
		WithDriftThreshold(cfg.Numbering.DriftThresholdPct).
		WithRetention(cfg.Numbering.SnapshotRetention)

	// 4. Notifications
	if cfg.Bot.Token != "" {
		events := make(chan worker.Event, 100)
		refresher = refresher.WithEvents(events)

		alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		if err := alertBot.SendText(ctx, "🚀 numbering plan watcher starting"); err != nil {
			log.Error("bot test failed, check token and chat id", logx.Error(err))
		}

		go func() {
			log.Info("notifier bot started listening")

			if err := alertBot.Run(ctx, events); err != nil && ctx.Err() == nil {
				log.Error("notifier bot stopped", logx.Error(err))
			}
		}()
	}

	// 5. Publish the last known rule set before taking traffic.
	if err := refresher.Bootstrap(ctx); err != nil {
		log.Warn("bootstrap failed, waiting for first refresh", logx.Error(err))
	}

	asynqRedis := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	asynqClient := asynq.NewClient(asynqRedis)
	defer asynqClient.Close()

	// 6. HTTP API
	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.HTTP.LogFieldMaxLen),
	)

	srv := server.NewServer(
		server.NewCheckServer(checkService),
		server.NewDatasetServer(checkService, worker.NewRefreshEnqueuer(asynqClient)),
	)
	srv.RegisterRoutes(router)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	})

	modules.ProbeServer{
		Name:          appName,
		Version:       Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Ready:         checkService.Ready,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
	}.Run(ctx, g)

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DB,
	}.Run(ctx, g,
		modules.AsynqQueues{"default": 1},
		modules.AsynqHandler{Pattern: worker.TaskRefresh, Handle: refresher.HandleRefresh},
	)

	modules.AsynqScheduler{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DB,
	}.Run(ctx, g, modules.AsynqScheduledTask{
		Cronspec: cfg.Numbering.RefreshCron,
		Task:     asynq.NewTask(worker.TaskRefresh, nil),
	})

	// 7. Catch up immediately instead of waiting for the first scheduled
	// refresh. The conditional download keeps this cheap.
	g.Go(func() error {
		if err := refresher.Refresh(ctx); err != nil && ctx.Err() == nil {
			log.Warn("initial refresh failed", logx.Error(err))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
