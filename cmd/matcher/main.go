// cmd/matcher/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mentor-match/internal/api"
	"mentor-match/internal/common/config"
	"mentor-match/internal/common/database"
	"mentor-match/internal/common/logger"
	"mentor-match/internal/common/observability"
	"mentor-match/internal/directory"
	"mentor-match/internal/matching"
	"mentor-match/internal/store"
	"mentor-match/internal/trigger"
)

// waitForDependency retries a startup probe with a doubling delay
// until it succeeds or the attempt budget runs out.
func waitForDependency(name string, attempts int, delay time.Duration, log *zap.Logger, probe func() error) error {
	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err = probe(); err == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		log.Warn(name+" not ready",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Duration("retryIn", delay),
		)
		time.Sleep(delay)
		delay *= 2
	}

	return fmt.Errorf("%s: giving up after %d attempts: %w", name, attempts, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting mentor matcher...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = waitForDependency("PostgreSQL", 15, 2*time.Second, zapLog, func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	})

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = waitForDependency("Elasticsearch", 15, 2*time.Second, zapLog, func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	})

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = waitForDependency("Redis", 10, 2*time.Second, zapLog, func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	})

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire the matching pipeline ---
	cacheTTL := time.Duration(cfg.Matching.CacheTTL) * time.Second
	dir := directory.NewES(esClient.Client, redisClient.Client, cfg.Database.Elasticsearch.Index, cacheTTL, log)

	matchStore := store.NewPostgres(pg.DB, log)

	engine := matching.NewEngine(
		matching.NewRetriever(dir, cfg.Matching.PoolSize, log),
		matching.NewRanker(cfg.Matching.RetrievalBoost, cfg.Matching.MaxResults),
		matching.NewPersister(matchStore),
		obs,
		log,
	)

	runtime := trigger.NewHTTPRuntime(cfg.Runtime, log)
	trig := trigger.New(runtime, engine, cfg.Runtime.FunctionName, log)

	server := api.NewServer(matchStore, dir, trig, log)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if err := server.Listen(runCtx, cfg.Server.Port, shutdownTimeout); err != nil {
		zapLog.Error("server stopped", zap.Error(err))
	}

	zapLog.Info("Shutdown complete")
}
