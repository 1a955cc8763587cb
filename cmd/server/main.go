// Command server serves the pipeline's output documents over HTTP:
// champion attributes, archetype assignments, distribution, and
// archetype-pair win rates aggregated from match history.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/riftlab/archetype-api/internal/config"
	"github.com/riftlab/archetype-api/internal/docio"
	"github.com/riftlab/archetype-api/internal/handlers"
	"github.com/riftlab/archetype-api/internal/logic"
	"github.com/riftlab/archetype-api/internal/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var zlog *zap.Logger
	if cfg.Env == "production" {
		zlog, err = zap.NewProduction()
	} else {
		zlog, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	ctx := context.Background()

	// Pipeline output documents
	outDir := os.Getenv("OUT_DIR")
	if outDir == "" {
		outDir = "data/out"
	}
	var attrs models.AttributesDoc
	if err := docio.ReadJSON(outDir+"/champion_attributes.json", &attrs); err != nil {
		logger.Fatalw("failed to load attribute document", "error", err)
	}
	var spells models.SpellDatabase
	if err := docio.ReadJSON(outDir+"/spell_database.json", &spells); err != nil {
		logger.Fatalw("failed to load spell database", "error", err)
	}

	// Postgres
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Fatalw("failed to connect to postgres", "error", err)
	}
	defer pg.Close()

	// ClickHouse
	chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		logger.Fatalw("invalid clickhouse url", "error", err)
	}
	ch, err := clickhouse.Open(chOpts)
	if err != nil {
		logger.Fatalw("failed to connect to clickhouse", "error", err)
	}
	defer ch.Close()

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatalw("invalid redis url", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	h := handlers.New(handlers.Config{
		Postgres:             pg,
		ClickHouse:           ch,
		Redis:                rdb,
		Logger:               zlog,
		Attributes:           &attrs,
		Spells:               &spells,
		Assignments:          logic.NewAssignmentStore(pg),
		Relationships:        logic.NewRelationshipService(ch),
		CacheTTL:             cfg.CacheTTL,
		RelationshipMinGames: cfg.RelationshipMinGames,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler:      h.Router(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infow("server starting", "port", cfg.Port, "champions", len(attrs.Champions))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalw("server forced to shutdown", "error", err)
	}
	logger.Info("server stopped")
}
