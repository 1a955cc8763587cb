package handlers

import (
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/riftlab/archetype-api/internal/logic"
	"github.com/riftlab/archetype-api/internal/models"
)

type Config struct {
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger

	// Pipeline output documents loaded at startup
	Attributes *models.AttributesDoc
	Spells     *models.SpellDatabase

	// Services
	Assignments   logic.AssignmentStore
	Relationships logic.RelationshipService

	CacheTTL             time.Duration
	RelationshipMinGames uint64
}

type Handler struct {
	pg            *pgxpool.Pool
	ch            driver.Conn
	redis         *redis.Client
	logger        *zap.SugaredLogger
	validator     *validator.Validate
	attrs         *models.AttributesDoc
	spells        *models.SpellDatabase
	assignments   logic.AssignmentStore
	relationships logic.RelationshipService
	cacheTTL      time.Duration
	minGames      uint64
}

func New(cfg Config) *Handler {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Handler{
		pg:            cfg.Postgres,
		ch:            cfg.ClickHouse,
		redis:         cfg.Redis,
		logger:        cfg.Logger.Sugar(),
		validator:     validator.New(),
		attrs:         cfg.Attributes,
		spells:        cfg.Spells,
		assignments:   cfg.Assignments,
		relationships: cfg.Relationships,
		cacheTTL:      ttl,
		minGames:      cfg.RelationshipMinGames,
	}
}
