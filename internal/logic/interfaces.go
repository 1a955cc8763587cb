package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/riftlab/archetype-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RedisClient defines the interface for Redis client
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RelationshipService aggregates match outcomes into archetype-pair stats.
type RelationshipService interface {
	ArchetypePairWinRates(ctx context.Context, assignments *models.AssignmentDoc, minGames uint64) ([]models.ArchetypePairStat, error)
}

// AssignmentStore persists classification results for the serving layer.
type AssignmentStore interface {
	Upsert(ctx context.Context, doc *models.AssignmentDoc) error
	Load(ctx context.Context) (*models.AssignmentDoc, error)
}
