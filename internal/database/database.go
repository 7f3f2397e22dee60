package database

import (
	"context"
	"database/sql"
	"fmt"

	"catalog-orders/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Open connects the gateway selected by cfg.Store.Driver. For postgres the
// collection tables are created before the gateway is returned.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Gateway, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout)
	defer cancel()

	switch cfg.Store.Driver {
	case DriverMongo:
		logger.Info("Connecting to mongodb", zap.String("database", cfg.Mongo.Database))

		gw, err := NewMongoGateway(ctx, cfg.Mongo.URL, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		if err := gw.Ping(ctx); err != nil {
			_ = gw.Close(context.Background())
			return nil, fmt.Errorf("failed to ping mongodb: %w", err)
		}
		return gw, nil

	case DriverPostgres:
		dsn := cfg.Database.DSN()
		logger.Info("Connecting to postgres",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Database),
		)

		if err := migrate(dsn, logger); err != nil {
			return nil, err
		}

		return NewPostgresGateway(ctx, dsn, cfg.Database.MaxConns)

	case DriverMemory:
		logger.Warn("Using in-memory store, documents are lost on shutdown")
		return NewMemoryGateway(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func migrate(dsn string, logger *zap.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres for migrations: %w", err)
	}
	defer db.Close()

	return RunMigrations(db, logger)
}

// Health reports the gateway status in the shape served by the health endpoint.
func Health(ctx context.Context, gw Gateway) map[string]string {
	stats := make(map[string]string)

	if err := gw.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	stats["status"] = "up"
	return stats
}
