package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/glosso/glosso/pkg/catalog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresConfig configures the PostgreSQL adapter.
type PostgresConfig struct {
	ConnectionString string
	MaxConns         int32
	RetryAttempts    int
	RetryInterval    time.Duration
}

// PostgresStore persists catalogs in a single table holding one JSONB
// document per project.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres opens a connection pool and verifies it with a ping.
// Connection attempts back off linearly, so a database booting
// alongside the service does not fail the first start.
func NewPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = time.Second
	}

	var lastErr error
	for i := range max(cfg.RetryAttempts, 1) {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return &PostgresStore{pool: pool}, nil
			}
			pool.Close()
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, errors.Join(lastErr, ctx.Err())
		case <-time.After(time.Duration(i+1) * interval):
		}
	}
	return nil, lastErr
}

// Migrate applies the embedded schema migrations. The pgx pool is
// bridged to database/sql for goose; the bridge shares the pool's
// connections and must not be closed here.
func (s *PostgresStore) Migrate(ctx context.Context, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(s.pool)

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseLogger{log})
	goose.SetTableName("catalog_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

// Load fetches and decodes the project's document.
func (s *PostgresStore) Load(ctx context.Context, project string) (*catalog.Catalog, error) {
	if err := validateProject(project); err != nil {
		return nil, err
	}
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM catalogs WHERE project = $1`, project,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, project)
		}
		return nil, err
	}
	return catalog.Decode(data)
}

// Save upserts the encoded document for the catalog's project.
func (s *PostgresStore) Save(ctx context.Context, cat *catalog.Catalog) error {
	if err := validateProject(cat.Project()); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO catalogs (project, document, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (project)
		 DO UPDATE SET document = EXCLUDED.document, updated_at = now()`,
		cat.Project(), cat.Encode(),
	)
	return err
}

// Healthcheck pings the database.
func (s *PostgresStore) Healthcheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

type gooseLogger struct {
	log *slog.Logger
}

func (g *gooseLogger) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

func (g *gooseLogger) Fatalf(format string, args ...any) {
	// Error level only; goose returns the error, which propagates up
	// without killing the process.
	g.log.Error(fmt.Sprintf(format, args...))
}
