package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/glosso/glosso"
	"github.com/glosso/glosso/internal/config"
	"github.com/glosso/glosso/internal/server"
	"github.com/glosso/glosso/pkg/cache"
	"github.com/glosso/glosso/pkg/catalog"
	"github.com/glosso/glosso/pkg/health"
	"github.com/glosso/glosso/pkg/logger"
	"github.com/glosso/glosso/pkg/redis"
	"github.com/glosso/glosso/pkg/store"
)

func newLogger(conf config.Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithLevel(conf.Logging.SlogLevel()),
		logger.WithExtractors(server.RequestIDExtractor()),
	}
	if conf.Logging.SentryDSN != "" {
		opts = append(opts, logger.WithSentry(logger.SentryConfig{
			DSN:         conf.Logging.SentryDSN,
			Environment: conf.Logging.Environment,
		}))
	}
	return logger.New(opts...)
}

// buildStore creates the configured store backend along with its
// readiness check and any shutdown hooks.
func buildStore(ctx context.Context, conf config.Config, log *slog.Logger) (glosso.Store, health.Checks, []func(context.Context) error, error) {
	checks := health.Checks{}
	var hooks []func(context.Context) error

	switch conf.Store.Driver {
	case config.DriverMemory:
		st := glosso.NewMemoryStore()
		checks["store"] = st.Healthcheck
		return st, checks, hooks, nil

	case config.DriverFile:
		st, err := glosso.NewFileStore(conf.Store.File.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		checks["store"] = st.Healthcheck
		return st, checks, hooks, nil

	case config.DriverPostgres:
		st, err := glosso.NewPostgresStore(ctx, glosso.PostgresConfig{
			ConnectionString: conf.Store.Postgres.URL,
			MaxConns:         conf.Store.Postgres.MaxConns,
			RetryAttempts:    conf.Store.Postgres.RetryAttempts,
			RetryInterval:    conf.Store.Postgres.RetryInterval.Std(),
		})
		if err != nil {
			return nil, nil, nil, err
		}
		if err := st.Migrate(ctx, log); err != nil {
			st.Close()
			return nil, nil, nil, err
		}
		checks["store"] = st.Healthcheck
		hooks = append(hooks, func(context.Context) error {
			st.Close()
			return nil
		})
		return st, checks, hooks, nil

	case config.DriverS3:
		st, err := glosso.NewS3Store(glosso.S3Config{
			Bucket:    conf.Store.S3.Bucket,
			Region:    conf.Store.S3.Region,
			AccessKey: conf.Store.S3.AccessKey,
			SecretKey: conf.Store.S3.SecretKey,
			Endpoint:  conf.Store.S3.Endpoint,
			Prefix:    conf.Store.S3.Prefix,
			PathStyle: conf.Store.S3.PathStyle,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		checks["store"] = st.Healthcheck
		return st, checks, hooks, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown store driver %q", conf.Store.Driver)
}

// sessionOptions maps editing config onto session options.
func sessionOptions(conf config.Config, log *slog.Logger) []glosso.Option {
	opts := []glosso.Option{glosso.WithLogger(log)}
	switch conf.Editing.Sanitize {
	case config.SanitizePlain:
		opts = append(opts, glosso.WithPlainTextValues())
	case config.SanitizeInline:
		opts = append(opts, glosso.WithInlineHTMLValues())
	}
	if conf.Editing.SnakeCaseKeys {
		opts = append(opts, glosso.WithSnakeCaseKeys())
	}
	return opts
}

func runServe(ctx context.Context, conf config.Config) error {
	log := newLogger(conf)

	st, checks, hooks, err := buildStore(ctx, conf, log)
	if err != nil {
		return err
	}

	opts := sessionOptions(conf, log)
	if conf.Draft.Enabled {
		var drafts cache.Cache[glosso.Draft]
		if conf.Draft.RedisURL != "" {
			client, err := redis.Open(ctx, conf.Draft.RedisURL)
			if err != nil {
				return err
			}
			drafts = cache.NewRedis[glosso.Draft](client, cache.WithPrefix("glosso:draft"))
			checks["redis"] = redis.Healthcheck(client)
			hooks = append(hooks, redis.Shutdown(client))
		} else {
			mem := cache.NewMemory[glosso.Draft]()
			drafts = mem
			hooks = append(hooks, func(context.Context) error { return mem.Close() })
		}
		opts = append(opts,
			glosso.WithDraftCache(drafts),
			glosso.WithDraftTTL(conf.Draft.TTL.Std()),
		)
	}

	sess, err := glosso.New(st, conf.Project.Name, opts...)
	if err != nil {
		return err
	}
	if err := sess.Load(ctx); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("project %q has no catalog yet, run 'glosso init' first: %w", conf.Project.Name, err)
		}
		return err
	}
	log.Info("catalog loaded", slog.String("project", conf.Project.Name))

	if conf.Draft.Enabled {
		switch err := sess.RestoreDraft(ctx); {
		case err == nil:
			log.Info("draft restored", slog.Int("pending_changes", len(sess.Changes())))
		case errors.Is(err, glosso.ErrNoDraft):
		default:
			log.Warn("draft restore failed", slog.Any("error", err))
		}
	}

	srvOpts := []server.Option{
		server.WithAddr(conf.Server.Addr),
		server.WithLogger(log),
		server.WithTimeouts(
			conf.Server.ReadTimeout.Std(),
			conf.Server.WriteTimeout.Std(),
			conf.Server.ShutdownTimeout.Std(),
		),
		server.WithHealthChecks(checks),
	}
	if conf.Draft.Enabled {
		srvOpts = append(srvOpts, server.WithDraftAutosave())
	}
	if conf.Export.OnSave {
		format, err := catalog.ParseFormat(conf.Export.Format)
		if err != nil {
			return err
		}
		srvOpts = append(srvOpts, server.WithExportOnSave(conf.Export.Dir, format))
	}
	if conf.Backup.Schedule != "" {
		srvOpts = append(srvOpts, server.WithBackups(
			conf.Backup.Schedule, st, conf.Project.Name, conf.Backup.Dir, conf.Backup.Keep,
		))
	}
	for _, hook := range hooks {
		srvOpts = append(srvOpts, server.WithShutdownHook(hook))
	}

	srv, err := server.New(sess, srvOpts...)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
