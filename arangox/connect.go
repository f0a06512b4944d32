package arangox

import (
	"context"
	stderrors "errors"

	arangoDriver "github.com/arangodb/go-driver"
	"github.com/arangodb/go-driver/http"
	"github.com/clinia/arangoschema/logrusx"
	"github.com/clinia/arangoschema/otelx"
	"github.com/clinia/arangoschema/retryx"
	"github.com/pkg/errors"
)

const tracerName = "github.com/clinia/arangoschema/arangox"

// Connect opens the configured database, retrying while the server is
// unreachable. Authentication failures are not retried.
func Connect(ctx context.Context, cfg *Config, l *logrusx.Logger, opts ...retryx.RetryOption) (arangoDriver.Database, error) {
	conn, err := http.NewConnection(http.ConnectionConfig{
		Endpoints: cfg.Endpoints,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	client, err := arangoDriver.NewClient(arangoDriver.ClientConfig{
		Connection:     conn,
		Authentication: arangoDriver.BasicAuthentication(cfg.Username, cfg.Password),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var db arangoDriver.Database
	opts = append([]retryx.RetryOption{
		retryx.WithRetryIf(func(err error) bool {
			return !arangoDriver.IsUnauthorized(err) && !arangoDriver.IsNotFound(err)
		}),
		retryx.WithOnRetry(func(attempt int, err error) {
			l.WithError(err).Warnf("unable to reach database '%s', attempt %d", cfg.Database, attempt)
		}),
	}, opts...)

	err = retryx.ExponentialRetryContext(ctx, func() error {
		db, err = client.Database(ctx, cfg.Database)
		return err
	}, opts...)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Open connects to the configured database and returns the schema builder
// of its migrations. The builder must be closed to flush its spans.
func Open(ctx context.Context, cfg *Config, l *logrusx.Logger, opts ...retryx.RetryOption) (*Builder, error) {
	tracer, err := otelx.New(tracerName, l, &cfg.Tracing)
	if err != nil {
		return nil, err
	}

	db, err := Connect(ctx, cfg, l, opts...)
	if err != nil {
		return nil, stderrors.Join(err, tracer.Shutdown(ctx))
	}

	conn := NewConnection(db, WithPretend(cfg.Pretend), WithConnectionLogger(l))
	return NewBuilder(conn,
		WithCollectionPrefix(cfg.Prefix),
		WithBuilderLogger(l),
		WithBuilderTracer(tracer.Tracer()),
		withCloser(tracer.Shutdown),
	), nil
}

// OpenMigrator opens the configured database and returns the migrator of ms
// along with its builder, which must be closed.
func OpenMigrator(ctx context.Context, cfg *Config, l *logrusx.Logger, ms Migrations, opts ...retryx.RetryOption) (*Migrator, *Builder, error) {
	b, err := Open(ctx, cfg, l, opts...)
	if err != nil {
		return nil, nil, err
	}

	return NewMigrator(cfg.MigratorOptions(b, ms)), b, nil
}
