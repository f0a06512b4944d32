package arangox

import (
	"context"
	"os"
	"testing"

	"github.com/arangodb/go-driver"
	"github.com/arangodb/go-driver/http"
	"github.com/clinia/arangoschema/logrusx"
	"github.com/stretchr/testify/require"
)

func noopMigration(ctx context.Context, s *Builder) error {
	return nil
}

func arangoURL() string {
	if dsn := os.Getenv("ARANGO_URL"); len(dsn) > 0 {
		return dsn
	}
	return "http://localhost:8529"
}

func newFixture(t *testing.T, dbName string, opts ...BuilderOption) (context.Context, *Builder) {
	t.Helper()
	ctx := context.Background()

	conn, err := http.NewConnection(http.ConnectionConfig{
		Endpoints: []string{arangoURL()},
	})
	require.NoError(t, err)

	c, err := driver.NewClient(driver.ClientConfig{
		Connection: conn,
	})
	require.NoError(t, err)

	// Drop the database if it exists
	exists, err := c.DatabaseExists(ctx, dbName)
	require.NoError(t, err)
	if exists {
		db, err := c.Database(ctx, dbName)
		require.NoError(t, err)

		err = db.Remove(ctx)
		require.NoError(t, err)
	}

	db, err := c.CreateDatabase(ctx, dbName, &driver.CreateDatabaseOptions{})
	require.NoError(t, err)

	l := logrusx.NewDiscard()
	return ctx, NewBuilder(NewConnection(db, WithConnectionLogger(l)), append([]BuilderOption{WithBuilderLogger(l)}, opts...)...)
}
