package arangox

import (
	"context"
	"testing"

	"github.com/arangodb/go-driver"
	"github.com/clinia/arangoschema/arangox/schema"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	ctx, b := newFixture(t, "test_builder", WithCollectionPrefix("app_"))
	db := b.Connection().Database()

	t.Run("should create a prefixed collection with its indexes", func(t *testing.T) {
		err := b.Create(ctx, "users", func(bp *schema.Blueprint) {
			bp.AutoIncrement()
			bp.Unsupported("string", "email")
			bp.PersistentIndex(nil, schema.Parameters{"unique": true})
			bp.HashIndex([]string{"name", "city", "name"}, nil)
		}, nil)
		require.NoError(t, err)

		exists, err := b.HasCollection(ctx, "users")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = db.CollectionExists(ctx, "app_users")
		require.NoError(t, err)
		assert.True(t, exists)

		col, err := db.Collection(ctx, "app_users")
		require.NoError(t, err)
		props, err := col.Properties(ctx)
		require.NoError(t, err)
		assert.Equal(t, driver.KeyGeneratorAutoIncrement, props.KeyOptions.Type)

		indexes, err := b.handler.Indexes(ctx, "app_users")
		require.NoError(t, err)
		assert.True(t, lo.ContainsBy(indexes, func(idx schema.IndexInfo) bool {
			return idx.Type == string(schema.IndexPersistent) && len(idx.Fields) == 1 && idx.Fields[0] == "email"
		}))
	})

	t.Run("should rewrite documents with attribute commands", func(t *testing.T) {
		col, err := db.Collection(ctx, "app_users")
		require.NoError(t, err)
		_, err = col.CreateDocument(ctx, map[string]any{"email": "a@b.c", "nick": "ab", "age": 3})
		require.NoError(t, err)

		err = b.Collection(ctx, "users", func(bp *schema.Blueprint) {
			bp.RenameAttribute("nick", "handle")
			bp.DropAttribute("age")
		})
		require.NoError(t, err)

		cursor, err := db.Query(ctx, "FOR u IN app_users RETURN UNSET(u, '_key', '_id', '_rev')", nil)
		require.NoError(t, err)
		defer cursor.Close()

		var doc map[string]any
		_, err = cursor.ReadDocument(ctx, &doc)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"email": "a@b.c", "handle": "ab"}, doc)
	})

	t.Run("should drop indexes by type and attributes", func(t *testing.T) {
		err := b.Collection(ctx, "users", func(bp *schema.Blueprint) {
			bp.DropIndex("email", schema.IndexPersistent)
		})
		require.NoError(t, err)

		indexes, err := b.handler.Indexes(ctx, "app_users")
		require.NoError(t, err)
		assert.False(t, lo.ContainsBy(indexes, func(idx schema.IndexInfo) bool {
			return len(idx.Fields) == 1 && idx.Fields[0] == "email"
		}))
	})

	t.Run("should rename and drop collections", func(t *testing.T) {
		require.NoError(t, b.Rename(ctx, "users", "members"))

		exists, err := b.HasCollection(ctx, "members")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, b.Drop(ctx, "members"))
		require.NoError(t, b.DropIfExists(ctx, "members"))

		exists, err = b.HasCollection(ctx, "members")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("should return the backend error of a failing command", func(t *testing.T) {
		err := b.Drop(ctx, "ghosts")
		assert.True(t, driver.IsNotFound(err))
	})
}

func TestConnectionPretend(t *testing.T) {
	ctx, b := newFixture(t, "test_connection-pretend")
	conn := b.Connection()

	queries, err := conn.Pretend(ctx, func(ctx context.Context) error {
		return b.Create(ctx, "logs", func(bp *schema.Blueprint) {
			bp.DropAttribute("payload")
			bp.Unsupported("timestamps")
		}, nil)
	})
	require.NoError(t, err)
	assert.False(t, conn.Pretending())

	require.Len(t, queries, 3)
	assert.Equal(t, LoggedQuery{Query: "/* Create 'logs' collection. */\n", Bindings: map[string]any{}}, queries[0])
	assert.Contains(t, queries[1].Query, "ZIP(@attributes, @nulls)")
	assert.Equal(t, "logs", queries[1].Bindings["@collection"])
	assert.Equal(t, "/* 'timestamps' is ignored; the schema blueprint doesn't support it. */\n", queries[2].Query)

	exists, err := b.HasCollection(ctx, "logs")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, conn.QueryLog())
}
