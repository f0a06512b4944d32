package arangox

import (
	"context"

	arangoDriver "github.com/arangodb/go-driver"
	"github.com/clinia/arangoschema/arangox/schema"
	"github.com/clinia/arangoschema/errorx"
)

// ensureIndex creates the index of the given kind on col, doing nothing if
// an identical index already exists.
func ensureIndex(ctx context.Context, col arangoDriver.Collection, kind schema.IndexKind, fields []string, unique bool, options map[string]any) error {
	opts, err := decodeIndexOptions(options)
	if err != nil {
		return errorx.InvalidArgumentErrorf("invalid options for '%s' index on '%s': %v", kind, col.Name(), err)
	}

	if len(fields) == 0 {
		return errorx.InvalidArgumentErrorf("'%s' index on '%s' requires at least one attribute", kind, col.Name())
	}

	switch kind {
	case schema.IndexHash:
		_, _, err = col.EnsureHashIndex(ctx, fields, &arangoDriver.EnsureHashIndexOptions{
			Unique:        unique,
			Sparse:        opts.Sparse,
			NoDeduplicate: opts.NoDeduplicate,
			InBackground:  opts.InBackground,
			Name:          opts.Name,
		})
	case schema.IndexSkiplist:
		_, _, err = col.EnsureSkipListIndex(ctx, fields, &arangoDriver.EnsureSkipListIndexOptions{
			Unique:        unique,
			Sparse:        opts.Sparse,
			NoDeduplicate: opts.NoDeduplicate,
			InBackground:  opts.InBackground,
			Name:          opts.Name,
		})
	case schema.IndexPersistent:
		_, _, err = col.EnsurePersistentIndex(ctx, fields, &arangoDriver.EnsurePersistentIndexOptions{
			Unique:       unique,
			Sparse:       opts.Sparse,
			InBackground: opts.InBackground,
			Name:         opts.Name,
		})
	case schema.IndexGeo:
		_, _, err = col.EnsureGeoIndex(ctx, fields, &arangoDriver.EnsureGeoIndexOptions{
			GeoJSON:      opts.GeoJSON,
			InBackground: opts.InBackground,
			Name:         opts.Name,
		})
	case schema.IndexFulltext:
		_, _, err = col.EnsureFullTextIndex(ctx, fields, &arangoDriver.EnsureFullTextIndexOptions{
			MinLength:    opts.MinLength,
			InBackground: opts.InBackground,
			Name:         opts.Name,
		})
	case schema.IndexTTL:
		if len(fields) != 1 {
			return errorx.InvalidArgumentErrorf("ttl index on '%s' must cover exactly one attribute, got %d", col.Name(), len(fields))
		}
		_, _, err = col.EnsureTTLIndex(ctx, fields[0], opts.ExpireAfter, &arangoDriver.EnsureTTLIndexOptions{
			InBackground: opts.InBackground,
			Name:         opts.Name,
		})
	default:
		return errorx.InvalidArgumentErrorf("%q is not a supported index type", kind)
	}

	return err
}
