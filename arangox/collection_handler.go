package arangox

import (
	"context"
	"encoding/json"

	arangoDriver "github.com/arangodb/go-driver"
	"github.com/clinia/arangoschema/arangox/schema"
	"github.com/clinia/arangoschema/errorx"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// CollectionHandler manages collections and indexes of an ArangoDB database.
type CollectionHandler struct {
	db arangoDriver.Database
}

var _ schema.CollectionHandler = (*CollectionHandler)(nil)

func NewCollectionHandler(db arangoDriver.Database) *CollectionHandler {
	return &CollectionHandler{db: db}
}

func (h *CollectionHandler) Create(ctx context.Context, collection string, config map[string]any) error {
	opts, err := createCollectionOptions(config)
	if err != nil {
		return err
	}

	_, err = h.db.CreateCollection(ctx, collection, opts)
	return err
}

func (h *CollectionHandler) Drop(ctx context.Context, collection string) error {
	col, err := h.db.Collection(ctx, collection)
	if err != nil {
		return err
	}

	return col.Remove(ctx)
}

func (h *CollectionHandler) DropIfExists(ctx context.Context, collection string) error {
	exists, err := h.db.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	return h.Drop(ctx, collection)
}

func (h *CollectionHandler) Rename(ctx context.Context, collection, to string) error {
	col, err := h.db.Collection(ctx, collection)
	if err != nil {
		return err
	}

	return col.Rename(ctx, to)
}

func (h *CollectionHandler) Index(ctx context.Context, collection string, kind schema.IndexKind, attributes []string, unique bool, options map[string]any) error {
	col, err := h.db.Collection(ctx, collection)
	if err != nil {
		return err
	}

	return ensureIndex(ctx, col, kind, attributes, unique, options)
}

func (h *CollectionHandler) DropIndex(ctx context.Context, collection, id string) error {
	col, err := h.db.Collection(ctx, collection)
	if err != nil {
		return err
	}

	indexes, err := col.Indexes(ctx)
	if err != nil {
		return err
	}

	for _, idx := range indexes {
		if idx.ID() == id {
			return idx.Remove(ctx)
		}
	}

	return errorx.NotFoundErrorf("index '%s' does not exist on collection '%s'", id, collection)
}

func (h *CollectionHandler) Indexes(ctx context.Context, collection string) ([]schema.IndexInfo, error) {
	col, err := h.db.Collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	indexes, err := col.Indexes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]schema.IndexInfo, 0, len(indexes))
	for _, idx := range indexes {
		out = append(out, schema.IndexInfo{
			ID:     idx.ID(),
			Type:   string(idx.Type()),
			Fields: idx.Fields(),
		})
	}

	return out, nil
}

// createCollectionOptions maps a blueprint create config onto the driver
// options. The blueprint marks auto-increment keys with
// keyOptions.autoincrement, ArangoDB expects keyOptions.type.
func createCollectionOptions(config map[string]any) (*arangoDriver.CreateCollectionOptions, error) {
	opts := &arangoDriver.CreateCollectionOptions{}
	if len(config) == 0 {
		return opts, nil
	}

	raw, err := json.Marshal(config)
	if err != nil {
		return nil, errorx.InvalidArgumentErrorf("invalid collection config: %v", err)
	}

	if gjson.GetBytes(raw, "keyOptions.autoincrement").Bool() {
		if raw, err = sjson.SetBytes(raw, "keyOptions.type", string(arangoDriver.KeyGeneratorAutoIncrement)); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	if raw, err = sjson.DeleteBytes(raw, "keyOptions.autoincrement"); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := json.Unmarshal(raw, opts); err != nil {
		return nil, errorx.InvalidArgumentErrorf("invalid collection config: %v", err)
	}

	return opts, nil
}
