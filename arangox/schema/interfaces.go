package schema

import "context"

// Connection is the database connection a Blueprint is built against.
type Connection interface {
	// Statement executes a query-language statement.
	Statement(ctx context.Context, query string, bindings map[string]any) error
	// Pretending reports whether statements should only be logged.
	Pretending() bool
	LogQuery(query string, bindings map[string]any)
	SchemaGrammar() Grammar
}

// IndexInfo describes an index existing on a collection.
type IndexInfo struct {
	ID     string   `json:"id"`
	Type   string   `json:"type"`
	Fields []string `json:"fields"`
}

// CollectionHandler manages collections and indexes through the native
// database API, since none of these operations can run inside a query.
type CollectionHandler interface {
	Create(ctx context.Context, collection string, config map[string]any) error
	Drop(ctx context.Context, collection string) error
	DropIfExists(ctx context.Context, collection string) error
	Rename(ctx context.Context, collection, to string) error
	Index(ctx context.Context, collection string, kind IndexKind, attributes []string, unique bool, options map[string]any) error
	DropIndex(ctx context.Context, collection, id string) error
	Indexes(ctx context.Context, collection string) ([]IndexInfo, error)
}
