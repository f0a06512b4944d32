package arangox

import (
	"context"
	"errors"

	"github.com/clinia/arangoschema/arangox/schema"
	"github.com/clinia/arangoschema/logrusx"
	"go.opentelemetry.io/otel/trace"
)

// Builder is the entry point of schema changes: each call builds one
// blueprint against the builder connection.
type Builder struct {
	conn    *Connection
	handler schema.CollectionHandler
	prefix  string
	l       *logrusx.Logger
	tracer  trace.Tracer
	closers []func(context.Context) error
}

type BuilderOption func(*Builder)

// WithCollectionPrefix prefixes every collection touched by the builder.
func WithCollectionPrefix(prefix string) BuilderOption {
	return func(b *Builder) {
		b.prefix = prefix
	}
}

// WithCollectionHandler replaces the driver backed collection handler.
func WithCollectionHandler(h schema.CollectionHandler) BuilderOption {
	return func(b *Builder) {
		b.handler = h
	}
}

func WithBuilderLogger(l *logrusx.Logger) BuilderOption {
	return func(b *Builder) {
		b.l = l
	}
}

func WithBuilderTracer(t trace.Tracer) BuilderOption {
	return func(b *Builder) {
		b.tracer = t
	}
}

func withCloser(fn func(context.Context) error) BuilderOption {
	return func(b *Builder) {
		b.closers = append(b.closers, fn)
	}
}

func NewBuilder(conn *Connection, opts ...BuilderOption) *Builder {
	b := &Builder{conn: conn}
	for _, o := range opts {
		o(b)
	}
	if b.handler == nil {
		b.handler = NewCollectionHandler(conn.Database())
	}
	if b.l == nil {
		b.l = conn.l
	}
	return b
}

// Close releases the resources opened along with the builder.
func (s *Builder) Close(ctx context.Context) error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c(ctx))
	}
	s.closers = nil
	return errors.Join(errs...)
}

func (s *Builder) Connection() *Connection {
	return s.conn
}

// Blueprint creates a blueprint for collection configured like the builder.
func (s *Builder) Blueprint(collection string, setup func(b *schema.Blueprint)) *schema.Blueprint {
	opts := []schema.BlueprintOption{
		schema.WithPrefix(s.prefix),
		schema.WithLogger(s.l),
	}
	if s.tracer != nil {
		opts = append(opts, schema.WithTracer(s.tracer))
	}

	return schema.NewBlueprint(collection, s.handler, setup, opts...)
}

// Build executes bp with the builder connection and its schema grammar.
func (s *Builder) Build(ctx context.Context, bp *schema.Blueprint) error {
	_, err := bp.Build(ctx, s.conn, nil)
	return err
}

// Create creates collection with config, then applies the declarations of setup.
func (s *Builder) Create(ctx context.Context, collection string, setup func(b *schema.Blueprint), config map[string]any) error {
	return s.Build(ctx, s.Blueprint(collection, func(b *schema.Blueprint) {
		b.Create(config)
		if setup != nil {
			setup(b)
		}
	}))
}

// Collection applies the declarations of setup to an existing collection.
func (s *Builder) Collection(ctx context.Context, collection string, setup func(b *schema.Blueprint)) error {
	return s.Build(ctx, s.Blueprint(collection, setup))
}

func (s *Builder) Drop(ctx context.Context, collection string) error {
	return s.Build(ctx, s.Blueprint(collection, func(b *schema.Blueprint) {
		b.Drop()
	}))
}

func (s *Builder) DropIfExists(ctx context.Context, collection string) error {
	return s.Build(ctx, s.Blueprint(collection, func(b *schema.Blueprint) {
		b.DropIfExists()
	}))
}

// Rename renames collection to `to`. Both names are prefixed.
func (s *Builder) Rename(ctx context.Context, collection, to string) error {
	return s.Build(ctx, s.Blueprint(collection, func(b *schema.Blueprint) {
		b.Rename(s.prefix + to)
	}))
}

func (s *Builder) HasCollection(ctx context.Context, collection string) (bool, error) {
	return s.conn.Database().CollectionExists(ctx, s.prefix+collection)
}
