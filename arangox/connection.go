package arangox

import (
	"context"
	"strings"

	arangoDriver "github.com/arangodb/go-driver"
	"github.com/clinia/arangoschema/arangox/schema"
	"github.com/clinia/arangoschema/logrusx"
)

// Connection runs schema statements against an ArangoDB database. When
// pretending, statements are logged and captured instead of executed.
//
// A Connection is not safe for concurrent use.
type Connection struct {
	db         arangoDriver.Database
	grammar    schema.Grammar
	l          *logrusx.Logger
	pretending bool
	queries    []LoggedQuery
}

var _ schema.Connection = (*Connection)(nil)

type ConnectionOption func(*Connection)

func WithPretend(pretend bool) ConnectionOption {
	return func(c *Connection) {
		c.pretending = pretend
	}
}

func WithGrammar(g schema.Grammar) ConnectionOption {
	return func(c *Connection) {
		c.grammar = g
	}
}

func WithConnectionLogger(l *logrusx.Logger) ConnectionOption {
	return func(c *Connection) {
		c.l = l
	}
}

func NewConnection(db arangoDriver.Database, opts ...ConnectionOption) *Connection {
	c := &Connection{db: db}
	for _, o := range opts {
		o(c)
	}
	if c.grammar == nil {
		c.grammar = schema.NewAQLGrammar()
	}
	if c.l == nil {
		c.l = logrusx.New("arangox", "")
	}
	return c
}

func (c *Connection) Database() arangoDriver.Database {
	return c.db
}

func (c *Connection) Statement(ctx context.Context, query string, bindings map[string]any) error {
	if c.pretending {
		c.LogQuery(query, bindings)
		return nil
	}

	c.l.WithField("bindings", bindings).Debugf("executing statement: %s", strings.TrimSpace(query))
	cursor, err := c.db.Query(ctx, query, bindings)
	if err != nil {
		return err
	}

	return cursor.Close()
}

func (c *Connection) Pretending() bool {
	return c.pretending
}

func (c *Connection) LogQuery(query string, bindings map[string]any) {
	c.queries = append(c.queries, LoggedQuery{Query: query, Bindings: bindings})
	if c.pretending {
		c.l.WithField("bindings", bindings).Warnf("[dry-run] %s", strings.TrimSpace(query))
	}
}

// QueryLog returns the statements logged so far.
func (c *Connection) QueryLog() []LoggedQuery {
	return append([]LoggedQuery(nil), c.queries...)
}

func (c *Connection) SchemaGrammar() schema.Grammar {
	return c.grammar
}

// Pretend runs fn with the connection pretending and returns the statements
// it would have executed.
func (c *Connection) Pretend(ctx context.Context, fn func(ctx context.Context) error) ([]LoggedQuery, error) {
	prevPretending, prevQueries := c.pretending, c.queries
	c.pretending, c.queries = true, nil
	defer func() {
		c.pretending = prevPretending
		c.queries = prevQueries
	}()

	err := fn(ctx)
	return append([]LoggedQuery(nil), c.queries...), err
}
