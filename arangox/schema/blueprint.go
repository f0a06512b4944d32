package schema

import (
	"github.com/clinia/arangoschema/logrusx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	blueprintComponentName = "schema.Blueprint"
	tracerName             = "github.com/clinia/arangoschema/arangox/schema"
)

type state int

const (
	stateDeclaring state = iota
	stateBuilt
)

// Blueprint collects the structural changes declared for one collection and
// executes them, in declaration order, when built.
//
// The database forbids schema operations inside queries and transactions,
// so every command runs on its own: a failing command leaves the previous
// ones applied and the following ones not executed.
type Blueprint struct {
	collection string
	prefix     string
	client     CollectionHandler

	commands []*Command
	// attributes collects the names given to ignored column declarations so
	// an index declared without attributes can target the last one.
	attributes []string

	temporary     bool
	autoIncrement bool

	router *Router
	l      *logrusx.Logger
	tracer trace.Tracer
	state  state
}

type BlueprintOption func(*Blueprint)

// WithPrefix prepends prefix to the collection name sent to the backend.
func WithPrefix(prefix string) BlueprintOption {
	return func(b *Blueprint) {
		b.prefix = prefix
	}
}

// WithRouter replaces the default executor routing table.
func WithRouter(r *Router) BlueprintOption {
	return func(b *Blueprint) {
		b.router = r
	}
}

func WithLogger(l *logrusx.Logger) BlueprintOption {
	return func(b *Blueprint) {
		b.l = l
	}
}

func WithTracer(t trace.Tracer) BlueprintOption {
	return func(b *Blueprint) {
		b.tracer = t
	}
}

// NewBlueprint creates a blueprint for collection. setup, when given, is
// invoked immediately so declarations can be chained on the blueprint.
func NewBlueprint(collection string, client CollectionHandler, setup func(b *Blueprint), opts ...BlueprintOption) *Blueprint {
	b := &Blueprint{
		collection: collection,
		client:     client,
	}
	for _, o := range opts {
		o(b)
	}

	if b.router == nil {
		b.router = DefaultRouter()
	}
	if b.l == nil {
		b.l = logrusx.New("schema", "")
	}
	if b.tracer == nil {
		b.tracer = otel.Tracer(tracerName)
	}
	b.l = b.l.WithField("collection", b.Collection())

	if setup != nil {
		setup(b)
	}

	return b
}

// Collection returns the prefixed collection name.
func (b *Blueprint) Collection() string {
	return b.prefix + b.collection
}

// Name returns the collection name without prefix.
func (b *Blueprint) Name() string {
	return b.collection
}

func (b *Blueprint) Prefix() string {
	return b.prefix
}

// Commands returns the declared commands in declaration order.
func (b *Blueprint) Commands() []*Command {
	return append([]*Command(nil), b.commands...)
}

// Attributes returns the pending attribute names, oldest first.
func (b *Blueprint) Attributes() []string {
	return append([]string(nil), b.attributes...)
}

// Temporary makes every created collection volatile.
func (b *Blueprint) Temporary() *Blueprint {
	b.temporary = true
	return b
}

// AutoIncrement makes the created collection generate increasing keys.
func (b *Blueprint) AutoIncrement() *Blueprint {
	b.autoIncrement = true
	return b
}

func (b *Blueprint) IsTemporary() bool {
	return b.temporary
}

func (b *Blueprint) IsAutoIncrement() bool {
	return b.autoIncrement
}

// Creating reports whether a create command was declared.
func (b *Blueprint) Creating() bool {
	for _, c := range b.commands {
		if c.Name() == CommandCreate {
			return true
		}
	}
	return false
}

func (b *Blueprint) addCommand(name CommandName, handler HandlerKind, params Parameters) *Command {
	c := newCommand(name, handler, params)
	b.commands = append(b.commands, c)
	return c
}

func (b *Blueprint) lastAttribute() (string, bool) {
	if len(b.attributes) == 0 {
		return "", false
	}
	return b.attributes[len(b.attributes)-1], true
}
