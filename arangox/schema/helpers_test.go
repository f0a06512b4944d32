package schema

import (
	"context"

	"github.com/clinia/arangoschema/logrusx"
)

type call struct {
	Method string
	Args   []any
}

type loggedQuery struct {
	Query    string
	Bindings map[string]any
}

type fakeConnection struct {
	pretend      bool
	grammar      Grammar
	statements   []loggedQuery
	logged       []loggedQuery
	statementErr error
}

var _ Connection = (*fakeConnection)(nil)

func newFakeConnection(pretend bool) *fakeConnection {
	return &fakeConnection{pretend: pretend, grammar: NewAQLGrammar()}
}

func (c *fakeConnection) Statement(_ context.Context, query string, bindings map[string]any) error {
	c.statements = append(c.statements, loggedQuery{Query: query, Bindings: bindings})
	return c.statementErr
}

func (c *fakeConnection) Pretending() bool {
	return c.pretend
}

func (c *fakeConnection) LogQuery(query string, bindings map[string]any) {
	c.logged = append(c.logged, loggedQuery{Query: query, Bindings: bindings})
}

func (c *fakeConnection) SchemaGrammar() Grammar {
	return c.grammar
}

type fakeHandler struct {
	calls   []call
	indexes []IndexInfo
	errs    map[string]error
}

var _ CollectionHandler = (*fakeHandler)(nil)

func newFakeHandler() *fakeHandler {
	return &fakeHandler{errs: map[string]error{}}
}

func (h *fakeHandler) record(method string, args ...any) error {
	h.calls = append(h.calls, call{Method: method, Args: args})
	return h.errs[method]
}

func (h *fakeHandler) methods() []string {
	out := make([]string, 0, len(h.calls))
	for _, c := range h.calls {
		out = append(out, c.Method)
	}
	return out
}

func (h *fakeHandler) Create(_ context.Context, collection string, config map[string]any) error {
	return h.record("Create", collection, config)
}

func (h *fakeHandler) Drop(_ context.Context, collection string) error {
	return h.record("Drop", collection)
}

func (h *fakeHandler) DropIfExists(_ context.Context, collection string) error {
	return h.record("DropIfExists", collection)
}

func (h *fakeHandler) Rename(_ context.Context, collection, to string) error {
	return h.record("Rename", collection, to)
}

func (h *fakeHandler) Index(_ context.Context, collection string, kind IndexKind, attributes []string, unique bool, options map[string]any) error {
	return h.record("Index", collection, kind, attributes, unique, options)
}

func (h *fakeHandler) DropIndex(_ context.Context, collection, id string) error {
	return h.record("DropIndex", collection, id)
}

func (h *fakeHandler) Indexes(_ context.Context, collection string) ([]IndexInfo, error) {
	if err := h.record("Indexes", collection); err != nil {
		return nil, err
	}
	return h.indexes, nil
}

func newTestBlueprint(collection string, h CollectionHandler, setup func(b *Blueprint), opts ...BlueprintOption) *Blueprint {
	opts = append([]BlueprintOption{WithLogger(logrusx.NewDiscard())}, opts...)
	return NewBlueprint(collection, h, setup, opts...)
}
