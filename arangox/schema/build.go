package schema

import (
	"context"
	"errors"

	"github.com/clinia/arangoschema/errorx"
	"github.com/clinia/arangoschema/logrusx"
	"github.com/clinia/arangoschema/tracex"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrUncompilable is wrapped by the error returned when an AQL command has
// no compiler in the grammar.
var ErrUncompilable = errors.New("command has no compiler")

type Outcome int

const (
	// OutcomeExecuted means the backend was called.
	OutcomeExecuted Outcome = iota
	// OutcomePretended means the command was only logged.
	OutcomePretended
	// OutcomeNoOp means the executor had nothing to do.
	OutcomeNoOp
	// OutcomeDropped means no executor handles the command.
	OutcomeDropped
	// OutcomeUncompilable means the grammar has no compiler for the command.
	OutcomeUncompilable
	// OutcomeFailed means the executor returned an error.
	OutcomeFailed
)

var outcomeNames = map[Outcome]string{
	OutcomeExecuted:     "executed",
	OutcomePretended:    "pretended",
	OutcomeNoOp:         "noop",
	OutcomeDropped:      "dropped",
	OutcomeUncompilable: "uncompilable",
	OutcomeFailed:       "failed",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// Result reports how one command was handled by Build.
type Result struct {
	Command *Command
	Outcome Outcome
	// Statement is set for compiled AQL commands.
	Statement *Statement
}

// Execution is what an executor gets to run a command.
type Execution struct {
	Conn      Connection
	Client    CollectionHandler
	Blueprint *Blueprint
	Statement *Statement
	Logger    *logrusx.Logger
}

// Collection returns the prefixed collection name.
func (x *Execution) Collection() string {
	return x.Blueprint.Collection()
}

// Pretend logs the explanation of cmd instead of running it.
func (x *Execution) Pretend(cmd *Command) Outcome {
	x.Conn.LogQuery("/* "+cmd.Explanation()+" */\n", map[string]any{})
	return OutcomePretended
}

// Build executes the declared commands in declaration order. AQL commands
// are compiled with grammar first, or with the connection schema grammar
// when grammar is nil.
//
// Build stops at the first failing command and returns its error as is,
// along with the results of the commands handled so far. Commands already
// executed are not rolled back.
func (b *Blueprint) Build(ctx context.Context, conn Connection, grammar Grammar) ([]Result, error) {
	if b.state == stateBuilt {
		return nil, errorx.FailedPreconditionErrorf("the blueprint of collection '%s' was already built", b.Collection())
	}
	b.state = stateBuilt

	if grammar == nil {
		grammar = conn.SchemaGrammar()
	}

	ctx, span, l := tracex.Instrument(ctx, b.l, b.tracer, blueprintComponentName, "Build",
		trace.WithAttributes(
			attribute.String("collection", b.Collection()),
			attribute.Int("commands", len(b.commands)),
			attribute.Bool("pretend", conn.Pretending()),
		),
	)
	defer span.End()

	results := make([]Result, 0, len(b.commands))
	for _, cmd := range b.commands {
		res, err := b.run(ctx, conn, grammar, cmd)
		results = append(results, res)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			l.WithError(err).Errorf("command '%s' failed, %d remaining command(s) were not executed", cmd.Name(), len(b.commands)-len(results))
			return results, err
		}
	}

	return results, nil
}

func (b *Blueprint) run(ctx context.Context, conn Connection, grammar Grammar, cmd *Command) (res Result, err error) {
	ctx, span, l := tracex.Instrument(ctx, b.l, b.tracer, blueprintComponentName, string(cmd.Name()),
		trace.WithAttributes(
			attribute.String("command.name", string(cmd.Name())),
			attribute.String("command.handler", string(cmd.Handler())),
		),
	)
	defer func() {
		span.SetAttributes(attribute.String("command.outcome", res.Outcome.String()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	res = Result{Command: cmd}
	x := &Execution{
		Conn:      conn,
		Client:    b.client,
		Blueprint: b,
		Logger:    l,
	}

	if cmd.Handler() == HandlerAQL {
		stmt, err := b.compile(grammar, cmd)
		if err != nil {
			res.Outcome = OutcomeFailed
			if errors.Is(err, ErrUncompilable) {
				res.Outcome = OutcomeUncompilable
			}
			return res, err
		}
		res.Statement = &stmt
		x.Statement = &stmt
	}

	exec, ok := b.router.Route(cmd)
	if !ok {
		l.Debugf("no executor handles command '%s', dropping it", cmd.Name())
		res.Outcome = OutcomeDropped
		return res, nil
	}

	res.Outcome, err = exec(ctx, x, cmd)
	if err != nil {
		if !errors.Is(err, ErrUncompilable) {
			res.Outcome = OutcomeFailed
		}
		return res, err
	}
	l.Debugf("command '%s' %s", cmd.Name(), res.Outcome)

	return res, nil
}

func (b *Blueprint) compile(grammar Grammar, cmd *Command) (Statement, error) {
	var (
		fn CompileFunc
		ok bool
	)
	if grammar != nil {
		fn, ok = grammar.Compiler(cmd.Name())
	}
	if !ok || fn == nil {
		return Statement{}, errorx.FailedPreconditionErrorf("command '%s' on collection '%s' cannot be compiled: the grammar has no compiler for it", cmd.Name(), b.Collection()).Wrap(ErrUncompilable)
	}

	return fn(b.Collection(), cmd)
}
