package schema

import (
	"context"

	"github.com/clinia/arangoschema/errorx"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// collectionOperation runs a collection command that needs no bespoke
// executor.
type collectionOperation func(ctx context.Context, client CollectionHandler, collection string, cmd *Command) error

var collectionOperations = map[CommandName]collectionOperation{
	CommandDrop: func(ctx context.Context, client CollectionHandler, collection string, _ *Command) error {
		return client.Drop(ctx, collection)
	},
	CommandDropIfExists: func(ctx context.Context, client CollectionHandler, collection string, _ *Command) error {
		return client.DropIfExists(ctx, collection)
	},
}

func executeCollectionCommand(ctx context.Context, x *Execution, cmd *Command) (Outcome, error) {
	if x.Conn.Pretending() {
		return x.Pretend(cmd), nil
	}

	op, ok := collectionOperations[cmd.Name()]
	if !ok {
		return OutcomeNoOp, nil
	}

	if err := op(ctx, x.Client, x.Collection(), cmd); err != nil {
		return OutcomeFailed, err
	}

	return OutcomeExecuted, nil
}

func executeCreateCommand(ctx context.Context, x *Execution, cmd *Command) (Outcome, error) {
	if x.Conn.Pretending() {
		return x.Pretend(cmd), nil
	}

	config := cmd.Map(ParamConfig)
	if x.Blueprint.IsTemporary() {
		config["isVolatile"] = true
	}
	if x.Blueprint.IsAutoIncrement() {
		keyOptions := map[string]any{}
		if raw, ok := config["keyOptions"]; ok && raw != nil {
			var err error
			if keyOptions, err = cast.ToStringMapE(raw); err != nil {
				return OutcomeFailed, errorx.InvalidArgumentErrorf("keyOptions of collection '%s' must be a map, got %T", x.Collection(), raw).Wrap(err)
			}
		}
		keyOptions["autoincrement"] = true
		config["keyOptions"] = keyOptions
	}

	if err := x.Client.Create(ctx, x.Collection(), config); err != nil {
		return OutcomeFailed, err
	}

	return OutcomeExecuted, nil
}

func executeRenameCommand(ctx context.Context, x *Execution, cmd *Command) (Outcome, error) {
	if x.Conn.Pretending() {
		return x.Pretend(cmd), nil
	}

	to := cmd.String(ParamTo)
	if to == "" {
		return OutcomeFailed, errorx.InvalidArgumentErrorf("cannot rename collection '%s' to an empty name", x.Collection())
	}

	if err := x.Client.Rename(ctx, x.Collection(), to); err != nil {
		return OutcomeFailed, err
	}

	return OutcomeExecuted, nil
}

func executeAQLCommand(ctx context.Context, x *Execution, cmd *Command) (Outcome, error) {
	if x.Statement == nil {
		return OutcomeUncompilable, errorx.FailedPreconditionErrorf("command '%s' on collection '%s' has no compiled statement", cmd.Name(), x.Collection()).Wrap(ErrUncompilable)
	}

	if x.Conn.Pretending() {
		x.Conn.LogQuery(x.Statement.Query, x.Statement.Bindings)
		return OutcomePretended, nil
	}

	if err := x.Conn.Statement(ctx, x.Statement.Query, x.Statement.Bindings); err != nil {
		return OutcomeFailed, err
	}

	return OutcomeExecuted, nil
}

func executeIndexCommand(ctx context.Context, x *Execution, cmd *Command) (Outcome, error) {
	if x.Conn.Pretending() {
		return x.Pretend(cmd), nil
	}

	err := x.Client.Index(ctx, x.Collection(), cmd.IndexKind(), cmd.Strings(ParamAttributes), cmd.Bool(ParamUnique), cmd.Map(ParamIndexOptions))
	if err != nil {
		return OutcomeFailed, err
	}

	return OutcomeExecuted, nil
}

// executeDropIndexCommand drops every existing index of the requested kind
// whose fields are the requested attributes, in any order.
func executeDropIndexCommand(ctx context.Context, x *Execution, cmd *Command) (Outcome, error) {
	if x.Conn.Pretending() {
		return x.Pretend(cmd), nil
	}

	kind := cmd.IndexKind()
	attributes := cmd.Strings(ParamAttributes)

	indexes, err := x.Client.Indexes(ctx, x.Collection())
	if err != nil {
		return OutcomeFailed, err
	}

	dropped := 0
	for _, idx := range indexes {
		if idx.Type != string(kind) || !sameFields(idx.Fields, attributes) {
			continue
		}

		if err := x.Client.DropIndex(ctx, x.Collection(), idx.ID); err != nil {
			return OutcomeFailed, err
		}
		dropped++
	}

	if dropped == 0 {
		x.Logger.Debugf("no '%s' index on %v to drop", kind, attributes)
		return OutcomeNoOp, nil
	}

	return OutcomeExecuted, nil
}

func sameFields(a, b []string) bool {
	onlyA, onlyB := lo.Difference(a, b)
	return len(onlyA) == 0 && len(onlyB) == 0
}

// executeIgnoreCommand only gives feedback in pretend mode.
func executeIgnoreCommand(_ context.Context, x *Execution, cmd *Command) (Outcome, error) {
	if x.Conn.Pretending() {
		return x.Pretend(cmd), nil
	}
	return OutcomeNoOp, nil
}
