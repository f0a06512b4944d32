package schema

import (
	"context"
	"maps"
)

// Executor runs one command. It returns how the command was handled.
type Executor func(ctx context.Context, x *Execution, cmd *Command) (Outcome, error)

// Router maps commands to executors. A command is routed to the executor
// registered for its name, then to the one registered for its handler
// kind. Commands matching neither are dropped.
type Router struct {
	named map[CommandName]Executor
	kinds map[HandlerKind]Executor
}

var defaultRouter = NewRouter().
	Handle(CommandCreate, executeCreateCommand).
	Handle(CommandRename, executeRenameCommand).
	Handle(CommandIndex, executeIndexCommand).
	Handle(CommandDropIndex, executeDropIndexCommand).
	Handle(CommandIgnore, executeIgnoreCommand).
	HandleKind(HandlerCollection, executeCollectionCommand).
	HandleKind(HandlerAQL, executeAQLCommand)

func NewRouter() *Router {
	return &Router{
		named: map[CommandName]Executor{},
		kinds: map[HandlerKind]Executor{},
	}
}

// DefaultRouter returns a copy of the built-in routing table, safe to extend.
func DefaultRouter() *Router {
	return defaultRouter.Clone()
}

func (r *Router) Clone() *Router {
	return &Router{
		named: maps.Clone(r.named),
		kinds: maps.Clone(r.kinds),
	}
}

func (r *Router) Handle(name CommandName, exec Executor) *Router {
	r.named[name] = exec
	return r
}

func (r *Router) HandleKind(kind HandlerKind, exec Executor) *Router {
	r.kinds[kind] = exec
	return r
}

func (r *Router) Route(cmd *Command) (Executor, bool) {
	if exec, ok := r.named[cmd.Name()]; ok {
		return exec, true
	}
	if exec, ok := r.kinds[cmd.Handler()]; ok {
		return exec, true
	}
	return nil, false
}
