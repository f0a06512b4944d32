package schema

import (
	"maps"

	"github.com/spf13/cast"
)

// CommandName identifies the structural intent of a Command.
type CommandName string

const (
	CommandCreate          CommandName = "create"
	CommandDrop            CommandName = "drop"
	CommandDropIfExists    CommandName = "dropIfExists"
	CommandRename          CommandName = "rename"
	CommandIndex           CommandName = "index"
	CommandDropIndex       CommandName = "dropIndex"
	CommandDropAttribute   CommandName = "dropAttribute"
	CommandRenameAttribute CommandName = "renameAttribute"
	CommandHasAttribute    CommandName = "hasAttribute"
	CommandIgnore          CommandName = "ignore"
)

// HandlerKind is the executor family a command falls back to when no
// executor is registered for its name.
type HandlerKind string

const (
	HandlerNone       HandlerKind = ""
	HandlerCollection HandlerKind = "collection"
	HandlerAQL        HandlerKind = "aql"
)

// Parameters is the free-form bag carried by a command.
type Parameters map[string]any

// Well known parameter keys.
const (
	ParamConfig       = "config"
	ParamExplanation  = "explanation"
	ParamAttributes   = "attributes"
	ParamAttribute    = "attribute"
	ParamFrom         = "from"
	ParamTo           = "to"
	ParamType         = "type"
	ParamUnique       = "unique"
	ParamIndexOptions = "indexOptions"
	ParamMethod       = "method"
	ParamArgs         = "args"
)

// Command is a read-only record of one declared intent. It is created by
// the Blueprint and never modified afterwards, executors only read it.
type Command struct {
	name    CommandName
	handler HandlerKind
	params  Parameters
}

func newCommand(name CommandName, handler HandlerKind, params Parameters) *Command {
	return &Command{
		name:    name,
		handler: handler,
		params:  cloneParameters(params),
	}
}

func (c *Command) Name() CommandName {
	return c.name
}

func (c *Command) Handler() HandlerKind {
	return c.handler
}

// Explanation is the human readable line logged in pretend mode.
func (c *Command) Explanation() string {
	return c.String(ParamExplanation)
}

func (c *Command) Get(key string) (any, bool) {
	v, ok := c.params[key]
	return v, ok
}

func (c *Command) Has(key string) bool {
	_, ok := c.params[key]
	return ok
}

func (c *Command) String(key string) string {
	return cast.ToString(c.params[key])
}

func (c *Command) Bool(key string) bool {
	return cast.ToBool(c.params[key])
}

// Strings returns a copy of a list parameter. A single string is returned
// as a one element list.
func (c *Command) Strings(key string) []string {
	return normalizeAttributes(c.params[key])
}

// Map returns a copy of a map parameter, never nil.
func (c *Command) Map(key string) map[string]any {
	m := cast.ToStringMap(c.params[key])
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// Params returns a copy of the whole parameter bag.
func (c *Command) Params() Parameters {
	return cloneParameters(c.params)
}

func cloneParameters(p Parameters) Parameters {
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := maps.Clone(t)
		for k, e := range out {
			out[k] = cloneValue(e)
		}
		return out
	case Parameters:
		return map[string]any(cloneParameters(t))
	default:
		return v
	}
}
