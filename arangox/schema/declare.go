package schema

import (
	"fmt"
	"strings"
)

// Create declares the creation of the collection. The temporary and
// auto-increment flags are merged into config when the command executes.
func (b *Blueprint) Create(config map[string]any) *Command {
	if config == nil {
		config = map[string]any{}
	}
	return b.addCommand(CommandCreate, HandlerCollection, Parameters{
		ParamConfig:      config,
		ParamExplanation: fmt.Sprintf("Create '%s' collection.", b.Collection()),
	})
}

func (b *Blueprint) Drop() *Command {
	return b.addCommand(CommandDrop, HandlerCollection, Parameters{
		ParamExplanation: fmt.Sprintf("Drop the '%s' collection.", b.Collection()),
	})
}

func (b *Blueprint) DropIfExists() *Command {
	return b.addCommand(CommandDropIfExists, HandlerCollection, Parameters{
		ParamExplanation: fmt.Sprintf("Drop the '%s' collection if it exists.", b.Collection()),
	})
}

// Rename declares renaming the collection to `to`. The new name is used as
// given, without prefix.
func (b *Blueprint) Rename(to string) *Command {
	return b.addCommand(CommandRename, HandlerNone, Parameters{
		ParamTo:          to,
		ParamExplanation: fmt.Sprintf("Rename the '%s' collection to '%s'.", b.Collection(), to),
	})
}

// DropAttribute removes the given attributes from every document.
func (b *Blueprint) DropAttribute(attributes ...string) *Command {
	attrs := normalizeAttributes(attributes)
	return b.addCommand(CommandDropAttribute, HandlerAQL, Parameters{
		ParamAttributes:  attrs,
		ParamExplanation: fmt.Sprintf("Drop the following attribute(s): %s.", strings.Join(attrs, ",")),
	})
}

// RenameAttribute moves the value of `from` to `to` in every document having it.
func (b *Blueprint) RenameAttribute(from, to string) *Command {
	return b.addCommand(CommandRenameAttribute, HandlerAQL, Parameters{
		ParamFrom:        from,
		ParamTo:          to,
		ParamExplanation: fmt.Sprintf("Rename the attribute '%s' to '%s'.", from, to),
	})
}

// HasAttribute checks whether any document has all the given attributes.
// The statement runs like any other AQL command but its answer is discarded:
// the command only reports whether the query executed, never the boolean the
// query returns. Query the collection directly when the answer is needed.
func (b *Blueprint) HasAttribute(attributes ...string) *Command {
	attrs := normalizeAttributes(attributes)
	return b.addCommand(CommandHasAttribute, HandlerAQL, Parameters{
		ParamAttribute:   attrs,
		ParamExplanation: fmt.Sprintf("Checking if any document within the collection has the '%s' attribute(s).", strings.Join(attrs, ", ")),
	})
}
