package schema

import (
	"github.com/clinia/arangoschema/errorx"
)

// Statement is a compiled AQL statement with its bind parameters.
type Statement struct {
	Query    string         `json:"query"`
	Bindings map[string]any `json:"bindings"`
}

// CompileFunc turns a command into a statement for collection.
type CompileFunc func(collection string, cmd *Command) (Statement, error)

// Grammar looks up the compiler of a command. A missing compiler is a legal
// answer, Build reports such commands as uncompilable.
type Grammar interface {
	Compiler(name CommandName) (CompileFunc, bool)
}

// AQLGrammar compiles the document rewriting commands into AQL.
type AQLGrammar struct {
	compilers map[CommandName]CompileFunc
}

var _ Grammar = (*AQLGrammar)(nil)

// NewAQLGrammar returns a grammar able to compile dropAttribute,
// renameAttribute and hasAttribute.
func NewAQLGrammar() *AQLGrammar {
	g := &AQLGrammar{compilers: map[CommandName]CompileFunc{}}
	g.Register(CommandDropAttribute, compileDropAttribute)
	g.Register(CommandRenameAttribute, compileRenameAttribute)
	g.Register(CommandHasAttribute, compileHasAttribute)
	return g
}

// Register adds or replaces the compiler of a command.
func (g *AQLGrammar) Register(name CommandName, fn CompileFunc) *AQLGrammar {
	g.compilers[name] = fn
	return g
}

func (g *AQLGrammar) Compiler(name CommandName) (CompileFunc, bool) {
	fn, ok := g.compilers[name]
	return fn, ok
}

func compileDropAttribute(collection string, cmd *Command) (Statement, error) {
	attrs := cmd.Strings(ParamAttributes)
	if len(attrs) == 0 {
		return Statement{}, errorx.InvalidArgumentErrorf("dropAttribute on '%s' requires at least one attribute", collection)
	}

	nulls := make([]any, len(attrs))
	return Statement{
		Query: `FOR doc IN @@collection
	UPDATE doc WITH ZIP(@attributes, @nulls) IN @@collection OPTIONS { keepNull: false }`,
		Bindings: map[string]any{
			"@collection": collection,
			"attributes":  attrs,
			"nulls":       nulls,
		},
	}, nil
}

func compileRenameAttribute(collection string, cmd *Command) (Statement, error) {
	from, to := cmd.String(ParamFrom), cmd.String(ParamTo)
	if from == "" || to == "" {
		return Statement{}, errorx.InvalidArgumentErrorf("renameAttribute on '%s' requires both a source and a target attribute", collection)
	}
	if from == to {
		return Statement{}, errorx.InvalidArgumentErrorf("renameAttribute on '%s' cannot rename '%s' to itself", collection, from)
	}

	return Statement{
		Query: `FOR doc IN @@collection
	FILTER HAS(doc, @from)
	UPDATE doc WITH { [@from]: null, [@to]: doc[@from] } IN @@collection OPTIONS { keepNull: false }`,
		Bindings: map[string]any{
			"@collection": collection,
			"from":        from,
			"to":          to,
		},
	}, nil
}

func compileHasAttribute(collection string, cmd *Command) (Statement, error) {
	attrs := cmd.Strings(ParamAttribute)
	if len(attrs) == 0 {
		return Statement{}, errorx.InvalidArgumentErrorf("hasAttribute on '%s' requires at least one attribute", collection)
	}

	return Statement{
		Query: `FOR doc IN @@collection
	FILTER @attributes ALL IN ATTRIBUTES(doc)
	LIMIT 1
	RETURN true`,
		Bindings: map[string]any{
			"@collection": collection,
			"attributes":  attrs,
		},
	}, nil
}
