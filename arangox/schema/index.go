package schema

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// IndexKind is an index algorithm supported by the native index API.
type IndexKind string

const (
	IndexHash       IndexKind = "hash"
	IndexSkiplist   IndexKind = "skiplist"
	IndexPersistent IndexKind = "persistent"
	IndexGeo        IndexKind = "geo"
	IndexFulltext   IndexKind = "fulltext"
	IndexTTL        IndexKind = "ttl"

	DefaultIndexKind = IndexSkiplist
)

var indexAlgorithms = map[string]IndexKind{
	"HASH":  IndexHash,
	"BTREE": IndexSkiplist,
	"RTREE": IndexGeo,
	"TTL":   IndexTTL,
}

func (k IndexKind) String() string {
	return string(k)
}

// MapIndexType resolves a relational index algorithm name to an index
// kind, case-insensitively. Unknown or empty names map to DefaultIndexKind.
func MapIndexType(algorithm string) IndexKind {
	if kind, ok := indexAlgorithms[strings.ToUpper(strings.TrimSpace(algorithm))]; ok {
		return kind
	}
	return DefaultIndexKind
}

// Index declares an index. Nil attributes, including a nil slice, target the
// last pending attribute. A single string is a one attribute index.
func (b *Blueprint) Index(attributes any, algorithm string) *Command {
	return b.indexCommand(MapIndexType(algorithm), attributes, nil)
}

// Unique declares a unique index.
func (b *Blueprint) Unique(attributes any, algorithm string) *Command {
	return b.indexCommand(MapIndexType(algorithm), attributes, Parameters{ParamUnique: true})
}

func (b *Blueprint) HashIndex(attributes any, options Parameters) *Command {
	return b.indexCommand(IndexHash, attributes, options)
}

func (b *Blueprint) FulltextIndex(attributes any, options Parameters) *Command {
	return b.indexCommand(IndexFulltext, attributes, options)
}

func (b *Blueprint) GeoIndex(attributes any, options Parameters) *Command {
	return b.indexCommand(IndexGeo, attributes, options)
}

// SpatialIndex is an alias of GeoIndex.
func (b *Blueprint) SpatialIndex(attributes any) *Command {
	return b.GeoIndex(attributes, nil)
}

func (b *Blueprint) PersistentIndex(attributes any, options Parameters) *Command {
	return b.indexCommand(IndexPersistent, attributes, options)
}

func (b *Blueprint) SkiplistIndex(attributes any, options Parameters) *Command {
	return b.indexCommand(IndexSkiplist, attributes, options)
}

// TTLIndex declares a time-to-live index, the "expireAfter" option sets
// the lifetime in seconds.
func (b *Blueprint) TTLIndex(attributes any, options Parameters) *Command {
	return b.indexCommand(IndexTTL, attributes, options)
}

func (b *Blueprint) indexCommand(kind IndexKind, attributes any, options Parameters) *Command {
	if kind == "" {
		kind = DefaultIndexKind
	}

	var attrs []string
	if omittedAttributes(attributes) {
		if last, ok := b.lastAttribute(); ok {
			attrs = []string{last}
		}
	} else {
		attrs = normalizeAttributes(attributes)
	}

	indexOptions := cloneParameters(options)
	unique := false
	if v, ok := indexOptions[ParamUnique]; ok {
		unique = cast.ToBool(v)
		delete(indexOptions, ParamUnique)
	}

	return b.addCommand(CommandIndex, HandlerCollection, Parameters{
		ParamType:         kind,
		ParamAttributes:   attrs,
		ParamUnique:       unique,
		ParamIndexOptions: map[string]any(indexOptions),
		ParamExplanation:  fmt.Sprintf("Create '%s' index on [%s].", kind, strings.Join(attrs, ", ")),
	})
}

// DropIndex declares the removal of every index of the given kind covering
// exactly the given attributes. Matching happens at execution time.
func (b *Blueprint) DropIndex(attributes any, kind IndexKind) *Command {
	attrs := normalizeAttributes(attributes)
	return b.addCommand(CommandDropIndex, HandlerCollection, Parameters{
		ParamAttributes:  attrs,
		ParamType:        kind,
		ParamExplanation: fmt.Sprintf("Drop the '%s' index on [%s].", kind, strings.Join(attrs, ", ")),
	})
}

// omittedAttributes reports whether attributes is nil or a nil slice.
func omittedAttributes(attributes any) bool {
	switch t := attributes.(type) {
	case nil:
		return true
	case []string:
		return t == nil
	case []any:
		return t == nil
	}
	return false
}

// normalizeAttributes turns a string or a list into an ordered set of
// attribute names.
func normalizeAttributes(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case []string:
		return lo.Uniq(t)
	default:
		return lo.Uniq(cast.ToStringSlice(v))
	}
}

// IndexKind returns the index kind carried by an index or dropIndex command.
func (c *Command) IndexKind() IndexKind {
	switch t := c.params[ParamType].(type) {
	case IndexKind:
		return t
	case string:
		return IndexKind(t)
	default:
		return ""
	}
}
