package schema

import (
	"fmt"

	"github.com/spf13/cast"
)

// Column declarations of relational schema builders. Calls to these are
// ignored, but their first argument is kept as a pending attribute.
var columnMethods = map[string]struct{}{}

var autoIncrementMethods = map[string]struct{}{
	"increments":    {},
	"autoIncrement": {},
}

func init() {
	for _, m := range []string{
		"bigIncrements", "bigInteger", "binary", "boolean", "char", "date", "dateTime", "dateTimeTz", "decimal",
		"double", "enum", "float", "geometry", "geometryCollection", "increments", "integer", "ipAddress", "json",
		"jsonb", "lineString", "longText", "macAddress", "mediumIncrements", "mediumInteger", "mediumText",
		"multiLineString", "multiPoint", "multiPolygon", "nullableTimestamps", "point",
		"polygon", "smallIncrements", "smallInteger", "string", "text", "time",
		"timeTz", "timestamp", "timestampTz", "tinyIncrements", "tinyInteger",
		"unsignedBigInteger", "unsignedDecimal", "unsignedInteger", "unsignedMediumInteger", "unsignedSmallInteger",
		"unsignedTinyInteger", "uuid", "year",
	} {
		columnMethods[m] = struct{}{}
	}
}

// IsColumnMethod reports whether method is a known column declaration.
func IsColumnMethod(method string) bool {
	_, ok := columnMethods[method]
	return ok
}

// IsAutoIncrementMethod reports whether method marks keys as auto-incrementing.
func IsAutoIncrementMethod(method string) bool {
	_, ok := autoIncrementMethods[method]
	return ok
}

// Unsupported absorbs any declaration that has no meaning for a schemaless
// collection (column types, timestamps, ...). It never fails and always
// records exactly one ignore command.
func (b *Blueprint) Unsupported(method string, args ...any) *Blueprint {
	if IsColumnMethod(method) && len(args) > 0 {
		if attr, err := cast.ToStringE(args[0]); err == nil && attr != "" {
			b.attributes = append(b.attributes, attr)
		}
	}

	if IsAutoIncrementMethod(method) {
		b.autoIncrement = true
	}

	b.addCommand(CommandIgnore, HandlerNone, Parameters{
		ParamMethod:      method,
		ParamArgs:        append([]any(nil), args...),
		ParamExplanation: fmt.Sprintf("'%s' is ignored; the schema blueprint doesn't support it.", method),
	})

	return b
}
