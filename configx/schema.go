package configx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ory/jsonschema/v3"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

func compileSchema(ctx context.Context, schema []byte) (*jsonschema.Schema, error) {
	id := gjson.GetBytes(schema, "$id").String()
	if id == "" {
		id = fmt.Sprintf("%s.json", uuid.Must(uuid.NewRandom()).String())
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(id, bytes.NewBuffer(schema)); err != nil {
		return nil, errors.WithStack(err)
	}

	s, err := compiler.Compile(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return s, nil
}

// schemaDefaults collects the default values of the schema properties,
// keyed by their dotted path.
func schemaDefaults(schema []byte) map[string]interface{} {
	out := map[string]interface{}{}
	collectDefaults(gjson.GetBytes(schema, "properties"), "", out)
	return out
}

func collectDefaults(properties gjson.Result, prefix string, out map[string]interface{}) {
	properties.ForEach(func(key, value gjson.Result) bool {
		path := prefix + key.String()
		if def := value.Get("default"); def.Exists() {
			out[path] = def.Value()
		}
		if nested := value.Get("properties"); nested.IsObject() {
			collectDefaults(nested, path+".", out)
		}
		return true
	})
}

// schemaType returns the JSON type the schema declares for the dotted key.
func schemaType(schema []byte, key string) string {
	parts := strings.Split(key, ".")
	for i, p := range parts {
		parts[i] = "properties." + p
	}

	return gjson.GetBytes(schema, strings.Join(parts, ".")+".type").String()
}
