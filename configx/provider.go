package configx

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/clinia/arangoschema/errorx"
	"github.com/clinia/arangoschema/logrusx"
	"github.com/knadh/koanf"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/ory/jsonschema/v3"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

const delimiter = "."

type tuple struct {
	Key   string
	Value interface{}
}

// Provider is a koanf instance loaded from, in increasing precedence: the
// schema defaults, the base values, the config files, the user providers,
// the environment, the command line flags and the forced values.
type Provider struct {
	*koanf.Koanf

	schema            []byte
	files             []string
	flags             *pflag.FlagSet
	envPrefix         string
	l                 *logrusx.Logger
	skipValidation    bool
	disableEnvLoading bool
	baseValues        []tuple
	forcedValues      []tuple
	userProviders     []koanf.Provider
}

// New loads the configuration described by the JSON schema and validates it.
func New(ctx context.Context, schema []byte, modifiers ...OptionModifier) (*Provider, error) {
	p := &Provider{schema: schema}
	for _, m := range modifiers {
		m(p)
	}
	if p.l == nil {
		p.l = logrusx.New("configx", "")
	}

	k, err := p.load()
	if err != nil {
		return nil, err
	}
	p.Koanf = k

	if !p.skipValidation {
		if err := p.validate(ctx); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Provider) load() (*koanf.Koanf, error) {
	k := koanf.New(delimiter)

	if err := k.Load(confmap.Provider(schemaDefaults(p.schema), delimiter), nil); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Load(confmap.Provider(tuplesToMap(p.baseValues), delimiter), nil); err != nil {
		return nil, errors.WithStack(err)
	}

	for _, f := range p.files {
		parser, err := parserFor(f)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(f), parser); err != nil {
			return nil, errorx.InvalidArgumentErrorf("unable to load config file %s: %v", f, err).Wrap(err)
		}
		p.l.Debugf("loaded config file %s", f)
	}

	for _, up := range p.userProviders {
		if err := k.Load(up, nil); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if !p.disableEnvLoading && p.envPrefix != "" {
		if err := k.Load(env.ProviderWithValue(p.envPrefix, delimiter, p.envValue), nil); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if p.flags != nil {
		if err := k.Load(posflag.Provider(p.flags, delimiter, k), nil); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if err := k.Load(confmap.Provider(tuplesToMap(p.forcedValues), delimiter), nil); err != nil {
		return nil, errors.WithStack(err)
	}

	return k, nil
}

// envValue maps ARANGO_MIGRATIONS_COLLECTION to migrations-collection and
// converts the raw value to the type the schema expects.
func (p *Provider) envValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, p.envPrefix))
	key = strings.ReplaceAll(key, "__", delimiter)
	key = strings.ReplaceAll(key, "_", "-")

	switch schemaType(p.schema, key) {
	case "array":
		out := []string{}
		for _, s := range strings.Split(value, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return key, out
	case "boolean":
		return key, cast.ToBool(value)
	case "integer":
		return key, cast.ToInt(value)
	case "number":
		return key, cast.ToFloat64(value)
	}

	return key, value
}

func (p *Provider) validate(ctx context.Context) error {
	s, err := compileSchema(ctx, p.schema)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(p.Koanf.Raw())
	if err != nil {
		return errors.WithStack(err)
	}

	if err := s.Validate(bytes.NewReader(raw)); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			p.l.WithField("location", verr.InstancePtr).Errorf("the configuration is invalid: %s", verr.Message)
		}
		return errorx.InvalidArgumentErrorf("invalid configuration: %v", err).Wrap(err)
	}

	return nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return kjson.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}

	return nil, errorx.InvalidArgumentErrorf("unsupported config file format %s", path)
}

func tuplesToMap(tuples []tuple) map[string]interface{} {
	out := make(map[string]interface{}, len(tuples))
	for _, t := range tuples {
		out[t.Key] = t.Value
	}
	return out
}

// Unmarshal decodes the configuration under path into out, using json tags.
func (p *Provider) Unmarshal(path string, out interface{}) error {
	return errors.WithStack(p.Koanf.UnmarshalWithConf(path, out, koanf.UnmarshalConf{Tag: "json"}))
}
