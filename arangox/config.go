package arangox

import (
	"context"
	_ "embed"

	"github.com/clinia/arangoschema/configx"
	"github.com/clinia/arangoschema/otelx"
	"github.com/spf13/pflag"
)

//go:embed config.schema.json
var ConfigSchema []byte

const EnvPrefix = "ARANGO_"

type Config struct {
	Endpoints            []string `json:"endpoints"`
	Database             string   `json:"database"`
	Username             string   `json:"username"`
	Password             string   `json:"password"`
	Pretend              bool     `json:"pretend"`
	Prefix               string   `json:"prefix"`
	MigrationsCollection string   `json:"migrations-collection"`
	Package              string   `json:"package"`

	Tracing otelx.Config `json:"tracing"`
}

// RegisterFlags adds the configuration flags to flags. Defaults come from
// the configuration schema.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringSlice("endpoints", nil, "ArangoDB endpoints")
	flags.String("database", "", "database holding the collections to migrate")
	flags.String("username", "", "ArangoDB user")
	flags.String("password", "", "ArangoDB password")
	flags.Bool("pretend", false, "log the schema statements instead of executing them")
	flags.String("prefix", "", "prefix of the migrated collections")
	flags.String("migrations-collection", "", "collection storing the applied migration versions")
	flags.String("package", "", "package the migration versions are recorded for")
	flags.String("tracing.provider", "", "span exporter, one of [otel, stdout]")
}

// LoadConfig loads the configuration from the schema defaults, the given
// sources and the ARANGO_ prefixed environment.
func LoadConfig(ctx context.Context, opts ...configx.OptionModifier) (*Config, error) {
	p, err := configx.New(ctx, ConfigSchema, append([]configx.OptionModifier{configx.WithEnvPrefix(EnvPrefix)}, opts...)...)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := p.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MigratorOptions returns the options of a migrator running ms through b
// for the configured package, versions collection and pretend mode.
func (c *Config) MigratorOptions(b *Builder, ms Migrations) NewMigratorOptions {
	return NewMigratorOptions{
		Builder:    b,
		Package:    c.Package,
		Migrations: ms,
		DryRun:     c.Pretend,
		Logger:     b.l,
		Collection: c.MigrationsCollection,
	}
}
