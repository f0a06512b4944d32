package arangox

import (
	"context"
	"sort"
)

// MigrationFunc declares the schema changes of one migration step through
// the schema builder.
type MigrationFunc func(ctx context.Context, s *Builder) error

// Migration represents single database migration.
// Migration contains:
//
// - version: migration version, must be unique in migration list
//
// - description: text description of migration
//
// - up: callback which will be called in "up" migration process
//
// - down: callback which will be called in "down" migration process for reverting changes
type Migration struct {
	Version     uint
	Description string
	Up          MigrationFunc
	Down        MigrationFunc
}

type Migrations []Migration

func (ms Migrations) Sort() {
	sort.Slice(ms, func(i, j int) bool {
		return ms[i].Version < ms[j].Version
	})
}

func (ms Migrations) HasVersion(version uint) bool {
	for _, m := range ms {
		if m.Version == version {
			return true
		}
	}
	return false
}
