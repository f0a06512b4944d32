package arangox

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	arangoDriver "github.com/arangodb/go-driver"
	"github.com/clinia/arangoschema/errorx"
	"github.com/clinia/arangoschema/logrusx"
	"github.com/samber/lo"
)

type versionRecord struct {
	Version     uint      `json:"version"`
	Description string    `json:"description,omitempty"`
	Package     string    `json:"package"`
	Timestamp   time.Time `json:"timestamp"`
}

const DefaultMigrationsCollection = "migrations"

// AllAvailable used in "Up" or "Down" methods to run all available migrations.
const AllAvailable = -1

// Migrator performs versioned schema migrations in the database of its builder.
// Each applied "up" migration adds a document to a dedicated collection holding
// the migration version, package, description and timestamp.
// The current version of a package is the biggest version recorded for it.
//
// In dry-run mode, migrations run against a pretending connection: their
// statements are logged and nothing is recorded.
type Migrator struct {
	builder              *Builder
	pkg                  string
	dryRun               bool
	l                    *logrusx.Logger
	migrations           Migrations
	migrationsCollection string
}

type NewMigratorOptions struct {
	Builder    *Builder
	Package    string
	Migrations Migrations
	DryRun     bool
	Logger     *logrusx.Logger
	// Collection storing the version records, DefaultMigrationsCollection when empty.
	Collection string
}

func NewMigrator(in NewMigratorOptions) *Migrator {
	internalMigrations := make(Migrations, len(in.Migrations))
	copy(internalMigrations, in.Migrations)
	vers := map[uint]bool{}
	for _, m := range in.Migrations {
		if vers[m.Version] {
			panic(fmt.Sprintf("duplicated migration version %v", m.Version))
		}
		vers[m.Version] = true
	}

	l := in.Logger
	if l == nil {
		l = logrusx.New("migrator", "")
	}

	collection := in.Collection
	if collection == "" {
		collection = DefaultMigrationsCollection
	}

	return &Migrator{
		builder:              in.Builder,
		pkg:                  in.Package,
		dryRun:               in.DryRun,
		l:                    l.WithField("package", in.Package),
		migrations:           internalMigrations,
		migrationsCollection: collection,
	}
}

// SetMigrationsCollection replaces name of collection for storing migration information.
// By default it is "migrations".
func (m *Migrator) SetMigrationsCollection(name string) {
	m.migrationsCollection = name
}

func (m *Migrator) db() arangoDriver.Database {
	return m.builder.Connection().Database()
}

func (m *Migrator) createCollectionIfNotExist(ctx context.Context, name string) error {
	exist, err := m.db().CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if exist {
		return nil
	} else if m.dryRun {
		err := errorx.FailedPreconditionErrorf("collection %s does not exist", name)
		m.l.WithError(err).Errorf("when dry-run mode is enabled, we can't create the missing collection")
		return err
	}

	col, err := m.db().CreateCollection(ctx, name, nil)
	if err != nil {
		return err
	}

	_, _, err = col.EnsurePersistentIndex(ctx, []string{"version", "package"}, &arangoDriver.EnsurePersistentIndexOptions{
		Unique: true,
	})

	return err
}

// Version returns current database version and comment.
func (m *Migrator) Version(ctx context.Context) (current uint, latest uint, desc string, outErr error) {
	m.migrations.Sort()
	if len(m.migrations) > 0 {
		latest = m.migrations[len(m.migrations)-1].Version
	}
	if err := m.createCollectionIfNotExist(ctx, m.migrationsCollection); err != nil {
		return 0, latest, "", err
	}

	cursor, err := m.db().Query(ctx, `
		FOR m IN @@collection
			FILTER m.package == @pkg
			SORT m.version DESC
			LIMIT 1
			RETURN m
		`, map[string]interface{}{
		"@collection": m.migrationsCollection,
		"pkg":         m.pkg,
	})
	if err != nil {
		return 0, latest, "", err
	}
	defer cursor.Close()

	var rec versionRecord
	_, err = cursor.ReadDocument(ctx, &rec)
	if err != nil {
		if _, ok := err.(arangoDriver.NoMoreDocumentsError); ok {
			return 0, latest, "", nil
		}
		return 0, latest, "", err
	}

	return rec.Version, latest, rec.Description, nil
}

// run applies fn, through a pretending connection in dry-run mode.
func (m *Migrator) run(ctx context.Context, direction string, migration Migration, fn MigrationFunc) error {
	if !m.dryRun {
		return fn(ctx, m.builder)
	}

	queries, err := m.builder.Connection().Pretend(ctx, func(ctx context.Context) error {
		return fn(ctx, m.builder)
	})
	if err != nil {
		return err
	}

	m.l.WithField("statements", len(queries)).Warnf("[dry-run] %s migration version %d (%s) would be applied for package %s", direction, migration.Version, migration.Description, m.pkg)
	return nil
}

// Up performs "up" migrations up to the specified targetVersion.
// If targetVersion<=0 all "up" migrations will be executed (if not executed yet)
// If targetVersion>0 only migrations where version<=targetVersion will be performed (if not executed yet)
func (m *Migrator) Up(ctx context.Context, targetVersion int) error {
	m.migrations.Sort()
	currentVersion, latest, _, err := m.Version(ctx)
	if err != nil {
		return err
	}

	latestInt, err := safeUintToInt(latest)
	if err != nil {
		return err
	}

	var target uint
	if targetVersion <= 0 {
		target = latest
	} else {
		target = uint(lo.Clamp(targetVersion, 0, latestInt))
	}

	col, err := m.db().Collection(ctx, m.migrationsCollection)
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version <= currentVersion || migration.Up == nil {
			continue
		}

		if migration.Version > target {
			break
		}

		if err := m.run(ctx, "up", migration, migration.Up); err != nil {
			return err
		}

		if m.dryRun {
			continue
		}

		rec := versionRecord{
			Version:     migration.Version,
			Package:     m.pkg,
			Timestamp:   time.Now().UTC(),
			Description: migration.Description,
		}

		if _, err := col.CreateDocument(ctx, rec); err != nil {
			return err
		}
	}

	return nil
}

// Down performs "down" migration to bring back migrations to `version`.
// If targetVersion<=0 all "down" migrations will be performed.
// If targetVersion>0, only the down migrations where version>targetVersion will be performed (only if they were applied).
func (m *Migrator) Down(ctx context.Context, targetVersion int) error {
	m.migrations.Sort()
	curVersion, latest, _, err := m.Version(ctx)
	if err != nil {
		return err
	}

	latestInt, err := safeUintToInt(latest)
	if err != nil {
		return err
	}

	version := curVersion
	target := uint(lo.Clamp(targetVersion, 0, latestInt))

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version > version || migration.Down == nil {
			continue
		}

		if migration.Version <= target {
			// We down-ed enough
			break
		}

		if err := m.run(ctx, "down", migration, migration.Down); err != nil {
			return err
		}

		if i == 0 {
			version = 0
		} else {
			version = m.migrations[i-1].Version
		}
	}

	if m.dryRun {
		if target >= curVersion {
			m.l.Warnf("[dry-run] database version already at '%d', no changes would be applied", curVersion)
		} else {
			m.l.Warnf("[dry-run] database version would pass from '%d' to '%d'", curVersion, target)
		}
		return nil
	}

	cursor, err := m.db().Query(ctx, `
		FOR m IN @@collection
			FILTER m.package == @pkg AND m.version > @version
			REMOVE m IN @@collection
	`, map[string]interface{}{
		"@collection": m.migrationsCollection,
		"pkg":         m.pkg,
		"version":     version,
	})
	if err != nil {
		return err
	}

	return cursor.Close()
}

func safeUintToInt(u uint) (int, error) {
	if u > math.MaxInt {
		return 0, errors.New("uint value is too large to fit in an int")
	}
	// #nosec G115
	return int(u), nil
}
