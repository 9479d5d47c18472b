// Package migrations embeds the catalog schema and applies it with
// golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

//go:embed *.sql
var files embed.FS

type migrationLogger struct {
	log     *zap.SugaredLogger
	verbose bool
}

func (l *migrationLogger) Printf(format string, v ...any) {
	l.log.Infof(format, v...)
}

func (l *migrationLogger) Verbose() bool {
	return l.verbose
}

// Up applies every pending migration. Having nothing to apply is not an
// error.
func Up(dsn string, log *zap.Logger) error {
	return run(dsn, log, func(m *migrate.Migrate) error { return m.Up() })
}

// Down rolls back steps migrations.
func Down(dsn string, steps int, log *zap.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("migrations: steps must be positive, got %d", steps)
	}
	return run(dsn, log, func(m *migrate.Migrate) error { return m.Steps(-steps) })
}

func run(dsn string, log *zap.Logger, apply func(*migrate.Migrate) error) error {
	const op = "migrations.run"

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("%s: open: %w", op, err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("%s: database driver: %w", op, err)
	}

	src, err := iofs.New(files, ".")
	if err != nil {
		return fmt.Errorf("%s: source: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m.Log = &migrationLogger{log: log.Named("migrate").Sugar(), verbose: true}

	if err := apply(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("%s: version: %w", op, err)
	}
	log.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Files exposes the embedded migrations, mainly for inspection in tests.
func Files() embed.FS {
	return files
}
