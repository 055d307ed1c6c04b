package persistence

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration directions accepted by RunMigrations.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// RunMigrations applies the embedded SQL migrations against dsn.
// Being already at the target version is not an error.
func RunMigrations(dsn, direction string, logger *zap.Logger) error {
	if dsn == "" {
		return ErrNoDSN
	}
	if direction != DirectionUp && direction != DirectionDown {
		return fmt.Errorf("direction must be %q or %q, got %q", DirectionUp, DirectionDown, direction)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("migration driver: %w", err)
	}

	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case DirectionUp:
		err = m.Up()
	case DirectionDown:
		err = m.Down()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migrations already current", zap.String("direction", direction))
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply migrations %s: %w", direction, err)
	}

	version, dirty, verr := m.Version()
	if verr == nil {
		logger.Info("migrations applied",
			zap.String("direction", direction),
			zap.Uint("version", version),
			zap.Bool("dirty", dirty))
	}
	return nil
}
