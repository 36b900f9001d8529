package system

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/migration"
	"github.com/MolchanovArt/exocortex/internal/storage"
	"github.com/MolchanovArt/exocortex/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	provider, ok := ctx.Store.(interface{ GetDB() *sql.DB })
	if !ok {
		return fmt.Errorf("storage backend does not expose a database connection")
	}
	db := provider.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	dialect := "sqlite"
	if storage.IsPostgresConn(ctx.Store.GetConfigPath()) {
		dialect = "postgres"
	}
	subFS, err := fs.Sub(migrations.FS, dialect)
	if err != nil {
		return fmt.Errorf("failed to access %s migrations: %w", dialect, err)
	}

	count, err := migration.NewRunner(db, subFS).ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
