package storage

import (
	"strings"

	"github.com/MolchanovArt/exocortex/internal/storage/postgres"
	"github.com/MolchanovArt/exocortex/internal/storage/sqlite"
)

// IsPostgresConn reports whether the config value looks like a PostgreSQL
// connection string rather than a SQLite file path.
func IsPostgresConn(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// New selects the backend from the config value: PostgreSQL connection
// strings get the postgres store, everything else is treated as a SQLite
// file path.
func New(config string) Provider {
	if IsPostgresConn(config) {
		return postgres.New(config)
	}
	return sqlite.New(config)
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries an inline password. Such strings are rejected on the command
// line; credentials belong in the OS keyring or the environment.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := postgres.ValidateConnString(connStr)
	return err == postgres.ErrEmbeddedCredentials
}
