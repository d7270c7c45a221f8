package db

// Goose dialect names for the supported drivers.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)
