package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the matrix cache table if it does not exist.
// Safe to run on every startup.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: db is nil")
	}

	schema := `
	CREATE TABLE IF NOT EXISTS matrix_cache (
		origin           TEXT NOT NULL,
		destination      TEXT NOT NULL,
		distance_meters  DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: create matrix_cache table: %w", err)
	}

	return nil
}
