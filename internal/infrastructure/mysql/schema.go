package mysql

import (
	"context"
	"database/sql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS listings (
        id BIGINT UNSIGNED NOT NULL,
        title VARCHAR(255) NOT NULL,
        description TEXT NOT NULL,
        starting_price BIGINT UNSIGNED NOT NULL,
        current_price BIGINT UNSIGNED NOT NULL,
        sold BOOLEAN NOT NULL DEFAULT FALSE,
        owner VARCHAR(255) NOT NULL,
        PRIMARY KEY (id)
    )`,
	`CREATE TABLE IF NOT EXISTS sequences (
        name VARCHAR(64) NOT NULL,
        next_value BIGINT UNSIGNED NOT NULL DEFAULT 0,
        PRIMARY KEY (name)
    )`,
}

// InitSchema creates the ledger tables if they do not exist yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
