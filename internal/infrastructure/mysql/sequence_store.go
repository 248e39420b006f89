package mysql

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLSequenceStore persists the listing identifier counter. The counter
// starts at zero and is advanced exactly once per allocation; keeping it in
// the database means a restart can never hand out an identifier twice.
type MySQLSequenceStore struct {
	db   *sql.DB
	name string
}

func NewMySQLSequenceStore(db *sql.DB, name string) *MySQLSequenceStore {
	return &MySQLSequenceStore{db: db, name: name}
}

func (s *MySQLSequenceStore) Next(ctx context.Context) (uint64, error) {
	insert := `INSERT IGNORE INTO sequences (name, next_value) VALUES (?, 0)`
	if _, err := s.db.ExecContext(ctx, insert, s.name); err != nil {
		return 0, err
	}

	// LAST_INSERT_ID captures the advanced counter within the UPDATE so the
	// allocation round-trips in a single statement.
	update := `UPDATE sequences SET next_value = LAST_INSERT_ID(next_value + 1) WHERE name = ?`
	result, err := s.db.ExecContext(ctx, update, s.name)
	if err != nil {
		return 0, err
	}

	advanced, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	return uint64(advanced) - 1, nil
}
