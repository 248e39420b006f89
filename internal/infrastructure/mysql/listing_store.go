package mysql

import (
	"context"
	"database/sql"
	"errors"

	"auction-ledger/internal/domain"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLListingStore struct {
	db *sql.DB
}

func NewMySQLListingStore(db *sql.DB) *MySQLListingStore {
	return &MySQLListingStore{db: db}
}

func (s *MySQLListingStore) Get(ctx context.Context, id uint64) (*domain.Listing, bool, error) {
	query := `
        SELECT id, title, description, starting_price, current_price, sold, owner
        FROM listings WHERE id = ?
    `

	var listing domain.Listing

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&listing.ID, &listing.Title, &listing.Description,
		&listing.StartingPrice, &listing.CurrentPrice, &listing.Sold, &listing.Owner)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &listing, true, nil
}

func (s *MySQLListingStore) Put(ctx context.Context, id uint64, listing *domain.Listing) (bool, error) {
	// Callers are serialized, so the existence probe and the upsert cannot
	// interleave with another write on the same key.
	var existed bool
	probe := `SELECT EXISTS(SELECT 1 FROM listings WHERE id = ?)`
	if err := s.db.QueryRowContext(ctx, probe, id).Scan(&existed); err != nil {
		return false, err
	}

	query := `
        INSERT INTO listings (id, title, description, starting_price, current_price, sold, owner)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
            title = VALUES(title),
            description = VALUES(description),
            starting_price = VALUES(starting_price),
            current_price = VALUES(current_price),
            sold = VALUES(sold),
            owner = VALUES(owner)
    `
	_, err := s.db.ExecContext(ctx, query,
		id, listing.Title, listing.Description,
		listing.StartingPrice, listing.CurrentPrice, listing.Sold, listing.Owner)
	if err != nil {
		return existed, err
	}

	return existed, nil
}

func (s *MySQLListingStore) Count(ctx context.Context) (uint64, error) {
	var count uint64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
