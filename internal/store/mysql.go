// Package store implements the durable persistence boundary behind
// the engine.  The database is a mirror of in-memory state, never an
// independent source of truth: every save replaces the reservations
// table with the current ledger snapshot so a stored counter can never
// drift from the ledger.  All timestamps are stored in UTC.
//
// Expected schema:
//
//	CREATE TABLE listings (
//	    seq            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//	    id             VARCHAR(64) NOT NULL UNIQUE,
//	    title          VARCHAR(255) NOT NULL,
//	    description    TEXT NOT NULL,
//	    location       VARCHAR(255) NOT NULL,
//	    pickup_window  VARCHAR(64) NOT NULL,
//	    source         VARCHAR(255) NOT NULL,
//	    kind           VARCHAR(16) NOT NULL,
//	    total_capacity INT NOT NULL,
//	    created_at     DATETIME NOT NULL
//	);
//
//	CREATE TABLE reservations (
//	    seq        BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//	    id         VARCHAR(64) NOT NULL UNIQUE,
//	    user_id    VARCHAR(64) NOT NULL,
//	    user_email VARCHAR(255) NOT NULL,
//	    listing_id VARCHAR(64) NOT NULL,
//	    source     VARCHAR(255) NOT NULL,
//	    created_at DATETIME NOT NULL
//	);
package store

import (
	"context"
	"database/sql"

	"github.com/okheya/food-rescue/internal/model"
)

// MySQL persists ledger snapshots and listings to MySQL.  It
// implements engine.Store.
type MySQL struct {
	db *sql.DB
}

// NewMySQL returns a store bound to the given database.
func NewMySQL(db *sql.DB) *MySQL { return &MySQL{db: db} }

// SaveLedger replaces the reservations table with the given snapshot
// inside a single transaction.  Either the whole snapshot lands or
// nothing changes; the engine rolls back its in-memory mutation when
// this returns an error.
func (s *MySQL) SaveLedger(ctx context.Context, entries []model.Reservation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM reservations`); err != nil {
		return err
	}
	if len(entries) > 0 {
		query := `INSERT INTO reservations (id, user_id, user_email, listing_id, source, created_at) VALUES `
		args := make([]interface{}, 0, len(entries)*6)
		for i, r := range entries {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?, ?)"
			args = append(args, r.ID, r.UserID, r.UserEmail, r.ListingID, r.Source, r.CreatedAt.UTC())
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SaveListing inserts a newly created listing.
func (s *MySQL) SaveListing(ctx context.Context, l model.Listing) error {
	const q = `INSERT INTO listings (id, title, description, location, pickup_window, source, kind, total_capacity, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		l.ID, l.Title, l.Description, l.Location, l.PickupWindow, l.Source, l.Kind, l.TotalCapacity, l.CreatedAt.UTC())
	return err
}

// LoadLedger returns the persisted ledger snapshot in insertion order.
// An empty table yields an empty slice.
func (s *MySQL) LoadLedger(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT id, user_id, user_email, listing_id, source, created_at
	           FROM reservations ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var r model.Reservation
		if err := rows.Scan(&r.ID, &r.UserID, &r.UserEmail, &r.ListingID, &r.Source, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadListings returns all persisted listings in insertion order.
func (s *MySQL) LoadListings(ctx context.Context) ([]model.Listing, error) {
	const q = `SELECT id, title, description, location, pickup_window, source, kind, total_capacity, created_at
	           FROM listings ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Listing, 0)
	for rows.Next() {
		var l model.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.Location, &l.PickupWindow, &l.Source, &l.Kind, &l.TotalCapacity, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
