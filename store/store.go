// Package store persists onboarded stores and their menus in an embedded
// SQLite catalog.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when the requested store does not exist.
var ErrNotFound = errors.New("store not found")

const schema = `
CREATE TABLE IF NOT EXISTS stores (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	address         TEXT NOT NULL DEFAULT '',
	phone           TEXT NOT NULL DEFAULT '',
	category        TEXT NOT NULL DEFAULT '',
	image_url       TEXT NOT NULL DEFAULT '',
	business_number TEXT NOT NULL DEFAULT '',
	onboarded_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS menus (
	id              TEXT PRIMARY KEY,
	restaurant_id   TEXT NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
	restaurant_name TEXT NOT NULL DEFAULT '',
	menu_name       TEXT NOT NULL,
	price           INTEGER NOT NULL DEFAULT 0,
	original_price  INTEGER NOT NULL DEFAULT 0,
	image_url       TEXT NOT NULL DEFAULT '',
	category        TEXT NOT NULL DEFAULT '',
	phone_number    TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	address         TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_menus_restaurant ON menus(restaurant_id);
CREATE INDEX IF NOT EXISTS idx_menus_category ON menus(category);
`

// StoreRow is one onboarded store.
type StoreRow struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Category       string `json:"category"`
	ImageURL       string `json:"image_url"`
	BusinessNumber string `json:"business_number"`
	OnboardedAt    string `json:"onboarded_at"`
}

// MenuRow is one catalog menu entry.
type MenuRow struct {
	ID             string `json:"id"`
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	MenuName       string `json:"menu_name"`
	Price          int    `json:"price"`
	OriginalPrice  int    `json:"original_price"`
	ImageURL       string `json:"image_url"`
	Category       string `json:"category"`
	PhoneNumber    string `json:"phone_number"`
	Description    string `json:"description"`
	Address        string `json:"address"`
}

// Store wraps the catalog database. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init catalog schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert writes the store row and replaces its menus in one transaction.
// Re-onboarding a store always supersedes the previous menu set.
func (s *Store) Upsert(ctx context.Context, row StoreRow, menus []MenuRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if row.OnboardedAt == "" {
		row.OnboardedAt = time.Now().Format(time.RFC3339)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stores (id, name, address, phone, category, image_url, business_number, onboarded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			address = excluded.address,
			phone = excluded.phone,
			category = excluded.category,
			image_url = excluded.image_url,
			business_number = excluded.business_number,
			onboarded_at = excluded.onboarded_at`,
		row.ID, row.Name, row.Address, row.Phone, row.Category,
		row.ImageURL, row.BusinessNumber, row.OnboardedAt,
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM menus WHERE restaurant_id = ?`, row.ID); err != nil {
		return err
	}

	for _, m := range menus {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO menus (id, restaurant_id, restaurant_name, menu_name, price,
				original_price, image_url, category, phone_number, description, address)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.RestaurantID, m.RestaurantName, m.MenuName, m.Price,
			m.OriginalPrice, m.ImageURL, m.Category, m.PhoneNumber, m.Description, m.Address,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// List returns every onboarded store, most recent first.
func (s *Store) List(ctx context.Context) ([]StoreRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, address, phone, category, image_url, business_number, onboarded_at
		FROM stores ORDER BY onboarded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoreRow
	for rows.Next() {
		var r StoreRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Address, &r.Phone, &r.Category,
			&r.ImageURL, &r.BusinessNumber, &r.OnboardedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get returns one store and its menus. Returns ErrNotFound when the id is
// unknown.
func (s *Store) Get(ctx context.Context, id string) (*StoreRow, []MenuRow, error) {
	var r StoreRow
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, address, phone, category, image_url, business_number, onboarded_at
		FROM stores WHERE id = ?`, id).
		Scan(&r.ID, &r.Name, &r.Address, &r.Phone, &r.Category,
			&r.ImageURL, &r.BusinessNumber, &r.OnboardedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	menus, err := s.menusWhere(ctx, `restaurant_id = ?`, id)
	if err != nil {
		return nil, nil, err
	}
	return &r, menus, nil
}

// ListMenus returns all menus, optionally filtered by category.
func (s *Store) ListMenus(ctx context.Context, category string) ([]MenuRow, error) {
	if category == "" {
		return s.menusWhere(ctx, `1 = 1`)
	}
	return s.menusWhere(ctx, `category = ?`, category)
}

// Delete removes a store; its menus go with it via cascade.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM stores WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) menusWhere(ctx context.Context, where string, args ...any) ([]MenuRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, restaurant_id, restaurant_name, menu_name, price,
			original_price, image_url, category, phone_number, description, address
		FROM menus WHERE `+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MenuRow
	for rows.Next() {
		var m MenuRow
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.RestaurantName, &m.MenuName,
			&m.Price, &m.OriginalPrice, &m.ImageURL, &m.Category,
			&m.PhoneNumber, &m.Description, &m.Address); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
