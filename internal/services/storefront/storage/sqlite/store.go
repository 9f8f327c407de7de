// Package sqlite provides a SQLite-backed product store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/louisbranch/storefront/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/storefront/internal/services/storefront/featured"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/storage/sqlite/migrations"
)

// Store persists products in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite product store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

// CreateProduct inserts one product.
func (s *Store) CreateProduct(ctx context.Context, p featured.Product) error {
	row, err := s.prepareWrite(ctx, p)
	if err != nil {
		return err
	}
	now := s.now().UTC().UnixMilli()
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO products (
		   id, name, price, original_price, description, rating,
		   images_json, colors_json, sizes_json, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.id, row.name, row.price, row.originalPrice, row.description, row.rating,
		row.images, row.colors, row.sizes, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct replaces an existing product.
func (s *Store) UpdateProduct(ctx context.Context, p featured.Product) error {
	row, err := s.prepareWrite(ctx, p)
	if err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE products
		    SET name = ?, price = ?, original_price = ?, description = ?, rating = ?,
		        images_json = ?, colors_json = ?, sizes_json = ?, updated_at = ?
		  WHERE id = ?`,
		row.name, row.price, row.originalPrice, row.description, row.rating,
		row.images, row.colors, row.sizes, s.now().UTC().UnixMilli(), row.id,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetProduct returns one product by ID.
func (s *Store) GetProduct(ctx context.Context, id string) (featured.Product, error) {
	if err := ctx.Err(); err != nil {
		return featured.Product{}, err
	}
	if s == nil || s.sqlDB == nil {
		return featured.Product{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return featured.Product{}, fmt.Errorf("product id is required")
	}

	var (
		p             featured.Product
		originalPrice sql.NullFloat64
		images        string
		colors        string
		sizes         string
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, price, original_price, description, rating,
		        images_json, colors_json, sizes_json
		   FROM products
		  WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.Price, &originalPrice, &p.Description, &p.Rating, &images, &colors, &sizes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return featured.Product{}, storage.ErrNotFound
		}
		return featured.Product{}, fmt.Errorf("get product: %w", err)
	}
	if originalPrice.Valid {
		p.OriginalPrice = featured.Price(originalPrice.Float64)
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return featured.Product{}, fmt.Errorf("decode product images: %w", err)
	}
	if err := json.Unmarshal([]byte(colors), &p.Colors); err != nil {
		return featured.Product{}, fmt.Errorf("decode product colors: %w", err)
	}
	if err := json.Unmarshal([]byte(sizes), &p.Sizes); err != nil {
		return featured.Product{}, fmt.Errorf("decode product sizes: %w", err)
	}
	return p, nil
}

type productRow struct {
	id            string
	name          string
	price         float64
	originalPrice sql.NullFloat64
	description   string
	rating        float64
	images        string
	colors        string
	sizes         string
}

func (s *Store) prepareWrite(ctx context.Context, p featured.Product) (productRow, error) {
	if err := ctx.Err(); err != nil {
		return productRow{}, err
	}
	if s == nil || s.sqlDB == nil {
		return productRow{}, fmt.Errorf("storage is not configured")
	}
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	if err := storage.ValidateProduct(p); err != nil {
		return productRow{}, err
	}
	row := productRow{
		id:          p.ID,
		name:        p.Name,
		price:       p.Price,
		description: p.Description,
		rating:      p.Rating,
	}
	if p.OriginalPrice != nil {
		row.originalPrice = sql.NullFloat64{Float64: *p.OriginalPrice, Valid: true}
	}
	var err error
	if row.images, err = encodeList(p.Images); err != nil {
		return productRow{}, fmt.Errorf("encode product images: %w", err)
	}
	if row.colors, err = encodeList(p.Colors); err != nil {
		return productRow{}, fmt.Errorf("encode product colors: %w", err)
	}
	if row.sizes, err = encodeList(p.Sizes); err != nil {
		return productRow{}, fmt.Errorf("encode product sizes: %w", err)
	}
	return row, nil
}

// encodeList stores nil slices as empty JSON arrays.
func encodeList[T any](values []T) (string, error) {
	if values == nil {
		values = []T{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
