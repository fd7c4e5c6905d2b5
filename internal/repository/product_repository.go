package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the remote products table contract
type ProductRepository interface {
	List(ctx context.Context) ([]ProductRow, error)
	Insert(ctx context.Context, row ProductRow) error
	Upsert(ctx context.Context, rows []ProductRow) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	db    *sql.DB
	types *pgtype.Map
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db, types: pgtype.NewMap()}
}

const productColumns = `id, name, price, description, category, images, sizes, colors,
		age_range, care_instructions, is_new, is_featured, created_at, reviews`

// List returns every product, newest first
func (r *productRepository) List(ctx context.Context) ([]ProductRow, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []ProductRow{}
	for rows.Next() {
		var (
			row       ProductRow
			createdAt time.Time
			reviews   []byte
		)
		err := rows.Scan(
			&row.ID,
			&row.Name,
			&row.Price,
			&row.Description,
			&row.Category,
			r.types.SQLScanner(&row.Images),
			r.types.SQLScanner(&row.Sizes),
			r.types.SQLScanner(&row.Colors),
			&row.AgeRange,
			&row.CareInstructions,
			&row.IsNew,
			&row.IsFeatured,
			&createdAt,
			&reviews,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		row.CreatedAt = &createdAt
		row.Reviews = reviews
		products = append(products, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Insert adds one product row
func (r *productRepository) Insert(ctx context.Context, row ProductRow) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, COALESCE($13, NOW()), $14)
	`

	_, err := r.db.ExecContext(ctx, query, insertArgs(row)...)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// Upsert writes every row in one transaction, keyed by id
func (r *productRepository) Upsert(ctx context.Context, rows []ProductRow) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, COALESCE($13, NOW()), $14)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			images = EXCLUDED.images,
			sizes = EXCLUDED.sizes,
			colors = EXCLUDED.colors,
			age_range = EXCLUDED.age_range,
			care_instructions = EXCLUDED.care_instructions,
			is_new = EXCLUDED.is_new,
			is_featured = EXCLUDED.is_featured,
			reviews = EXCLUDED.reviews
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin product upsert: %w", err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, query, insertArgs(row)...); err != nil {
			return fmt.Errorf("failed to upsert product %s: %w", row.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product upsert: %w", err)
	}

	return nil
}

// Delete removes a product by id
func (r *productRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func insertArgs(row ProductRow) []interface{} {
	var createdAt interface{}
	if row.CreatedAt != nil {
		createdAt = *row.CreatedAt
	}
	return []interface{}{
		row.ID,
		row.Name,
		row.Price,
		row.Description,
		row.Category,
		nonNil(row.Images),
		nonNil(row.Sizes),
		nonNil(row.Colors),
		row.AgeRange,
		row.CareInstructions,
		row.IsNew,
		row.IsFeatured,
		createdAt,
		string(reviewsOrEmpty(row.Reviews)),
	}
}
