package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// HomepageConfigRepository defines the remote homepage_config table contract
type HomepageConfigRepository interface {
	List(ctx context.Context) ([]HomepageConfigRow, error)
	Upsert(ctx context.Context, rows []HomepageConfigRow) error
}

type homepageConfigRepository struct {
	db *sql.DB
}

// NewHomepageConfigRepository creates a new instance of HomepageConfigRepository
func NewHomepageConfigRepository(db *sql.DB) HomepageConfigRepository {
	return &homepageConfigRepository{db: db}
}

// List returns every section ordered by display_order.
// An empty table yields an empty slice.
func (r *homepageConfigRepository) List(ctx context.Context) ([]HomepageConfigRow, error) {
	query := `
		SELECT id, type, title, subtitle, image_url, button_text, is_visible, display_order
		FROM homepage_config
		ORDER BY display_order ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list homepage config: %w", err)
	}
	defer rows.Close()

	sections := []HomepageConfigRow{}
	for rows.Next() {
		var row HomepageConfigRow
		err := rows.Scan(
			&row.ID,
			&row.Type,
			&row.Title,
			&row.Subtitle,
			&row.ImageURL,
			&row.ButtonText,
			&row.IsVisible,
			&row.DisplayOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan homepage section: %w", err)
		}
		sections = append(sections, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating homepage config: %w", err)
	}

	return sections, nil
}

// Upsert writes every section in one transaction, keyed by id
func (r *homepageConfigRepository) Upsert(ctx context.Context, rows []HomepageConfigRow) error {
	query := `
		INSERT INTO homepage_config (id, type, title, subtitle, image_url, button_text, is_visible, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			title = EXCLUDED.title,
			subtitle = EXCLUDED.subtitle,
			image_url = EXCLUDED.image_url,
			button_text = EXCLUDED.button_text,
			is_visible = EXCLUDED.is_visible,
			display_order = EXCLUDED.display_order
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin homepage config upsert: %w", err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		_, err := tx.ExecContext(
			ctx,
			query,
			row.ID,
			row.Type,
			row.Title,
			row.Subtitle,
			row.ImageURL,
			row.ButtonText,
			row.IsVisible,
			row.DisplayOrder,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert homepage section %s: %w", row.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit homepage config upsert: %w", err)
	}

	return nil
}
