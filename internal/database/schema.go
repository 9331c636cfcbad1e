package database

import (
	"context"
	"fmt"
)

// Dependent image and review rows are owned by their product row and are
// cascade-deleted with it.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		url TEXT UNIQUE NOT NULL,
		name TEXT,
		price TEXT,
		rating TEXT,
		review_count TEXT,
		rating_dist_5_star_percent TEXT,
		rating_dist_4_star_percent TEXT,
		rating_dist_3_star_percent TEXT,
		rating_dist_2_star_percent TEXT,
		rating_dist_1_star_percent TEXT,
		scraped_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS product_images (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
		position INT NOT NULL,
		image_url TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product_reviews (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
		position INT NOT NULL,
		review_text TEXT,
		review_rating TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_product_images_product_id ON product_images (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_product_reviews_product_id ON product_reviews (product_id)`,
}

// Migrate creates the schema when it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
