package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/creait/oliveyoung-scraper/internal/models"
)

// ProductRow is one persisted product, keyed by URL.
type ProductRow struct {
	ID          int64
	URL         string
	Name        sql.NullString
	Price       sql.NullString
	Rating      sql.NullString
	ReviewCount sql.NullString
	// Distribution percentages for 5 down to 1 stars.
	RatingDist  [5]sql.NullString
	ScrapedAt   time.Time
	ImageCount  int
	ReviewTotal int
}

// SaveProductRecord upserts one extraction result in a single transaction:
// an existing row for the URL has its scalar fields and timestamp updated
// and its dependent image/review rows fully replaced; otherwise a new row
// and its dependents are inserted.
func (db *DB) SaveProductRecord(ctx context.Context, url string, record *models.ProductRecord) error {
	if record == nil {
		return fmt.Errorf("nil product record")
	}

	return db.WithTx(ctx, func(tx pgx.Tx) error {
		var productID int64
		err := tx.QueryRow(ctx, `SELECT id FROM products WHERE url = $1`, url).Scan(&productID)

		dist := record.RatingDistribution
		switch err {
		case nil:
			_, err = tx.Exec(ctx, `
				UPDATE products SET
					name = $2, price = $3, rating = $4, review_count = $5,
					rating_dist_5_star_percent = $6,
					rating_dist_4_star_percent = $7,
					rating_dist_3_star_percent = $8,
					rating_dist_2_star_percent = $9,
					rating_dist_1_star_percent = $10,
					scraped_at = CURRENT_TIMESTAMP
				WHERE id = $1`,
				productID, nullable(record.Name), nullable(record.Price),
				nullable(record.Rating), nullable(record.ReviewCount),
				nullable(dist[5]), nullable(dist[4]), nullable(dist[3]),
				nullable(dist[2]), nullable(dist[1]))
			if err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}

			// Replace dependents wholesale so a re-scrape never accumulates
			// stale images or reviews.
			if _, err := tx.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
				return fmt.Errorf("failed to clear product images: %w", err)
			}
			if _, err := tx.Exec(ctx, `DELETE FROM product_reviews WHERE product_id = $1`, productID); err != nil {
				return fmt.Errorf("failed to clear product reviews: %w", err)
			}

		case pgx.ErrNoRows:
			err = tx.QueryRow(ctx, `
				INSERT INTO products (
					url, name, price, rating, review_count,
					rating_dist_5_star_percent, rating_dist_4_star_percent,
					rating_dist_3_star_percent, rating_dist_2_star_percent,
					rating_dist_1_star_percent
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				RETURNING id`,
				url, nullable(record.Name), nullable(record.Price),
				nullable(record.Rating), nullable(record.ReviewCount),
				nullable(dist[5]), nullable(dist[4]), nullable(dist[3]),
				nullable(dist[2]), nullable(dist[1])).Scan(&productID)
			if err != nil {
				return fmt.Errorf("failed to insert product: %w", err)
			}

		default:
			return fmt.Errorf("failed to look up product: %w", err)
		}

		for i, imageURL := range record.DetailImages {
			if _, err := tx.Exec(ctx, `
				INSERT INTO product_images (product_id, position, image_url)
				VALUES ($1, $2, $3)`, productID, i, imageURL); err != nil {
				return fmt.Errorf("failed to insert product image: %w", err)
			}
		}

		for i, text := range record.Reviews {
			rating := ""
			if i < len(record.ReviewRatings) {
				rating = record.ReviewRatings[i]
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO product_reviews (product_id, position, review_text, review_rating)
				VALUES ($1, $2, $3, $4)`, productID, i, text, rating); err != nil {
				return fmt.Errorf("failed to insert product review: %w", err)
			}
		}

		return nil
	})
}

// GetProductByURL returns the persisted row for a URL, or nil when absent.
func (db *DB) GetProductByURL(ctx context.Context, url string) (*ProductRow, error) {
	row := &ProductRow{}
	err := db.pool.QueryRow(ctx, `
		SELECT id, url, name, price, rating, review_count,
			rating_dist_5_star_percent, rating_dist_4_star_percent,
			rating_dist_3_star_percent, rating_dist_2_star_percent,
			rating_dist_1_star_percent, scraped_at
		FROM products WHERE url = $1`, url).Scan(
		&row.ID, &row.URL, &row.Name, &row.Price, &row.Rating, &row.ReviewCount,
		&row.RatingDist[0], &row.RatingDist[1], &row.RatingDist[2],
		&row.RatingDist[3], &row.RatingDist[4], &row.ScrapedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return row, nil
}

// ListProducts returns all persisted products with their dependent row
// counts, newest scrape first.
func (db *DB) ListProducts(ctx context.Context) ([]*ProductRow, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT p.id, p.url, p.name, p.price, p.rating, p.review_count,
			p.rating_dist_5_star_percent, p.rating_dist_4_star_percent,
			p.rating_dist_3_star_percent, p.rating_dist_2_star_percent,
			p.rating_dist_1_star_percent, p.scraped_at,
			(SELECT COUNT(*) FROM product_images i WHERE i.product_id = p.id),
			(SELECT COUNT(*) FROM product_reviews r WHERE r.product_id = p.id)
		FROM products p
		ORDER BY p.scraped_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*ProductRow
	for rows.Next() {
		row := &ProductRow{}
		if err := rows.Scan(
			&row.ID, &row.URL, &row.Name, &row.Price, &row.Rating, &row.ReviewCount,
			&row.RatingDist[0], &row.RatingDist[1], &row.RatingDist[2],
			&row.RatingDist[3], &row.RatingDist[4], &row.ScrapedAt,
			&row.ImageCount, &row.ReviewTotal); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, row)
	}

	return products, rows.Err()
}

// nullable maps the record's "not found" empty string to SQL NULL.
func nullable(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
