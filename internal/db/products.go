package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kanithisathvik/aspectrank/internal/models"
)

// LoadProducts reads every product and its review texts. Reviews come
// back ordered by insertion so aggregation indexes stay stable across
// runs.
func LoadProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := DB.Query(ctx, `
		SELECT p.id, p.name, COALESCE(array_agg(r.review_text ORDER BY r.id) FILTER (WHERE r.id IS NOT NULL), '{}')
		FROM products p
		LEFT JOIN reviews r ON r.product_id = p.id
		GROUP BY p.id, p.name
		ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("[DB] Failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Reviews); err != nil {
			return nil, fmt.Errorf("[DB] Failed to scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("[DB] Product rows failed: %w", err)
	}

	slog.Info("[DB] Loaded products", slog.Int("count", len(products)))
	return products, nil
}
