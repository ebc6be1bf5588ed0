package database

import (
	"context"
	"fmt"
)

// Summary holds the dashboard aggregates computed by the database.
type Summary struct {
	Products       int64        `json:"products"`
	Brands         int64        `json:"brands"`
	PanelTypes     int64        `json:"panelTypes"`
	ByStatus       map[string]int64 `json:"byStatus"`
	TotalStock     int64        `json:"totalStock"`
	AveragePrice   float64      `json:"averagePriceJpy"`
	ByBrand        []BrandCount `json:"byBrand"`
}

// BrandCount is the number of products registered for one brand.
type BrandCount struct {
	Brand    string `json:"brand"`
	Products int64  `json:"products"`
}

// Summary computes the dashboard aggregates in a single round of queries.
func (s *Store) Summary(ctx context.Context) (*Summary, error) {
	sum := &Summary{ByStatus: make(map[string]int64)}

	err := s.db.QueryRow(ctx, `
		SELECT count(*),
		       coalesce(sum(stock_quantity), 0),
		       coalesce(avg(price_jpy), 0)
		FROM products`).Scan(&sum.Products, &sum.TotalStock, &sum.AveragePrice)
	if err != nil {
		return nil, fmt.Errorf("summarize products: %w", err)
	}

	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM brands`).Scan(&sum.Brands); err != nil {
		return nil, fmt.Errorf("count brands: %w", err)
	}
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM panel_types`).Scan(&sum.PanelTypes); err != nil {
		return nil, fmt.Errorf("count panel types: %w", err)
	}

	rows, err := s.db.Query(ctx, `SELECT status, count(*) FROM products GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		sum.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	brandRows, err := s.db.Query(ctx, `
		SELECT b.name, count(p.product_id)
		FROM brands b
		LEFT JOIN products p ON p.brand_id = b.id
		GROUP BY b.name
		ORDER BY count(p.product_id) DESC, b.name`)
	if err != nil {
		return nil, fmt.Errorf("count by brand: %w", err)
	}
	defer brandRows.Close()
	for brandRows.Next() {
		var bc BrandCount
		if err := brandRows.Scan(&bc.Brand, &bc.Products); err != nil {
			return nil, fmt.Errorf("scan brand count: %w", err)
		}
		sum.ByBrand = append(sum.ByBrand, bc)
	}
	if err := brandRows.Err(); err != nil {
		return nil, fmt.Errorf("count by brand: %w", err)
	}

	return sum, nil
}
