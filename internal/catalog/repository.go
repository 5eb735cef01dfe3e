package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crumbline-be/internal/money"

	"github.com/lib/pq"
)

var ErrProductNotFound = errors.New("product not found")

type Repository interface {
	ListProducts(ctx context.Context, opts ListOptions) ([]Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListProducts(ctx context.Context, opts ListOptions) ([]Product, error) {
	query := `SELECT id, name, category, price_cents, is_vegan, is_gluten_free, allergens, rating
		FROM products WHERE 1=1`
	args := []interface{}{}

	if opts.Category != nil {
		args = append(args, *opts.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if opts.VeganOnly {
		query += " AND is_vegan"
	}
	if opts.GlutenFree {
		query += " AND is_gluten_free"
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		var priceCents int64
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &priceCents,
			&p.IsVegan, &p.IsGlutenFree, pq.Array(&p.Allergens), &p.Rating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		p.PriceCents = money.Cents(priceCents)
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetProduct(ctx context.Context, id int) (*Product, error) {
	var p Product
	var priceCents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, category, price_cents, is_vegan, is_gluten_free, allergens, rating
		 FROM products WHERE id = $1`, id,
	).Scan(
		&p.ID, &p.Name, &p.Category, &priceCents,
		&p.IsVegan, &p.IsGlutenFree, pq.Array(&p.Allergens), &p.Rating,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}

	p.PriceCents = money.Cents(priceCents)
	return &p, nil
}
