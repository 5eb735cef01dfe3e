package main

import (
	"database/sql"

	"crumbline-be/internal/catalog"
	"crumbline-be/internal/config"
	"crumbline-be/internal/db"
	"crumbline-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id             INTEGER PRIMARY KEY,
	name           TEXT NOT NULL,
	category       TEXT NOT NULL,
	price_cents    BIGINT NOT NULL CHECK (price_cents >= 0),
	is_vegan       BOOLEAN NOT NULL DEFAULT FALSE,
	is_gluten_free BOOLEAN NOT NULL DEFAULT FALSE,
	allergens      TEXT[] NOT NULL DEFAULT '{}',
	rating         DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS orders (
	id                 BIGSERIAL PRIMARY KEY,
	order_number       TEXT NOT NULL UNIQUE,
	session_id         TEXT NOT NULL,
	order_type         TEXT NOT NULL,
	delivery_option    TEXT NOT NULL,
	delivery_date      TIMESTAMPTZ,
	delivery_time      TEXT,
	delivery_address   TEXT,
	promo_code         TEXT,
	subtotal_cents     BIGINT NOT NULL,
	discount_cents     BIGINT NOT NULL,
	tax_cents          BIGINT NOT NULL,
	delivery_fee_cents BIGINT NOT NULL,
	total_cents        BIGINT NOT NULL,
	placed_at          TIMESTAMPTZ NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS order_items (
	id                   BIGSERIAL PRIMARY KEY,
	order_id             BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id           INTEGER NOT NULL,
	product_name         TEXT NOT NULL,
	unit_price_cents     BIGINT NOT NULL,
	quantity             INTEGER NOT NULL CHECK (quantity >= 1),
	size                 TEXT,
	special_instructions TEXT,
	gift_message         TEXT,
	gift_packaging       TEXT
);
`

func main() {
	cfg := config.LoadConfig()
	defer logger.Sync()

	database, err := db.Connect(cfg)
	if err != nil {
		logger.L().Fatal("database unavailable", zap.Error(err))
	}
	defer database.Close()

	if _, err := database.Exec(schema); err != nil {
		logger.L().Fatal("schema apply failed", zap.Error(err))
	}
	logger.L().Info("schema applied")

	if err := seedCatalog(database); err != nil {
		logger.L().Fatal("catalog seed failed", zap.Error(err))
	}
	logger.L().Info("catalog seeded", zap.Int("products", len(catalog.Menu)))
}

func seedCatalog(database *sql.DB) error {
	for _, p := range catalog.Menu {
		_, err := database.Exec(
			`INSERT INTO products (id, name, category, price_cents, is_vegan, is_gluten_free, allergens, rating)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			 ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				price_cents = EXCLUDED.price_cents,
				is_vegan = EXCLUDED.is_vegan,
				is_gluten_free = EXCLUDED.is_gluten_free,
				allergens = EXCLUDED.allergens,
				rating = EXCLUDED.rating`,
			p.ID, p.Name, p.Category, int64(p.PriceCents),
			p.IsVegan, p.IsGlutenFree, pq.Array(p.Allergens), p.Rating,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
