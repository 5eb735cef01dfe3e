package catalog

import (
	"context"
	"errors"
	"testing"

	"crumbline-be/internal/money"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productColumns() []string {
	return []string{"id", "name", "category", "price_cents", "is_vegan", "is_gluten_free", "allergens", "rating"}
}

func TestRepository_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		rows := sqlmock.NewRows(productColumns()).
			AddRow(1, "Classic Sourdough", "bread", int64(650), true, false, pq.Array([]string{"gluten"}), 4.8).
			AddRow(3, "Butter Croissant", "pastry", int64(395), false, false, pq.Array([]string{"gluten", "dairy", "egg"}), 4.9)

		mock.ExpectQuery(`(?s)SELECT .* FROM products .* ORDER BY id`).
			WillReturnRows(rows)

		res, err := repo.ListProducts(ctx, ListOptions{})
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "Classic Sourdough", res[0].Name)
		assert.Equal(t, money.Cents(650), res[0].PriceCents)
		assert.Equal(t, []string{"gluten", "dairy", "egg"}, res[1].Allergens)
	})

	t.Run("CategoryFilter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* AND category = \$1`).
			WithArgs("bread").
			WillReturnRows(sqlmock.NewRows(productColumns()))

		_, err = repo.ListProducts(ctx, ListOptions{Category: strPtr("bread")})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DietaryFlags", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* AND is_vegan AND is_gluten_free`).
			WillReturnRows(sqlmock.NewRows(productColumns()))

		_, err = repo.ListProducts(ctx, ListOptions{VeganOnly: true, GlutenFree: true})
		assert.NoError(t, err)
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .*`).WillReturnError(errors.New("db error"))
		_, err = repo.ListProducts(ctx, ListOptions{})
		assert.Error(t, err)
	})
}

func TestRepository_GetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* FROM products WHERE id = \$1`).
			WithArgs(6).
			WillReturnRows(sqlmock.NewRows(productColumns()).
				AddRow(6, "Flourless Chocolate Torte", "cake", int64(2800), false, true, pq.Array([]string{"dairy", "egg"}), 4.8))

		p, err := repo.GetProduct(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, money.Cents(2800), p.PriceCents)
		assert.True(t, p.IsGlutenFree)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* FROM products WHERE id = \$1`).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows(productColumns()))

		_, err = repo.GetProduct(ctx, 99)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func strPtr(s string) *string { return &s }
