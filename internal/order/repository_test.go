package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"crumbline-be/internal/cart"
	"crumbline-be/internal/checkout"
	"crumbline-be/internal/pricing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubmission() checkout.Submission {
	return checkout.Submission{
		SessionID: "sess-42",
		Lines: []cart.Line{
			{
				ProductID:   6,
				ProductName: "Flourless Chocolate Torte",
				UnitPrice:   2800,
				Quantity:    1,
				Customization: cart.Customization{
					Size: cart.SizeMedium,
					Gift: &cart.Gift{Message: "congrats", Packaging: cart.PackagingDeluxe},
				},
			},
			{ProductID: 9, ProductName: "Lemon Poppyseed Muffin", UnitPrice: 350, Quantity: 2},
		},
		Totals: pricing.Totals{
			Subtotal: 4500, Discount: 450, Tax: 324, DeliveryFee: 499, Total: 4873,
		},
		PromoCode: "WELCOME10",
		OrderContext: checkout.OrderContext{
			OrderType:       pricing.OrderTypeDelivery,
			DeliveryOption:  pricing.DeliveryStandard,
			DeliveryAddress: "12 Rye Lane",
		},
		PlacedAt: time.Now(),
	}
}

func TestSubmitOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)INSERT INTO orders .* RETURNING id`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectExec(`INSERT INTO order_items`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO order_items`).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		orderNumber, err := repo.SubmitOrder(ctx, testSubmission())
		require.NoError(t, err)
		assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, orderNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("HeaderInsertFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)INSERT INTO orders`).
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, err = repo.SubmitOrder(ctx, testSubmission())
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ItemInsertFailsRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)INSERT INTO orders .* RETURNING id`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectExec(`INSERT INTO order_items`).
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, err = repo.SubmitOrder(ctx, testSubmission())
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemoryBackend(t *testing.T) {
	t.Run("AcceptsAndStores", func(t *testing.T) {
		b := NewMemoryBackend(0)
		sub := testSubmission()

		orderNumber, err := b.SubmitOrder(context.Background(), sub)
		require.NoError(t, err)

		stored, ok := b.Order(orderNumber)
		require.True(t, ok)
		assert.Equal(t, sub.SessionID, stored.SessionID)
		assert.Equal(t, sub.Totals.Total, stored.Totals.Total)
	})

	t.Run("UniqueOrderNumbers", func(t *testing.T) {
		b := NewMemoryBackend(0)
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			n, err := b.SubmitOrder(context.Background(), testSubmission())
			require.NoError(t, err)
			assert.False(t, seen[n])
			seen[n] = true
		}
	})
}
