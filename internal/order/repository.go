package order

import (
	"context"
	"database/sql"
	"fmt"

	"crumbline-be/internal/checkout"
	"crumbline-be/internal/logger"

	"go.uber.org/zap"
)

// Repository persists settled orders to postgres. It implements
// checkout.OrderBackend: one transaction per submission, header plus lines,
// carrying the pricing snapshot verbatim.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) SubmitOrder(ctx context.Context, sub checkout.Submission) (string, error) {
	orderNumber := NewOrderNumber()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin order tx: %w", err)
	}
	defer tx.Rollback()

	var orderID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (
			order_number, session_id, order_type, delivery_option,
			delivery_date, delivery_time, delivery_address, promo_code,
			subtotal_cents, discount_cents, tax_cents, delivery_fee_cents, total_cents,
			placed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id`,
		orderNumber,
		sub.SessionID,
		string(sub.OrderContext.OrderType),
		string(sub.OrderContext.DeliveryOption),
		sub.OrderContext.DeliveryDate,
		sub.OrderContext.DeliveryTime,
		sub.OrderContext.DeliveryAddress,
		sub.PromoCode,
		int64(sub.Totals.Subtotal),
		int64(sub.Totals.Discount),
		int64(sub.Totals.Tax),
		int64(sub.Totals.DeliveryFee),
		int64(sub.Totals.Total),
		sub.PlacedAt,
	).Scan(&orderID)
	if err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range sub.Lines {
		var giftMessage, giftPackaging string
		if line.Customization.Gift != nil {
			giftMessage = line.Customization.Gift.Message
			giftPackaging = string(line.Customization.Gift.Packaging)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (
				order_id, product_id, product_name, unit_price_cents, quantity,
				size, special_instructions, gift_message, gift_packaging
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			orderID,
			line.ProductID,
			line.ProductName,
			int64(line.UnitPrice),
			line.Quantity,
			string(line.Customization.Size),
			line.Customization.SpecialInstructions,
			giftMessage,
			giftPackaging,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit order: %w", err)
	}

	logger.FromCtx(ctx).Info("order persisted",
		zap.String("order_number", orderNumber),
		zap.Int64("order_id", orderID),
		zap.Int("items", len(sub.Lines)),
	)
	return orderNumber, nil
}
