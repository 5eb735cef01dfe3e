package graph

import (
	"context"

	"crumbline-be/internal/graph/model"
	"crumbline-be/internal/logger"

	"go.uber.org/zap"
)

// SelectProduct opens the customization step for a menu item.
func (r *mutationResolver) SelectProduct(ctx context.Context, productID int) (*model.Response, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	product, err := r.CatalogSvc.GetProduct(ctx, productID)
	if err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}

	if err := flow.SelectProduct(*product); err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}
	return &model.Response{Success: true}, nil
}

// CancelCustomization closes the customize step without touching the cart.
func (r *mutationResolver) CancelCustomization(ctx context.Context) (*model.Response, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := flow.CancelCustomizing(); err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}
	return &model.Response{Success: true}, nil
}

// ConfirmCustomization adds the customized item and returns to browsing.
func (r *mutationResolver) ConfirmCustomization(ctx context.Context, quantity int, customization *model.CustomizationInput) (*model.Response, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := flow.ConfirmCustomizing(quantity, mapCustomization(customization)); err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}
	return &model.Response{Success: true, Message: strPtr("Added to cart")}, nil
}

// AddToCart quick-adds a product, bypassing the customization step.
func (r *mutationResolver) AddToCart(ctx context.Context, input model.AddToCartInput) (*model.Response, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("product_id", input.ProductID),
		zap.Int("quantity", input.Quantity),
	)

	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	product, err := r.CatalogSvc.GetProduct(ctx, input.ProductID)
	if err != nil {
		log.Warn("add to cart for unknown product", zap.Error(err))
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}

	if err := flow.AddItem(*product, input.Quantity, mapCustomization(input.Customization)); err != nil {
		log.Warn("failed to add item to cart", zap.Error(err))
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}

	log.Info("cart item added")
	return &model.Response{Success: true, Message: strPtr("Added to cart")}, nil
}

// UpdateCartQuantity sets a line's quantity. Zero or negative quantities
// are rejected; removal goes through RemoveFromCart.
func (r *mutationResolver) UpdateCartQuantity(ctx context.Context, input model.UpdateCartInput) (*model.Response, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := flow.UpdateQuantity(input.ProductID, input.Quantity); err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}
	return &model.Response{Success: true}, nil
}

// RemoveFromCart drops a line entirely.
func (r *mutationResolver) RemoveFromCart(ctx context.Context, productID int) (*model.Response, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := flow.RemoveItem(productID); err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}
	return &model.Response{Success: true}, nil
}

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

type mutationResolver struct{ *Resolver }
