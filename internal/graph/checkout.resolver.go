package graph

import (
	"context"

	"crumbline-be/internal/graph/model"
	"crumbline-be/internal/logger"

	"go.uber.org/zap"
)

// ApplyPromo validates the code against the promo table and replaces any
// previously applied promo.
func (r *mutationResolver) ApplyPromo(ctx context.Context, code string) (*model.ApplyPromoResponse, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	applied, err := flow.ApplyPromo(code)
	if err != nil {
		logger.FromCtx(ctx).Info("promo rejected", zap.String("code", code), zap.Error(err))
		return &model.ApplyPromoResponse{Success: false, Message: strPtr(err.Error())}, nil
	}

	return &model.ApplyPromoResponse{
		Success:      true,
		Code:         strPtr(applied.Code),
		Description:  strPtr(applied.Description),
		FreeShipping: boolPtr(applied.FreeShipping),
	}, nil
}

// RemovePromo clears the applied promo.
func (r *mutationResolver) RemovePromo(ctx context.Context) (*model.Response, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := flow.RemovePromo(); err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}
	return &model.Response{Success: true}, nil
}

// SetOrderContext records pickup/delivery choices for the order.
func (r *mutationResolver) SetOrderContext(ctx context.Context, input model.OrderContextInput) (*model.Response, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	oc, err := mapOrderContext(input)
	if err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}
	if err := flow.SetOrderContext(oc); err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}
	return &model.Response{Success: true}, nil
}

// OpenCheckout moves the visitor to cart review.
func (r *mutationResolver) OpenCheckout(ctx context.Context) (*model.Response, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := flow.OpenCheckout(); err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}
	return &model.Response{Success: true}, nil
}

// Dismiss handles escape/click-outside. Ignored while an order is in
// flight or complete.
func (r *mutationResolver) Dismiss(ctx context.Context) (*model.Response, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := flow.Dismiss(); err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}
	return &model.Response{Success: true}, nil
}

// PlaceOrder submits the reviewed cart and waits for settlement. Local
// validation failures (empty cart, missing address) come back without a
// state change; a backend failure returns the visitor to review with the
// cart intact.
func (r *mutationResolver) PlaceOrder(ctx context.Context) (*model.PlaceOrderResponse, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx)

	settled, err := flow.PlaceOrder(ctx)
	if err != nil {
		log.Warn("place order rejected", zap.Error(err))
		return &model.PlaceOrderResponse{
			Success: false,
			Message: strPtr(err.Error()),
			State:   string(flow.State()),
		}, nil
	}

	res := <-settled
	if res.Err != nil {
		return &model.PlaceOrderResponse{
			Success: false,
			Message: strPtr(res.Err.Error()),
			State:   string(flow.State()),
		}, nil
	}

	log.Info("order placed", zap.String("order_number", res.OrderNumber))
	return &model.PlaceOrderResponse{
		Success:     true,
		OrderNumber: strPtr(res.OrderNumber),
		State:       string(flow.State()),
	}, nil
}

// ContinueShopping leaves the completed order and resets the session's
// transient state.
func (r *mutationResolver) ContinueShopping(ctx context.Context) (*model.Response, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := flow.ContinueShopping(); err != nil {
		return &model.Response{Success: false, Message: strPtr(err.Error())}, nil
	}
	return &model.Response{Success: true}, nil
}
