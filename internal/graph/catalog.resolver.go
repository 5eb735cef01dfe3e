package graph

import (
	"context"

	"crumbline-be/internal/catalog"
	"crumbline-be/internal/graph/model"
	"crumbline-be/internal/logger"

	"go.uber.org/zap"
)

// Products lists the bakery menu, optionally filtered by category and
// dietary flags.
func (r *queryResolver) Products(ctx context.Context, category *string, veganOnly *bool, glutenFreeOnly *bool) ([]*model.Product, error) {
	opts := catalog.ListOptions{Category: category}
	if veganOnly != nil {
		opts.VeganOnly = *veganOnly
	}
	if glutenFreeOnly != nil {
		opts.GlutenFree = *glutenFreeOnly
	}

	products, err := r.CatalogSvc.ListProducts(ctx, opts)
	if err != nil {
		logger.FromCtx(ctx).Error("products query failed", zap.Error(err))
		return nil, err
	}

	out := make([]*model.Product, 0, len(products))
	for _, p := range products {
		out = append(out, mapProduct(p))
	}
	return out, nil
}

// Cart returns the visitor's cart, totals and checkout state in one view.
func (r *queryResolver) Cart(ctx context.Context) (*model.CartView, error) {
	flow, err := r.flowFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return mapCartView(flow), nil
}

// LiveSessions is an admin diagnostic: the number of in-memory visitor
// sessions currently held.
func (r *queryResolver) LiveSessions(ctx context.Context) (int, error) {
	return r.Sessions.Len(), nil
}

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

type queryResolver struct{ *Resolver }
