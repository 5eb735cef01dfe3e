package graph

import (
	"context"
	"errors"

	"crumbline-be/internal/graph/model"
	"crumbline-be/internal/middleware"

	"github.com/99designs/gqlgen/graphql"
)

// AuthDirective guards admin-only fields. The storefront itself is fully
// anonymous; only diagnostics carry @auth.
func AuthDirective(ctx context.Context, obj interface{}, next graphql.Resolver, role *model.Role) (res interface{}, err error) {
	userRole := middleware.RoleFromContext(ctx)
	if userRole == "" {
		return nil, errors.New("unauthorized")
	}

	requiredRole := model.RoleUser
	if role != nil {
		requiredRole = *role
	}
	if requiredRole == model.RoleAdmin && userRole != string(model.RoleAdmin) {
		return nil, errors.New("forbidden: admin only")
	}
	return next(ctx)
}
