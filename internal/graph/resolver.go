//go:generate go run github.com/99designs/gqlgen generate

package graph

import (
	"context"
	"errors"

	"crumbline-be/internal/catalog"
	"crumbline-be/internal/checkout"
	"crumbline-be/internal/middleware"
	"crumbline-be/internal/session"

	"github.com/99designs/gqlgen/graphql"
)

var errNoSession = errors.New("no visitor session")

type Resolver struct {
	CatalogSvc catalog.Service
	Sessions   *session.Registry
}

func NewSchema(r *Resolver) graphql.ExecutableSchema {
	return NewExecutableSchema(Config{
		Resolvers: r,
		Directives: DirectiveRoot{
			Auth: AuthDirective,
		},
	})
}

// flowFromCtx resolves the visitor's checkout flow from the session id the
// middleware put on the context.
func (r *Resolver) flowFromCtx(ctx context.Context) (*checkout.Flow, error) {
	sessionID, ok := middleware.SessionIDFromContext(ctx)
	if !ok || sessionID == "" {
		return nil, errNoSession
	}
	return r.Sessions.GetOrCreate(sessionID), nil
}
