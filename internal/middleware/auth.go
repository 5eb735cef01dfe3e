package middleware

import (
	"context"
	"net/http"
	"os"

	"crumbline-be/internal/auth"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	TokenClaimsKey contextKey = "jwtClaims"
	UserRoleKey    contextKey = "userRole"
)

var jwtKey = []byte(os.Getenv("SECRET_KEY"))

// AuthMiddleware verifies tokens minted by the external auth service and
// stashes the claims for the graph directives. Anonymous requests pass
// through untouched; the storefront works without an account.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			next.ServeHTTP(w, r)
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			ctx := context.WithValue(r.Context(), TokenClaimsKey, claims)
			if role, ok := claims["role"].(string); ok {
				ctx = context.WithValue(ctx, UserRoleKey, role)
			}
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

// RoleFromContext returns the verified role, empty for anonymous visitors.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}
