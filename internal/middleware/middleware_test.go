package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMiddleware(t *testing.T) {
	t.Run("AssignsCookieOnFirstVisit", func(t *testing.T) {
		var seen string
		h := SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = SessionIDFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/query", nil))

		require.NotEmpty(t, seen)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookie, cookies[0].Name)
		assert.Equal(t, seen, cookies[0].Value)
	})

	t.Run("ReusesExistingCookie", func(t *testing.T) {
		var seen string
		h := SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = SessionIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "returning-visitor"})
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "returning-visitor", seen)
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("AnonymousPassesThrough", func(t *testing.T) {
		var role string
		h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role = RoleFromContext(r.Context())
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/query", nil))
		assert.Empty(t, role)
	})

	t.Run("GarbageTokenPassesThroughAnonymous", func(t *testing.T) {
		var role string
		h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role = RoleFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Empty(t, role)
	})

	t.Run("ValidTokenCarriesRole", func(t *testing.T) {
		secret := "test-secret"
		old := jwtKey
		jwtKey = []byte(secret)
		defer func() { jwtKey = old }()
		_ = os.Setenv("SECRET_KEY", secret)

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"role": "ADMIN",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		var role string
		h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role = RoleFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "ADMIN", role)
	})
}

func graphqlBody(query, operationName string) *bytes.Reader {
	b, _ := json.Marshal(map[string]string{
		"query":         query,
		"operationName": operationName,
	})
	return bytes.NewReader(b)
}

func TestResolveRateTier(t *testing.T) {
	t.Run("PlaceOrderMutationIsStrict", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/query",
			graphqlBody(`mutation { placeOrder { success orderNumber } }`, ""))
		limit, burst, tier := resolveRateTier(r)
		assert.Equal(t, limitStrict, limit)
		assert.Equal(t, burstStrict, burst)
		assert.Equal(t, "strict", tier)
	})

	t.Run("CartMutationIsGeneral", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/query",
			graphqlBody(`mutation { addToCart(input: {productId: 1, quantity: 2}) { success } }`, ""))
		limit, _, tier := resolveRateTier(r)
		assert.Equal(t, limitGeneral, limit)
		assert.Equal(t, "general", tier)
	})

	t.Run("TierIsServerDetermined", func(t *testing.T) {
		// mislabeling the request does not dodge the strict tier
		r := httptest.NewRequest(http.MethodPost, "/query",
			graphqlBody(`mutation { placeOrder { success } }`, ""))
		r.Header.Set("X-Operation", "products")
		_, _, tier := resolveRateTier(r)
		assert.Equal(t, "strict", tier)
	})

	t.Run("OperationNameSelectsExecutedOperation", func(t *testing.T) {
		doc := `
			mutation Submit { placeOrder { success } }
			mutation Edit { removeFromCart(productId: 1) { success } }`
		r := httptest.NewRequest(http.MethodPost, "/query", graphqlBody(doc, "Edit"))
		_, _, tier := resolveRateTier(r)
		assert.Equal(t, "general", tier)

		r = httptest.NewRequest(http.MethodPost, "/query", graphqlBody(doc, "Submit"))
		_, _, tier = resolveRateTier(r)
		assert.Equal(t, "strict", tier)
	})

	t.Run("UnparseableBodyIsGeneral", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader("not json"))
		_, _, tier := resolveRateTier(r)
		assert.Equal(t, "general", tier)
	})
}

func TestResolveRateTierRestoresBody(t *testing.T) {
	body := `{"query":"mutation { placeOrder { success } }"}`
	r := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body))

	_, _, tier := resolveRateTier(r)
	require.Equal(t, "strict", tier)

	rest, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(rest))
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last int
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/query",
			graphqlBody(`mutation { placeOrder { success } }`, ""))
		req.RemoteAddr = "203.0.113.9:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
