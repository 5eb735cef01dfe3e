package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

func loadSchema(t *testing.T) (*ast.Schema, []string) {
	t.Helper()

	paths, err := filepath.Glob("*.graphqls")
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no schema files next to the resolvers")

	sources := make([]*ast.Source, 0, len(paths))
	for _, p := range paths {
		body, err := os.ReadFile(p)
		require.NoError(t, err)
		sources = append(sources, &ast.Source{Name: p, Input: string(body)})
	}

	schema, gqlErr := gqlparser.LoadSchema(sources...)
	require.Nil(t, gqlErr)
	return schema, paths
}

// Resolver files are laid out per schema file, so every schema file needs a
// matching <name>.resolver.go for regeneration to land on the checked-in
// implementations instead of scaffolding a parallel set.
func TestSchemaFilesMatchResolverFiles(t *testing.T) {
	_, paths := loadSchema(t)

	for _, p := range paths {
		name := strings.TrimSuffix(filepath.Base(p), ".graphqls")
		resolverFile := name + ".resolver.go"
		_, err := os.Stat(resolverFile)
		assert.NoError(t, err, "schema file %s has no resolver file %s", p, resolverFile)
	}
}

func TestSchemaDeclaresAllOperations(t *testing.T) {
	schema, _ := loadSchema(t)

	require.NotNil(t, schema.Query)
	require.NotNil(t, schema.Mutation)

	queries := map[string]bool{}
	for _, f := range schema.Query.Fields {
		queries[f.Name] = true
	}
	for _, want := range []string{"products", "cart", "liveSessions"} {
		assert.True(t, queries[want], "query %s missing from schema", want)
	}

	mutations := map[string]bool{}
	for _, f := range schema.Mutation.Fields {
		mutations[f.Name] = true
	}
	for _, want := range []string{
		"selectProduct", "cancelCustomization", "confirmCustomization",
		"addToCart", "updateCartQuantity", "removeFromCart",
		"applyPromo", "removePromo", "setOrderContext",
		"openCheckout", "dismiss", "placeOrder", "continueShopping",
	} {
		assert.True(t, mutations[want], "mutation %s missing from schema", want)
	}
}
