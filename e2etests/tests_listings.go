package e2etests

import (
	"net/http"

	"github.com/selimhorri/ecommerce-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
)

func DoListingTests(t *T) {
	t.Run("products", func(t *T) {
		requireListing(t, servicedef.ProductsPath)
	})
	t.Run("categories", func(t *T) {
		requireListing(t, servicedef.CategoriesPath)
	})
}

// requireListing checks that path returns a collection envelope. A missing or null collection
// counts as an empty one.
func requireListing(t *T, path string) {
	resp := t.Request(http.MethodGet, path)
	require.NoError(t, servicedef.ValidateCollection(resp.Body))
	listing, err := resp.JSON()
	require.NoError(t, err)
	t.Debug("%s has %d item(s)", path, len(servicedef.Collection(listing)))
}
