package e2etests

import (
	"net/http"

	"github.com/selimhorri/ecommerce-contract-tests/gateway"
	"github.com/selimhorri/ecommerce-contract-tests/servicedef"
	"github.com/selimhorri/ecommerce-contract-tests/workflow"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

func DoCatalogTests(t *T) {
	t.Run("product and category lifecycle", doProductCategoryLifecycle)
}

func doProductCategoryLifecycle(t *T) {
	suffix := newSuffix()
	t.Workflow(func(w *Workflow) {
		category := t.JSON(http.MethodPost, servicedef.CategoriesPath, gateway.WithJSONBody(servicedef.CategoryParams{
			CategoryTitle: "E2E Category " + suffix,
			ImageURL:      "https://example.com/categories/" + suffix + ".png",
		}))
		categoryID := requireID(t, category, servicedef.CategoryIDField)
		w.Record(workflow.Category, categoryID)

		productParams := servicedef.ProductParams{
			ProductTitle: "E2E Product " + suffix,
			ImageURL:     "https://example.com/products/" + suffix + ".png",
			SKU:          "E2E-SKU-" + suffix,
			PriceUnit:    19.99,
			Quantity:     5,
			Category:     servicedef.CategoryRef{CategoryID: categoryID},
		}
		product := t.JSON(http.MethodPost, servicedef.ProductsPath, gateway.WithJSONBody(productParams))
		productID := requireID(t, product, servicedef.ProductIDField)
		w.Record(workflow.Product, productID)
		assert.Equal(t, categoryID, refID(product, "category", servicedef.CategoryIDField))

		fetched := t.JSON(http.MethodGet, itemPath(servicedef.ProductsPath, productID))
		assert.Equal(t, productID, fetched.GetByKey(servicedef.ProductIDField))
		assert.Equal(t, categoryID, refID(fetched, "category", servicedef.CategoryIDField))

		catalog := t.JSON(http.MethodGet, servicedef.ProductsPath)
		assert.True(t, anyItem(servicedef.Collection(catalog), func(item ldvalue.Value) bool {
			return item.GetByKey(servicedef.ProductIDField).Equal(productID)
		}), "product %s is not in the catalog listing", servicedef.IDString(productID))

		update := servicedef.ProductUpdateParams{ProductID: productID, ProductParams: productParams}
		update.PriceUnit = 29.99
		update.Quantity = 10
		updated := t.JSON(http.MethodPut, servicedef.ProductsPath, gateway.WithJSONBody(update))
		assert.Equal(t, 29.99, updated.GetByKey("priceUnit").Float64Value())
		assert.Equal(t, 10, updated.GetByKey("quantity").IntValue())

		refreshed := t.JSON(http.MethodGet, itemPath(servicedef.ProductsPath, productID))
		assert.Equal(t, 29.99, refreshed.GetByKey("priceUnit").Float64Value())
		assert.Equal(t, 10, refreshed.GetByKey("quantity").IntValue())
	})
}
