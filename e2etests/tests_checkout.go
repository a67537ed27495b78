package e2etests

import (
	"net/http"

	"github.com/selimhorri/ecommerce-contract-tests/gateway"
	"github.com/selimhorri/ecommerce-contract-tests/servicedef"
	"github.com/selimhorri/ecommerce-contract-tests/workflow"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

func DoCheckoutTests(t *T) {
	t.Run("checkout flow", doCheckoutFlow)
}

func doCheckoutFlow(t *T) {
	suffix := newSuffix()
	t.Workflow(func(w *Workflow) {
		user := t.JSON(http.MethodPost, servicedef.UsersPath, gateway.WithJSONBody(servicedef.UserParams{
			FirstName: "E2E" + suffix,
			LastName:  "User",
			Email:     "e2e_" + suffix + "@example.com",
			Phone:     "555-0101",
			Credential: servicedef.CredentialParams{
				Username:                "e2e_" + suffix,
				Password:                "P@ssw0rd!",
				RoleBasedAuthority:      "ROLE_USER",
				IsEnabled:               true,
				IsAccountNonExpired:     true,
				IsAccountNonLocked:      true,
				IsCredentialsNonExpired: true,
			},
		}))
		userID := requireID(t, user, servicedef.UserIDField)
		w.Record(workflow.User, userID)

		t.WaitFor(http.MethodGet, servicedef.CartsPath)

		cart := t.JSON(http.MethodPost, servicedef.CartsPath, gateway.WithJSONBody(servicedef.CartParams{UserID: userID}))
		cartID := requireID(t, cart, servicedef.CartIDField)
		w.Record(workflow.Cart, cartID)

		category := t.JSON(http.MethodPost, servicedef.CategoriesPath, gateway.WithJSONBody(servicedef.CategoryParams{
			CategoryTitle: "E2E Checkout " + suffix,
			ImageURL:      "https://example.com/categories/" + suffix + ".png",
		}))
		categoryID := requireID(t, category, servicedef.CategoryIDField)
		w.Record(workflow.Category, categoryID)

		product := t.JSON(http.MethodPost, servicedef.ProductsPath, gateway.WithJSONBody(servicedef.ProductParams{
			ProductTitle: "E2E Checkout Product " + suffix,
			ImageURL:     "https://example.com/products/" + suffix + ".png",
			SKU:          "E2E-ORDER-SKU-" + suffix,
			PriceUnit:    49.5,
			Quantity:     20,
			Category:     servicedef.CategoryRef{CategoryID: categoryID},
		}))
		productID := requireID(t, product, servicedef.ProductIDField)
		w.Record(workflow.Product, productID)

		order := t.JSON(http.MethodPost, servicedef.OrdersPath, gateway.WithJSONBody(servicedef.OrderParams{
			OrderDesc: "E2E Order " + suffix,
			OrderFee:  99.9,
			Cart:      servicedef.CartRef{CartID: cartID},
		}))
		orderID := requireID(t, order, servicedef.OrderIDField)
		w.Record(workflow.Order, orderID)
		assert.Equal(t, cartID, refID(order, "cart", servicedef.CartIDField))

		resolvedCart := t.JSON(http.MethodGet, itemPath(servicedef.CartsPath, cartID))
		assert.Equal(t, userID, refID(resolvedCart, "user", servicedef.UserIDField))

		item := t.JSON(http.MethodPost, servicedef.ShippingsPath, gateway.WithJSONBody(servicedef.ShippingItemParams{
			ProductID:       productID,
			OrderID:         orderID,
			OrderedQuantity: 2,
		}))
		itemOrderID := requireID(t, item, servicedef.OrderIDField)
		itemProductID := requireID(t, item, servicedef.ProductIDField)
		w.Record(workflow.ShippingItem, itemOrderID, itemProductID)
		assert.Equal(t, 2, item.GetByKey("orderedQuantity").IntValue())

		shippings := t.JSON(http.MethodGet, servicedef.ShippingsPath)
		assert.True(t, anyItem(servicedef.Collection(shippings), func(v ldvalue.Value) bool {
			return v.GetByKey(servicedef.OrderIDField).Equal(orderID) && v.GetByKey(servicedef.ProductIDField).Equal(productID)
		}), "shipping item for order %s and product %s is not in the listing",
			servicedef.IDString(orderID), servicedef.IDString(productID))

		payment := t.JSON(http.MethodPost, servicedef.PaymentsPath, gateway.WithJSONBody(servicedef.PaymentParams{
			IsPayed:       true,
			PaymentStatus: servicedef.PaymentStatusCompleted,
			Order:         servicedef.OrderRef{OrderID: orderID},
		}))
		paymentID := requireID(t, payment, servicedef.PaymentIDField)
		w.Record(workflow.Payment, paymentID)
		assert.Equal(t, orderID, refID(payment, "order", servicedef.OrderIDField))

		fetchedPayment := t.JSON(http.MethodGet, itemPath(servicedef.PaymentsPath, paymentID))
		assert.Equal(t, servicedef.PaymentStatusCompleted, fetchedPayment.GetByKey("paymentStatus").StringValue())
		assert.Equal(t, orderID, refID(fetchedPayment, "order", servicedef.OrderIDField))
	})
}
