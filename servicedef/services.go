// Package servicedef describes the contract of the system under test: which services must be
// registered, which gateway routes they expose, and the JSON payloads those routes accept.
package servicedef

// Service ids as they appear in the registry.
const (
	ProductServiceID  = "PRODUCT-SERVICE"
	UserServiceID     = "USER-SERVICE"
	OrderServiceID    = "ORDER-SERVICE"
	PaymentServiceID  = "PAYMENT-SERVICE"
	ShippingServiceID = "SHIPPING-SERVICE"
)

// Gateway routes.
const (
	GatewayHealthPath = "/actuator/health"
	ProductsPath      = "/product-service/api/products"
	CategoriesPath    = "/product-service/api/categories"
	UsersPath         = "/user-service/api/users"
	CartsPath         = "/order-service/api/carts"
	OrdersPath        = "/order-service/api/orders"
	PaymentsPath      = "/payment-service/api/payments"
	ShippingsPath     = "/shipping-service/api/shippings"
)

// Registry routes.
const (
	RegistryHealthPath = "/actuator/health"
	RegistryAppsPath   = "/eureka/apps/"
)

// StatusUp is the health status of a component that is ready.
const StatusUp = "UP"

// CoreServices are the services every workflow depends on.
var CoreServices = []string{
	ProductServiceID,
	UserServiceID,
	OrderServiceID,
	PaymentServiceID,
	ShippingServiceID,
}

// CoreListingRoutes are the gateway routes that must answer before any workflow runs.
var CoreListingRoutes = []string{
	ProductsPath,
	CategoriesPath,
	UsersPath,
	CartsPath,
	PaymentsPath,
	ShippingsPath,
}

// ItemPath returns the path of a single resource under a collection path.
func ItemPath(collectionPath string, keys ...string) string {
	p := collectionPath
	for _, k := range keys {
		p += "/" + k
	}
	return p
}
