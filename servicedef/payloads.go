package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// Identifiers are carried as ldvalue.Value so that whatever JSON type the service used for an
// id (usually a number) is sent back unchanged.

type CredentialParams struct {
	Username                string `json:"username"`
	Password                string `json:"password"`
	RoleBasedAuthority      string `json:"roleBasedAuthority"`
	IsEnabled               bool   `json:"isEnabled"`
	IsAccountNonExpired     bool   `json:"isAccountNonExpired"`
	IsAccountNonLocked      bool   `json:"isAccountNonLocked"`
	IsCredentialsNonExpired bool   `json:"isCredentialsNonExpired"`
}

type UserParams struct {
	FirstName  string           `json:"firstName"`
	LastName   string           `json:"lastName"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Credential CredentialParams `json:"credential"`
}

type CartParams struct {
	UserID ldvalue.Value `json:"userId"`
}

type CategoryParams struct {
	CategoryTitle string `json:"categoryTitle"`
	ImageURL      string `json:"imageUrl"`
}

type CategoryRef struct {
	CategoryID ldvalue.Value `json:"categoryId"`
}

type ProductParams struct {
	ProductTitle string      `json:"productTitle"`
	ImageURL     string      `json:"imageUrl"`
	SKU          string      `json:"sku"`
	PriceUnit    float64     `json:"priceUnit"`
	Quantity     int         `json:"quantity"`
	Category     CategoryRef `json:"category"`
}

// ProductUpdateParams is the body of a product update, which names the product in the body
// rather than in the path.
type ProductUpdateParams struct {
	ProductID ldvalue.Value `json:"productId"`
	ProductParams
}

type CartRef struct {
	CartID ldvalue.Value `json:"cartId"`
}

type OrderParams struct {
	OrderDesc string  `json:"orderDesc"`
	OrderFee  float64 `json:"orderFee"`
	Cart      CartRef `json:"cart"`
}

type ShippingItemParams struct {
	ProductID       ldvalue.Value `json:"productId"`
	OrderID         ldvalue.Value `json:"orderId"`
	OrderedQuantity int           `json:"orderedQuantity"`
}

type OrderRef struct {
	OrderID ldvalue.Value `json:"orderId"`
}

type PaymentParams struct {
	IsPayed       bool     `json:"isPayed"`
	PaymentStatus string   `json:"paymentStatus"`
	Order         OrderRef `json:"order"`
}

// PaymentStatusCompleted is the status of a payment that went through.
const PaymentStatusCompleted = "COMPLETED"

// Response field names of the identifiers the workflows rely on.
const (
	UserIDField     = "userId"
	CartIDField     = "cartId"
	CategoryIDField = "categoryId"
	ProductIDField  = "productId"
	OrderIDField    = "orderId"
	PaymentIDField  = "paymentId"
	CollectionField = "collection"
)
