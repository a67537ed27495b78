package workflow

import (
	"fmt"
	"strings"
)

// Kind is the type of resource a workflow created.
type Kind int

const (
	User Kind = iota
	Cart
	Category
	Product
	Order
	ShippingItem
	Payment
)

func (k Kind) String() string {
	switch k {
	case User:
		return "User"
	case Cart:
		return "Cart"
	case Category:
		return "Category"
	case Product:
		return "Product"
	case Order:
		return "Order"
	case ShippingItem:
		return "ShippingItem"
	case Payment:
		return "Payment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KeyLength is the number of identifiers that name a resource of this kind. A shipping item is
// named by its order id and product id; everything else by a single id.
func (k Kind) KeyLength() int {
	if k == ShippingItem {
		return 2
	}
	return 1
}

// Handle identifies one resource that must be deleted when the workflow ends.
type Handle struct {
	Kind Kind
	Key  []string
}

func (h Handle) String() string {
	return fmt.Sprintf("%s %s", h.Kind, strings.Join(h.Key, "/"))
}
