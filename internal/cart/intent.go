package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/cartview/pkg/enums"
)

// Intent describes a state change the view asks the store to apply.
type Intent struct {
	Kind     enums.CartIntentKind `json:"kind"`
	Name     string               `json:"name"`
	Quantity int                  `json:"quantity,omitempty"`
	Price    decimal.Decimal      `json:"price"`
	Image    string               `json:"image,omitempty"`
}

// UpdateQuantity sets the quantity of the named entry.
func UpdateQuantity(name string, quantity int) Intent {
	return Intent{Kind: enums.CartIntentUpdateQuantity, Name: name, Quantity: quantity}
}

// RemoveItem deletes the named entry.
func RemoveItem(name string) Intent {
	return Intent{Kind: enums.CartIntentRemoveItem, Name: name}
}

// AddItem puts one unit of a product in the cart.
func AddItem(name string, price decimal.Decimal, image string) Intent {
	return Intent{Kind: enums.CartIntentAddItem, Name: name, Price: price, Image: image}
}

// IncrementIntent raises the entry's quantity by one.
func IncrementIntent(entry Entry) Intent {
	return UpdateQuantity(entry.Name, entry.Quantity+1)
}

// DecrementIntent lowers the entry's quantity by one, or removes the entry when
// it holds a single unit.
func DecrementIntent(entry Entry) Intent {
	if entry.Quantity > 1 {
		return UpdateQuantity(entry.Name, entry.Quantity-1)
	}
	return RemoveItem(entry.Name)
}

// RemoveIntent removes the entry whatever its quantity.
func RemoveIntent(entry Entry) Intent {
	return RemoveItem(entry.Name)
}
