package enums

import "fmt"

// CartIntentKind names the mutation a cart intent asks the store to perform.
type CartIntentKind string

const (
	CartIntentAddItem        CartIntentKind = "add_item"
	CartIntentUpdateQuantity CartIntentKind = "update_quantity"
	CartIntentRemoveItem     CartIntentKind = "remove_item"
)

var validCartIntentKinds = []CartIntentKind{
	CartIntentAddItem,
	CartIntentUpdateQuantity,
	CartIntentRemoveItem,
}

// String implements fmt.Stringer.
func (k CartIntentKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known CartIntentKind.
func (k CartIntentKind) IsValid() bool {
	for _, candidate := range validCartIntentKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseCartIntentKind converts raw input into a CartIntentKind.
func ParseCartIntentKind(value string) (CartIntentKind, error) {
	for _, candidate := range validCartIntentKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart intent kind %q", value)
}
