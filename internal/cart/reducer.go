package cart

import (
	"strings"

	"github.com/angelmondragon/cartview/pkg/enums"
	pkgerrors "github.com/angelmondragon/cartview/pkg/errors"
)

// Apply returns the state that results from intent. The input state is left
// untouched. Entries never survive with a quantity below one.
func Apply(state State, intent Intent) (State, error) {
	name := strings.TrimSpace(intent.Name)
	if name == "" {
		return state, pkgerrors.New(pkgerrors.CodeValidation, "entry name is required")
	}

	switch intent.Kind {
	case enums.CartIntentAddItem:
		return applyAdd(state, name, intent)
	case enums.CartIntentUpdateQuantity:
		if intent.Quantity <= 0 {
			return applyRemove(state, name), nil
		}
		return applyUpdate(state, name, intent.Quantity), nil
	case enums.CartIntentRemoveItem:
		return applyRemove(state, name), nil
	default:
		return state, pkgerrors.New(pkgerrors.CodeValidation, "unknown cart intent").
			WithDetails(map[string]any{"kind": string(intent.Kind)})
	}
}

func applyAdd(state State, name string, intent Intent) (State, error) {
	if intent.Price.IsNegative() {
		return state, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative").
			WithDetails(map[string]any{"name": name})
	}
	entries := state.Entries()
	if i := state.indexOf(name); i >= 0 {
		entries[i].Quantity++
		return State{entries: entries}, nil
	}
	entries = append(entries, Entry{
		Name:     name,
		Price:    intent.Price,
		Quantity: 1,
		Image:    strings.TrimSpace(intent.Image),
	})
	return State{entries: entries}, nil
}

func applyUpdate(state State, name string, quantity int) State {
	i := state.indexOf(name)
	if i < 0 {
		return state
	}
	entries := state.Entries()
	entries[i].Quantity = quantity
	return State{entries: entries}
}

func applyRemove(state State, name string) State {
	if state.indexOf(name) < 0 {
		return state
	}
	entries := make([]Entry, 0, len(state.entries)-1)
	for _, entry := range state.entries {
		if entry.Name != name {
			entries = append(entries, entry)
		}
	}
	return State{entries: entries}
}
