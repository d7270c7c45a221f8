// Package cartview renders the shopping cart and turns user actions into cart
// intents. It owns no state: every render reads a fresh snapshot from the store.
package cartview

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/angelmondragon/cartview/internal/cart"
	pkgerrors "github.com/angelmondragon/cartview/pkg/errors"
	"github.com/angelmondragon/cartview/pkg/money"
)

const (
	EmptyMessage          = "Your cart is empty."
	DefaultCheckoutNotice = "Checkout functionality will be added later"
)

// ContinueShoppingFunc is invoked when the shopper leaves the cart. It returns
// the location the caller should navigate to.
type ContinueShoppingFunc func(ctx context.Context) string

// Options carries the collaborators and display defaults of a View.
type Options struct {
	PlaceholderImageURL string
	CheckoutNotice      string
	ContinueShopping    ContinueShoppingFunc
}

// View is the cart component.
type View struct {
	store            cart.Store
	placeholderImage string
	checkoutNotice   string
	continueShopping ContinueShoppingFunc
}

// New builds a View reading from and dispatching to store.
func New(store cart.Store, opts Options) (*View, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	notice := strings.TrimSpace(opts.CheckoutNotice)
	if notice == "" {
		notice = DefaultCheckoutNotice
	}
	continueShopping := opts.ContinueShopping
	if continueShopping == nil {
		continueShopping = func(context.Context) string { return "/" }
	}
	return &View{
		store:            store,
		placeholderImage: opts.PlaceholderImageURL,
		checkoutNotice:   notice,
		continueShopping: continueShopping,
	}, nil
}

// Render builds the view model from the current cart snapshot.
func (v *View) Render(ctx context.Context) (Model, error) {
	state, err := v.store.Snapshot(ctx)
	if err != nil {
		return Model{}, err
	}
	if state.IsEmpty() {
		return Model{Empty: true, EmptyMessage: EmptyMessage, Lines: []Line{}}, nil
	}

	entries := state.Entries()
	lines := make([]Line, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, v.lineFor(entry))
	}
	total := money.Format(cart.CartTotal(state))
	return Model{
		Lines:     lines,
		Total:     &total,
		ItemCount: cart.ItemCount(state),
	}, nil
}

// Lookup returns the named entry from the current snapshot.
func (v *View) Lookup(ctx context.Context, name string) (cart.Entry, error) {
	state, err := v.store.Snapshot(ctx)
	if err != nil {
		return cart.Entry{}, err
	}
	entry, ok := state.Find(strings.TrimSpace(name))
	if !ok {
		return cart.Entry{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart entry not found").
			WithDetails(map[string]any{"name": name})
	}
	return entry, nil
}

// Add puts one unit of a product in the cart.
func (v *View) Add(ctx context.Context, entry cart.Entry) error {
	return v.store.Dispatch(ctx, cart.AddItem(entry.Name, entry.Price, entry.Image))
}

// Increment asks the store to raise entry's quantity by one.
func (v *View) Increment(ctx context.Context, entry cart.Entry) error {
	return v.store.Dispatch(ctx, cart.IncrementIntent(entry))
}

// DecrementOrRemove lowers entry's quantity by one. A single remaining unit is
// removed instead.
func (v *View) DecrementOrRemove(ctx context.Context, entry cart.Entry) error {
	return v.store.Dispatch(ctx, cart.DecrementIntent(entry))
}

// Remove drops entry from the cart whatever its quantity.
func (v *View) Remove(ctx context.Context, entry cart.Entry) error {
	return v.store.Dispatch(ctx, cart.RemoveIntent(entry))
}

// ContinueShopping hands control back to the navigation collaborator.
func (v *View) ContinueShopping(ctx context.Context) string {
	return v.continueShopping(ctx)
}

// Checkout is a placeholder: it reports a notice and leaves the cart alone.
func (v *View) Checkout(ctx context.Context) Notice {
	return Notice{Message: v.checkoutNotice}
}

func (v *View) lineFor(entry cart.Entry) Line {
	image := entry.Image
	if image == "" {
		image = v.placeholderImage
	}
	return Line{
		Name:              entry.Name,
		PathName:          url.PathEscape(entry.Name),
		UnitPrice:         money.Format(entry.Price),
		Quantity:          entry.Quantity,
		LineTotal:         money.Format(cart.LineTotal(entry)),
		ImageURL:          image,
		ImageAlt:          entry.Name,
		DecrementDisabled: entry.Quantity <= 1,
		DecrementLabel:    "Decrease quantity of " + entry.Name,
		IncrementLabel:    "Increase quantity of " + entry.Name,
		RemoveLabel:       "Remove " + entry.Name + " from cart",
	}
}
