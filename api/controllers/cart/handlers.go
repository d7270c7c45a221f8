package cart

import (
	"context"
	"net/http"

	cartdto "github.com/angelmondragon/cartview/api/controllers/cart/dto"
	"github.com/angelmondragon/cartview/api/responses"
	"github.com/angelmondragon/cartview/api/validators"
	"github.com/angelmondragon/cartview/internal/cart"
	"github.com/angelmondragon/cartview/internal/cartview"
	pkgerrors "github.com/angelmondragon/cartview/pkg/errors"
	"github.com/angelmondragon/cartview/pkg/logger"
)

// View is the cart component surface the handlers drive.
type View interface {
	Render(ctx context.Context) (cartview.Model, error)
	Lookup(ctx context.Context, name string) (cart.Entry, error)
	Add(ctx context.Context, entry cart.Entry) error
	Increment(ctx context.Context, entry cart.Entry) error
	DecrementOrRemove(ctx context.Context, entry cart.Entry) error
	Remove(ctx context.Context, entry cart.Entry) error
	ContinueShopping(ctx context.Context) string
	Checkout(ctx context.Context) cartview.Notice
}

type entryAction func(View, context.Context, cart.Entry) error

var (
	incrementAction entryAction = View.Increment
	decrementAction entryAction = View.DecrementOrRemove
	removeAction    entryAction = View.Remove
)

// CartFetch renders the current cart.
func CartFetch(view View, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if view == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart view unavailable"))
			return
		}
		model, err := view.Render(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, model)
	}
}

// CartAddItem puts one unit of the posted product in the cart.
func CartAddItem(view View, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if view == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart view unavailable"))
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := toEntry(payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := view.Add(r.Context(), entry); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeModel(w, r, view, logg, http.StatusCreated)
	}
}

// CartIncrement raises the named entry's quantity by one.
func CartIncrement(view View, logg *logger.Logger) http.HandlerFunc {
	return entryHandler(view, logg, incrementAction)
}

// CartDecrement lowers the named entry's quantity by one, removing it at one.
func CartDecrement(view View, logg *logger.Logger) http.HandlerFunc {
	return entryHandler(view, logg, decrementAction)
}

// CartRemove drops the named entry.
func CartRemove(view View, logg *logger.Logger) http.HandlerFunc {
	return entryHandler(view, logg, removeAction)
}

// CartContinueShopping reports where the shopper should be sent next.
func CartContinueShopping(view View, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if view == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart view unavailable"))
			return
		}
		responses.WriteSuccess(w, continueShoppingResponse{Redirect: view.ContinueShopping(r.Context())})
	}
}

// CartCheckout returns the checkout placeholder notice.
func CartCheckout(view View, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if view == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart view unavailable"))
			return
		}
		responses.WriteSuccess(w, view.Checkout(r.Context()))
	}
}

func entryHandler(view View, logg *logger.Logger, action entryAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if view == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart view unavailable"))
			return
		}
		if err := applyToEntry(r, view, action); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeModel(w, r, view, logg, http.StatusOK)
	}
}

func applyToEntry(r *http.Request, view View, action entryAction) error {
	name, err := entryNameParam(r)
	if err != nil {
		return err
	}
	entry, err := view.Lookup(r.Context(), name)
	if err != nil {
		return err
	}
	return action(view, r.Context(), entry)
}

func writeModel(w http.ResponseWriter, r *http.Request, view View, logg *logger.Logger, status int) {
	model, err := view.Render(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, status, model)
}
