package cart

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/cartview/api/responses"
	"github.com/angelmondragon/cartview/internal/cartview"
	pkgerrors "github.com/angelmondragon/cartview/pkg/errors"
	"github.com/angelmondragon/cartview/pkg/logger"
)

const (
	pagePath         = "/cart"
	noticeParam      = "notice"
	noticeCheckout   = "checkout"
	cartPageTemplate = "cart.html"
	htmlContentType  = "text/html; charset=utf-8"
)

var pageActions = map[string]entryAction{
	"increment": incrementAction,
	"decrement": decrementAction,
	"remove":    removeAction,
}

type pageData struct {
	Model  cartview.Model
	Total  string
	Notice string
}

// CartPage renders the cart as HTML.
func CartPage(view View, logg *logger.Logger) http.HandlerFunc {
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

		data := pageData{Model: model}
		if model.Total != nil {
			data.Total = *model.Total
		}
		if r.URL.Query().Get(noticeParam) == noticeCheckout {
			data.Notice = view.Checkout(r.Context()).Message
		}

		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, cartPageTemplate, data); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render cart page"))
			return
		}
		w.Header().Set("Content-Type", htmlContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// CartPageAction applies a form-posted quantity control and redirects back to the page.
func CartPageAction(view View, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if view == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart view unavailable"))
			return
		}
		action, ok := pageActions[chi.URLParam(r, "action")]
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "unknown cart action"))
			return
		}
		if err := applyToEntry(r, view, action); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		http.Redirect(w, r, pagePath, http.StatusSeeOther)
	}
}

// CartPageContinue sends the shopper to the continue-shopping destination.
func CartPageContinue(view View, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if view == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart view unavailable"))
			return
		}
		http.Redirect(w, r, view.ContinueShopping(r.Context()), http.StatusSeeOther)
	}
}

// CartPageCheckout redirects back to the page with the checkout notice shown.
func CartPageCheckout(view View, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if view == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart view unavailable"))
			return
		}
		http.Redirect(w, r, pagePath+"?"+noticeParam+"="+noticeCheckout, http.StatusSeeOther)
	}
}
