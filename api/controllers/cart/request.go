package cart

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/angelmondragon/cartview/api/controllers/cart/dto"
	"github.com/angelmondragon/cartview/api/validators"
	"github.com/angelmondragon/cartview/internal/cart"
	pkgerrors "github.com/angelmondragon/cartview/pkg/errors"
	"github.com/angelmondragon/cartview/pkg/money"
)

const maxNameLen = 120

func toEntry(payload cartdto.AddItemRequest) (cart.Entry, error) {
	price, err := money.Parse(payload.Price)
	if err != nil {
		return cart.Entry{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price").
			WithDetails(map[string]string{"price": "must be a non-negative decimal"})
	}
	return cart.Entry{
		Name:     validators.SanitizeString(payload.Name, maxNameLen),
		Price:    price,
		Quantity: 1,
		Image:    strings.TrimSpace(payload.Image),
	}, nil
}

func entryNameParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	// chi matches on RawPath when the request carries escaped separators, so the
	// param is still encoded only in that case.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}
	name = validators.SanitizeString(name, maxNameLen)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "entry name is required")
	}
	return name, nil
}
