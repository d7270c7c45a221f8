package cartdto

// AddItemRequest is the body of POST /api/v1/cart/items. Price is a decimal
// string so amounts like "1.005" survive without float rounding.
type AddItemRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Price string `json:"price" validate:"required,numeric"`
	Image string `json:"image,omitempty" validate:"omitempty,url"`
}
