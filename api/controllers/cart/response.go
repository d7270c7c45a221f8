package cart

type continueShoppingResponse struct {
	Redirect string `json:"redirect"`
}
