package cartview

// Model is the rendered cart. Total is nil for an empty cart.
type Model struct {
	Empty        bool    `json:"empty"`
	EmptyMessage string  `json:"empty_message,omitempty"`
	Lines        []Line  `json:"lines"`
	Total        *string `json:"total,omitempty"`
	ItemCount    int     `json:"item_count"`
}

// Line is one rendered cart entry. Amounts are formatted with two decimals.
// PathName is Name escaped for use as a single URL path segment.
type Line struct {
	Name              string `json:"name"`
	PathName          string `json:"path_name"`
	UnitPrice         string `json:"unit_price"`
	Quantity          int    `json:"quantity"`
	LineTotal         string `json:"line_total"`
	ImageURL          string `json:"image_url"`
	ImageAlt          string `json:"image_alt"`
	DecrementDisabled bool   `json:"decrement_disabled"`
	DecrementLabel    string `json:"decrement_label"`
	IncrementLabel    string `json:"increment_label"`
	RemoveLabel       string `json:"remove_label"`
}

// Notice is a message shown to the shopper without changing the cart.
type Notice struct {
	Message string `json:"notice"`
}
