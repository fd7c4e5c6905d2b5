package domain

// CartItem is a product line in a shopper's cart.
// The triple (Product.ID, SelectedSize, SelectedColor) identifies the line.
type CartItem struct {
	Product
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

// Matches reports whether the line is keyed by the given triple
func (c *CartItem) Matches(productID, size, color string) bool {
	return c.ID == productID && c.SelectedSize == size && c.SelectedColor == color
}

// LineTotal returns price times quantity
func (c *CartItem) LineTotal() float64 {
	return c.Price * float64(c.Quantity)
}

// CartTotals summarises a cart
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}
