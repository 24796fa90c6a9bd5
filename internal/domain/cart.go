package domain

// CartItem is one distinct product in the cart with its captured unit price.
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
	Emoji    string `json:"emoji,omitempty"`
	Category string `json:"category,omitempty"`
}

// Subtotal returns price times quantity for the line.
func (i CartItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// CartItemFromProduct captures the product's current effective price.
func CartItemFromProduct(p Product) CartItem {
	return CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Emoji:    p.Emoji,
		Category: p.Category,
	}
}
