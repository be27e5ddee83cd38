package models

// CartLine is one cart entry. The same product in two variants (different
// size or color) is a distinct line, so lines are keyed by product id plus
// the selected variant.
type CartLine struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"productId"`
	Image      string  `json:"image"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Popularity float64 `json:"popularity"`
	Stock      int     `json:"stock"`
	Quantity   int     `json:"quantity"`
	Size       string  `json:"size"`
	Color      string  `json:"color"`
}

// Key is the composite line identity: product id + size + color.
func (l CartLine) Key() string {
	return l.ProductID + l.Size + l.Color
}

type Cart struct {
	Lines    []CartLine `json:"lines"`
	Subtotal float64    `json:"subtotal"`
}

// Upsert merges a line into the cart: an existing line with the same key
// accumulates quantity, otherwise the line is appended.
func (c *Cart) Upsert(line CartLine) {
	line.ID = line.Key()
	for i := range c.Lines {
		if c.Lines[i].Key() == line.Key() {
			c.Lines[i].Quantity += line.Quantity
			c.recompute()
			return
		}
	}
	c.Lines = append(c.Lines, line)
	c.recompute()
}

// SetQuantity replaces the quantity of the line with the given key. Returns
// false if no such line exists.
func (c *Cart) SetQuantity(key string, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines[i].Quantity = quantity
			c.recompute()
			return true
		}
	}
	return false
}

// Remove drops the line with the given key. Returns false if absent.
func (c *Cart) Remove(key string) bool {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.recompute()
			return true
		}
	}
	return false
}

func (c *Cart) recompute() {
	var subtotal float64
	for _, l := range c.Lines {
		subtotal += l.Price * float64(l.Quantity)
	}
	c.Subtotal = subtotal
}
