package models

import "time"

// ProductSnapshot is the product data captured when a line is first added.
// It is deliberately never re-synced: removing and re-adding the product is
// the only way to refresh it.
type ProductSnapshot struct {
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url"`
	Category  string  `json:"category"`
	Stock     int     `json:"stock"`
}

type CartLine struct {
	ProductID int             `json:"product_id"`
	Snapshot  ProductSnapshot `json:"snapshot"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// Cart holds one user's pending selections, lines in insertion order.
type Cart struct {
	UserID    int        `json:"user_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) Line(productID int) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Total is computed freshly on every read from the captured unit prices.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Snapshot.UnitPrice * float64(line.Quantity)
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}
