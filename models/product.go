package models

import (
	"encoding/json"
	"time"

	"github.com/softwrapstudio-web/Softwrap-Studio/utils"
)

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// productRecord is the loose wire shape historical clients send: the
// title/image fields appear under either of two names and price may be a
// quoted string. Folding happens here once; everything past this point
// sees the canonical Product.
type productRecord struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       json.RawMessage `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url"`
	Image       string          `json:"image"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var rec productRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	p.ID = rec.ID
	p.Title = rec.Title
	if p.Title == "" {
		p.Title = rec.Name
	}
	p.Description = rec.Description
	p.Category = rec.Category
	p.Price = parseLoosePrice(rec.Price)
	p.Stock = rec.Stock
	p.ImageURL = rec.ImageURL
	if p.ImageURL == "" {
		p.ImageURL = rec.Image
	}
	p.IsActive = rec.IsActive
	p.CreatedAt = rec.CreatedAt
	p.UpdatedAt = rec.UpdatedAt
	return nil
}

// parseLoosePrice accepts a JSON number or a numeric string. Anything else
// becomes 0 so a single bad record never poisons a whole cart total.
func parseLoosePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return utils.ParseAmount(s)
	}
	return 0
}
