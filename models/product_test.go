package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUnmarshalCanonical(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 7, "title": "Bear", "price": 450.5,
		"image_url": "https://cdn.example.com/bear.jpg", "stock": 3
	}`), &p))

	assert.Equal(t, 7, p.ID)
	assert.Equal(t, "Bear", p.Title)
	assert.Equal(t, 450.5, p.Price)
	assert.Equal(t, "https://cdn.example.com/bear.jpg", p.ImageURL)
}

func TestProductUnmarshalLegacyFieldNames(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 7, "name": "Bear", "image": "bear.jpg", "price": "450"
	}`), &p))

	assert.Equal(t, "Bear", p.Title)
	assert.Equal(t, "bear.jpg", p.ImageURL)
	assert.Equal(t, 450.0, p.Price)
}

func TestProductUnmarshalPriceWithCurrencyPrefix(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "title": "Bear", "price": "Rs. 450"}`), &p))

	assert.Equal(t, 450.0, p.Price)
}

func TestProductUnmarshalPrefersCanonicalNames(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Bear", "name": "Old Bear",
		"image_url": "new.jpg", "image": "old.jpg"
	}`), &p))

	assert.Equal(t, "Bear", p.Title)
	assert.Equal(t, "new.jpg", p.ImageURL)
}

func TestProductUnmarshalBadPriceIsZero(t *testing.T) {
	for _, raw := range []string{
		`{"id": 1, "title": "Bear"}`,
		`{"id": 1, "title": "Bear", "price": "free"}`,
		`{"id": 1, "title": "Bear", "price": null}`,
		`{"id": 1, "title": "Bear", "price": true}`,
	} {
		var p Product
		require.NoError(t, json.Unmarshal([]byte(raw), &p), raw)
		assert.Equal(t, 0.0, p.Price, raw)
	}
}

func TestCartTotalAndItemCount(t *testing.T) {
	cart := Cart{Lines: []CartLine{
		{ProductID: 1, Snapshot: ProductSnapshot{UnitPrice: 100}, Quantity: 1},
		{ProductID: 2, Snapshot: ProductSnapshot{UnitPrice: 50}, Quantity: 2},
	}}

	assert.Equal(t, 200.0, cart.Total())
	assert.Equal(t, 3, cart.ItemCount())
}

func TestCartLineLookup(t *testing.T) {
	cart := Cart{Lines: []CartLine{{ProductID: 1, Quantity: 1}}}

	require.NotNil(t, cart.Line(1))
	assert.Nil(t, cart.Line(2))

	// Line returns a pointer into the cart, so callers can mutate in place.
	cart.Line(1).Quantity = 5
	assert.Equal(t, 5, cart.Lines[0].Quantity)
}
