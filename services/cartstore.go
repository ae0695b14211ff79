package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/softwrapstudio-web/Softwrap-Studio/models"
	"github.com/softwrapstudio-web/Softwrap-Studio/repositories"
)

var ErrInvalidProduct = errors.New("product must carry an identifier")

// CartStore is the single owner of every signed-in user's cart. Carts are
// loaded from the repository the first time a user is observed, mutated
// only through the methods here, and written back after every mutation.
// Subscribers are notified on each mutation so every consumer (badge,
// grid, cart page) renders from the same state.
//
// One user's lines are never reachable through another user's ID, and a
// persisted record that fails to parse loads as an empty cart.
type CartStore struct {
	mu    sync.RWMutex
	repo  repositories.CartRepository
	carts map[int]*models.Cart
	subs  []func(userID int)
}

func NewCartStore(repo repositories.CartRepository) *CartStore {
	return &CartStore{
		repo:  repo,
		carts: map[int]*models.Cart{},
	}
}

// Subscribe registers a callback invoked after every mutation with the
// affected user's ID. Registration is expected at wiring time, before
// traffic.
func (s *CartStore) Subscribe(fn func(userID int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// cart returns the in-memory cart for userID, loading it from the
// repository on first observation. Callers must hold s.mu.
func (s *CartStore) cart(ctx context.Context, userID int) *models.Cart {
	if c, ok := s.carts[userID]; ok {
		return c
	}

	c, err := s.repo.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrCartNotFound) {
			log.Printf("cart load failed for user %d, starting empty: %v", userID, err)
		}
		c = &models.Cart{UserID: userID}
	}
	s.carts[userID] = c
	return c
}

// AddItem merges the product into the cart: an existing line gains one
// quantity and keeps its original snapshot; a new line is appended with
// quantity 1, preserving insertion order.
func (s *CartStore) AddItem(ctx context.Context, userID int, product *models.Product) error {
	if product == nil || product.ID == 0 {
		return ErrInvalidProduct
	}

	s.mu.Lock()
	cart := s.cart(ctx, userID)
	if line := cart.Line(product.ID); line != nil {
		line.Quantity++
	} else {
		cart.Lines = append(cart.Lines, models.CartLine{
			ProductID: product.ID,
			Snapshot: models.ProductSnapshot{
				Title:     product.Title,
				UnitPrice: product.Price,
				ImageURL:  product.ImageURL,
				Category:  product.Category,
				Stock:     product.Stock,
			},
			Quantity: 1,
			AddedAt:  time.Now(),
		})
	}
	s.persist(ctx, cart)
	s.mu.Unlock()

	s.notify(userID)
	return nil
}

// RemoveItem deletes the line if present; absent is a no-op, not an error.
func (s *CartStore) RemoveItem(ctx context.Context, userID, productID int) {
	s.mu.Lock()
	cart := s.cart(ctx, userID)
	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID {
			cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
			break
		}
	}
	s.persist(ctx, cart)
	s.mu.Unlock()

	s.notify(userID)
}

// SetQuantity sets the line's quantity; n <= 0 removes the line instead.
// A quantity of zero is never stored.
func (s *CartStore) SetQuantity(ctx context.Context, userID, productID, n int) {
	if n <= 0 {
		s.RemoveItem(ctx, userID, productID)
		return
	}

	s.mu.Lock()
	cart := s.cart(ctx, userID)
	if line := cart.Line(productID); line != nil {
		line.Quantity = n
	}
	s.persist(ctx, cart)
	s.mu.Unlock()

	s.notify(userID)
}

func (s *CartStore) Increment(ctx context.Context, userID, productID int) {
	s.mu.Lock()
	cart := s.cart(ctx, userID)
	if line := cart.Line(productID); line != nil {
		line.Quantity++
	}
	s.persist(ctx, cart)
	s.mu.Unlock()

	s.notify(userID)
}

// Decrement lowers quantity by one but never below 1; removal only ever
// happens through RemoveItem or SetQuantity(0).
func (s *CartStore) Decrement(ctx context.Context, userID, productID int) {
	s.mu.Lock()
	cart := s.cart(ctx, userID)
	if line := cart.Line(productID); line != nil && line.Quantity > 1 {
		line.Quantity--
	}
	s.persist(ctx, cart)
	s.mu.Unlock()

	s.notify(userID)
}

// Clear empties the cart and erases the user's persisted record.
func (s *CartStore) Clear(ctx context.Context, userID int) {
	s.mu.Lock()
	cart := s.cart(ctx, userID)
	cart.Lines = nil
	cart.UpdatedAt = time.Now()
	if err := s.repo.Delete(ctx, userID); err != nil {
		log.Printf("cart delete failed for user %d: %v", userID, err)
	}
	s.mu.Unlock()

	s.notify(userID)
}

// Evict drops the in-memory cart on sign-out. The persisted record stays
// intact and is reloaded when the user signs back in.
func (s *CartStore) Evict(userID int) {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
}

func (s *CartStore) Lines(ctx context.Context, userID int) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(ctx, userID)
	lines := make([]models.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	return lines
}

func (s *CartStore) Total(ctx context.Context, userID int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(ctx, userID).Total()
}

func (s *CartStore) ItemCount(ctx context.Context, userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(ctx, userID).ItemCount()
}

func (s *CartStore) Contains(ctx context.Context, userID, productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(ctx, userID).Line(productID) != nil
}

func (s *CartStore) QuantityOf(ctx context.Context, userID, productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line := s.cart(ctx, userID).Line(productID); line != nil {
		return line.Quantity
	}
	return 0
}

// persist writes the cart back after a mutation. A write failure is logged
// and swallowed: the in-memory cart stays authoritative for this session.
// Callers must hold s.mu.
func (s *CartStore) persist(ctx context.Context, cart *models.Cart) {
	cart.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, cart); err != nil {
		log.Printf("cart save failed for user %d: %v", cart.UserID, err)
	}
}

func (s *CartStore) notify(userID int) {
	s.mu.RLock()
	subs := make([]func(int), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(userID)
	}
}
