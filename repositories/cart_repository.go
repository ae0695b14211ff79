package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/softwrapstudio-web/Softwrap-Studio/models"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository persists one cart record per user. Load returns
// ErrCartNotFound both for a missing record and for one that fails to
// parse; a corrupt record is indistinguishable from no saved cart.
type CartRepository interface {
	Load(ctx context.Context, userID int) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, userID int) error
}

type RedisCartRepository struct {
	client *redis.Client
}

func NewRedisCartRepository(client *redis.Client) *RedisCartRepository {
	return &RedisCartRepository{client: client}
}

func cartKey(userID int) string {
	return fmt.Sprintf("cart:%d", userID)
}

func (r *RedisCartRepository) Load(ctx context.Context, userID int) (*models.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		log.Printf("discarding unparseable cart record for user %d: %v", userID, err)
		return nil, ErrCartNotFound
	}
	return &cart, nil
}

func (r *RedisCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cartKey(cart.UserID), data, 0).Err()
}

func (r *RedisCartRepository) Delete(ctx context.Context, userID int) error {
	return r.client.Del(ctx, cartKey(userID)).Err()
}

// MemoryCartRepository backs carts when Redis is unavailable, and tests.
type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[int][]byte
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: map[int][]byte{}}
}

func (r *MemoryCartRepository) Load(_ context.Context, userID int) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.carts[userID]
	if !ok {
		return nil, ErrCartNotFound
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, ErrCartNotFound
	}
	return &cart, nil
}

func (r *MemoryCartRepository) Save(_ context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.UserID] = data
	return nil
}

func (r *MemoryCartRepository) Delete(_ context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
