package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/softwrapstudio-web/Softwrap-Studio/models"
)

var ErrNoShippingAddress = errors.New("no shipping address on file")

// handoffTTL bounds how long a validated address waits for its payment
// step before checkout must be redone.
const handoffTTL = 30 * time.Minute

// HandoffRepository bridges checkout to payment: the validated shipping
// address is written here on submit and read back by the payment flow.
// It is deleted only after a successful payment, so a cancelled attempt
// keeps the address.
type HandoffRepository interface {
	Save(ctx context.Context, userID int, addr *models.ShippingAddress) error
	Load(ctx context.Context, userID int) (*models.ShippingAddress, error)
	Delete(ctx context.Context, userID int) error
}

type RedisHandoffRepository struct {
	client *redis.Client
}

func NewRedisHandoffRepository(client *redis.Client) *RedisHandoffRepository {
	return &RedisHandoffRepository{client: client}
}

func handoffKey(userID int) string {
	return fmt.Sprintf("shipping:%d", userID)
}

func (r *RedisHandoffRepository) Save(ctx context.Context, userID int, addr *models.ShippingAddress) error {
	data, err := json.Marshal(addr)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, handoffKey(userID), data, handoffTTL).Err()
}

func (r *RedisHandoffRepository) Load(ctx context.Context, userID int) (*models.ShippingAddress, error) {
	data, err := r.client.Get(ctx, handoffKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNoShippingAddress
	}
	if err != nil {
		return nil, err
	}

	var addr models.ShippingAddress
	if err := json.Unmarshal(data, &addr); err != nil {
		return nil, ErrNoShippingAddress
	}
	return &addr, nil
}

func (r *RedisHandoffRepository) Delete(ctx context.Context, userID int) error {
	return r.client.Del(ctx, handoffKey(userID)).Err()
}

type MemoryHandoffRepository struct {
	mu    sync.RWMutex
	addrs map[int]models.ShippingAddress
}

func NewMemoryHandoffRepository() *MemoryHandoffRepository {
	return &MemoryHandoffRepository{addrs: map[int]models.ShippingAddress{}}
}

func (r *MemoryHandoffRepository) Save(_ context.Context, userID int, addr *models.ShippingAddress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addrs[userID] = *addr
	return nil
}

func (r *MemoryHandoffRepository) Load(_ context.Context, userID int) (*models.ShippingAddress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	addr, ok := r.addrs[userID]
	if !ok {
		return nil, ErrNoShippingAddress
	}
	return &addr, nil
}

func (r *MemoryHandoffRepository) Delete(_ context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.addrs, userID)
	return nil
}
