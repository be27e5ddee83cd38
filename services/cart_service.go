package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"urban-canvas/models"
)

var (
	// ErrCartUnavailable is returned when Redis, the cart store, is down.
	ErrCartUnavailable = errors.New("cart storage unavailable")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrBadQuantity     = errors.New("quantity must be at least 1")
)

const (
	cartKeyFormat = "cart:%s"
	cartTTL       = 7 * 24 * time.Hour
)

// CartService keeps carts in Redis, one JSON document per cart id. Cart ids
// are "user:<id>" for logged-in sessions or "guest:<client id>".
type CartService struct{}

func NewCartService() *CartService {
	return &CartService{}
}

func (s *CartService) Get(ctx context.Context, cartID string) (*models.Cart, error) {
	if models.RedisClient == nil {
		return nil, ErrCartUnavailable
	}

	raw, err := models.RedisClient.Get(ctx, fmt.Sprintf(cartKeyFormat, cartID)).Result()
	if err != nil {
		// Missing key is an empty cart.
		return &models.Cart{Lines: []models.CartLine{}}, nil
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return &models.Cart{Lines: []models.CartLine{}}, nil
	}
	if cart.Lines == nil {
		cart.Lines = []models.CartLine{}
	}
	return &cart, nil
}

func (s *CartService) Add(ctx context.Context, cartID string, line models.CartLine) (*models.Cart, error) {
	if line.Quantity < 1 {
		return nil, ErrBadQuantity
	}

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.Upsert(line)
	if err := s.save(ctx, cartID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) SetQuantity(ctx context.Context, cartID, lineKey string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrBadQuantity
	}

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !cart.SetQuantity(lineKey, quantity) {
		return nil, ErrLineNotFound
	}
	if err := s.save(ctx, cartID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Remove(ctx context.Context, cartID, lineKey string) (*models.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !cart.Remove(lineKey) {
		return nil, ErrLineNotFound
	}
	if err := s.save(ctx, cartID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	if models.RedisClient == nil {
		return ErrCartUnavailable
	}
	return models.RedisClient.Del(ctx, fmt.Sprintf(cartKeyFormat, cartID)).Err()
}

func (s *CartService) save(ctx context.Context, cartID string, cart *models.Cart) error {
	if models.RedisClient == nil {
		return ErrCartUnavailable
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return models.RedisClient.Set(ctx, fmt.Sprintf(cartKeyFormat, cartID), raw, cartTTL).Err()
}
