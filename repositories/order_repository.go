package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"urban-canvas/models"
)

// OrderRepository persists orders to the collaborator's /orders collection.
type OrderRepository struct {
	baseURL string
	client  *http.Client
}

func NewOrderRepository(baseURL string) *OrderRepository {
	return &OrderRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Create POSTs the assembled order. Only HTTP 201 counts as success; any
// other status or transport failure is a hard failure for this attempt.
// The collaborator echoes the created record with its assigned id.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: orders endpoint", ErrNotFound)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	// json-server echoes the record with its assigned id, which may be a
	// number. The write already went through, so a broken echo must not
	// fail the checkout.
	created := *order
	var assigned struct {
		ID any `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&assigned); err == nil {
		if id := models.FormatID(assigned.ID); id != "" {
			created.ID = id
		}
	}
	return &created, nil
}
