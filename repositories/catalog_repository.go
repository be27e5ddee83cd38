package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"urban-canvas/models"
)

// The collaborator is a plain CRUD-over-JSON store (json-server). Its only
// failure modes we distinguish are "endpoint/record missing" and "anything
// else transport-shaped".
var (
	ErrNotFound    = errors.New("not found")
	ErrUnreachable = errors.New("collaborator unreachable")
	// ErrRejected marks a write the collaborator answered with a status
	// other than 201.
	ErrRejected = errors.New("rejected by collaborator")
)

// CatalogRepository reads the product collection from the catalog
// collaborator.
type CatalogRepository struct {
	baseURL string
	client  *http.Client
}

func NewCatalogRepository(baseURL string) *CatalogRepository {
	return &CatalogRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// GetAllProducts fetches the full collection. Records come back raw; the
// query pipeline decides which ones are usable.
func (r *CatalogRepository) GetAllProducts(ctx context.Context) ([]models.ProductRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/products", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: products endpoint", ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnreachable, resp.StatusCode)
	}

	var records []models.ProductRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decoding products: %v", ErrUnreachable, err)
	}
	return records, nil
}

// GetProductByID fetches a single product. A missing or malformed record is
// ErrNotFound.
func (r *CatalogRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnreachable, resp.StatusCode)
	}

	var record models.ProductRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: decoding product: %v", ErrUnreachable, err)
	}
	if !record.Valid() {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	product := record.Product()
	return &product, nil
}
