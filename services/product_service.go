package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"urban-canvas/models"
	"urban-canvas/repositories"
)

// PageSize is the storefront grid's fixed window.
const PageSize = 9

// Sort criteria accepted by the query pipeline. Anything else leaves the
// collaborator's order untouched.
const (
	SortPriceAsc   = "price-asc"
	SortPriceDesc  = "price-desc"
	SortPopularity = "popularity"
)

type ProductQuery struct {
	Search   string
	Sort     string
	Category string
	Page     int // 1-based; ignored when Limit is set
	Limit    int // 0 means no limit
}

type QueryResult struct {
	Items   []models.Product
	Total   int // filtered set size before windowing
	Showing int
}

// ShopState is the observer contract: the latest "Showing N of Total"
// counters, updated by every completed query.
type ShopState struct {
	Showing    int `json:"showing"`
	TotalItems int `json:"total_items"`
}

// ProductService runs the query pipeline: fetch, drop malformed records,
// search filter, category filter, sort, window.
type ProductService struct {
	repo *repositories.CatalogRepository

	// Queries are tagged with a monotonically increasing sequence so a
	// slow, superseded fetch cannot clobber the state published by a
	// fresher one.
	seq     atomic.Uint64
	mu      sync.Mutex
	applied uint64
	state   ShopState
}

func NewProductService(repo *repositories.CatalogRepository) *ProductService {
	return &ProductService{repo: repo}
}

// Query executes the pipeline stages in fixed order. Total counts the
// filtered set independently of the window, which is what the grid's
// "Showing N of Total" line displays.
func (s *ProductService) Query(ctx context.Context, q ProductQuery) (*QueryResult, error) {
	seq := s.seq.Add(1)

	records, err := s.repo.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	products := filterValid(records)
	products = filterBySearch(products, q.Search)
	products = filterByCategory(products, q.Category)
	total := len(products)

	products = sortProducts(products, q.Sort)
	items := window(products, q.Page, q.Limit)

	result := &QueryResult{Items: items, Total: total, Showing: len(items)}
	s.publish(seq, result)
	return result, nil
}

// RestoreState republishes counters served from a cached response, so the
// observer stays in step with what the client was actually shown. Takes a
// fresh sequence slot like any other query.
func (s *ProductService) RestoreState(showing, total int) {
	s.publish(s.seq.Add(1), &QueryResult{Showing: showing, Total: total})
}

// State returns the most recently published counters.
func (s *ProductService) State() ShopState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ProductService) publish(seq uint64, result *QueryResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		// A newer query already published; this response is stale.
		return
	}
	s.applied = seq
	s.state = ShopState{Showing: result.Showing, TotalItems: result.Total}
}

// GetProductByID is the single-product view fetch.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

// SimilarProducts returns up to three other valid products from the same
// category, in collaborator order.
func (s *ProductService) SimilarProducts(ctx context.Context, product *models.Product) ([]models.Product, error) {
	records, err := s.repo.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	similar := []models.Product{}
	for _, p := range filterValid(records) {
		if p.Category == product.Category && p.ID != product.ID {
			similar = append(similar, p)
			if len(similar) == 3 {
				break
			}
		}
	}
	return similar, nil
}

// Categories lists the distinct categories of valid products, sorted.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	records, err := s.repo.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	categories := []string{}
	for _, p := range filterValid(records) {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// filterValid drops malformed records silently.
func filterValid(records []models.ProductRecord) []models.Product {
	products := make([]models.Product, 0, len(records))
	for _, r := range records {
		if r.Valid() {
			products = append(products, r.Product())
		}
	}
	return products
}

// filterBySearch keeps products whose lower-cased title contains the
// lower-cased query. An empty query matches everything.
func filterBySearch(products []models.Product, query string) []models.Product {
	q := strings.ToLower(query)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, p)
		}
	}
	return out
}

// filterByCategory keeps products whose lower-cased category equals the
// filter exactly. Empty category keeps everything.
func filterByCategory(products []models.Product, category string) []models.Product {
	if category == "" {
		return products
	}
	want := strings.ToLower(category)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.ToLower(p.Category) == want {
			out = append(out, p)
		}
	}
	return out
}

// sortProducts sorts a copy; the filtered set is never mutated in place.
// Missing price or popularity decoded to 0 already.
func sortProducts(products []models.Product, criteria string) []models.Product {
	switch criteria {
	case SortPriceAsc, SortPriceDesc, SortPopularity:
	default:
		return products
	}

	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	switch criteria {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case SortPopularity:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Popularity > sorted[j].Popularity })
	}
	return sorted
}

// window applies the limit when given (featured previews), otherwise the
// fixed 9-per-page window, otherwise returns everything.
func window(products []models.Product, page, limit int) []models.Product {
	if limit > 0 {
		if limit > len(products) {
			limit = len(products)
		}
		return products[:limit]
	}
	if page > 0 {
		start := (page - 1) * PageSize
		if start >= len(products) {
			return []models.Product{}
		}
		end := start + PageSize
		if end > len(products) {
			end = len(products)
		}
		return products[start:end]
	}
	return products
}
