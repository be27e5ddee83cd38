package repositories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllProductsDecodesCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "p1", "title": "Jacket", "category": "jackets", "price": 60},
			{"id": 2, "title": "Shirt", "category": "shirts"}
		]`))
	}))
	t.Cleanup(srv.Close)

	repo := NewCatalogRepository(srv.URL)
	records, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "p1", records[0].RecordID())
	assert.Equal(t, "2", records[1].RecordID())
	assert.Equal(t, 60.0, records[0].Price)
}

func TestGetAllProductsStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"missing endpoint", http.StatusNotFound, ErrNotFound},
		{"server error", http.StatusInternalServerError, ErrUnreachable},
		{"teapot", http.StatusTeapot, ErrUnreachable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(srv.Close)

			repo := NewCatalogRepository(srv.URL)
			_, err := repo.GetAllProducts(context.Background())
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetAllProductsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	repo := NewCatalogRepository(srv.URL)
	_, err := repo.GetAllProducts(context.Background())
	require.ErrorIs(t, err, ErrUnreachable)
}

func TestGetAllProductsBrokenBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"`))
	}))
	t.Cleanup(srv.Close)

	repo := NewCatalogRepository(srv.URL)
	_, err := repo.GetAllProducts(context.Background())
	require.ErrorIs(t, err, ErrUnreachable)
}

func TestGetProductByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/7":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": 7, "title": "Wool Coat", "category": "coats", "price": 90}`))
		case "/products/ghost":
			// Present in the collection but unusable: no title.
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "ghost", "category": "coats"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	repo := NewCatalogRepository(srv.URL)

	product, err := repo.GetProductByID(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "7", product.ID)
	assert.Equal(t, "Wool Coat", product.Title)

	_, err = repo.GetProductByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	// A malformed record reads as not found, matching the list pipeline
	// which drops it.
	_, err = repo.GetProductByID(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}
