package memory

import (
	"context"
	"sync"

	"github.com/iyhunko/antique-store-api/internal/model"
	"github.com/iyhunko/antique-store-api/internal/repository"
)

// ProductStore is an in-memory implementation of repository.Store.
// Products are kept in insertion order; ids start at 1 and are never reused.
type ProductStore struct {
	mu       sync.RWMutex
	products []model.Product
	lastID   int64
}

// NewProductStore creates an empty in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{}
}

// Get returns the product with the given id.
func (s *ProductStore) Get(ctx context.Context, id int64) (model.Product, error) {
	if err := ctx.Err(); err != nil {
		return model.Product{}, repository.NewStoreError("get", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Product{}, repository.ErrNotFound
	}
	return s.products[i], nil
}

// Query returns the products matching filter in insertion order.
func (s *ProductStore) Query(ctx context.Context, filter repository.Filter) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.NewStoreError("query", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []model.Product{}
	for _, p := range s.products {
		if !filter.Matches(p) {
			continue
		}
		result = append(result, p)
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

// Insert assigns the next id to product and stores it.
func (s *ProductStore) Insert(ctx context.Context, product model.Product) (model.Product, error) {
	if err := ctx.Err(); err != nil {
		return model.Product{}, repository.NewStoreError("insert", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	product.ID = s.lastID
	s.products = append(s.products, product)
	return product, nil
}

// Update replaces the stored product carrying the same id.
func (s *ProductStore) Update(ctx context.Context, product model.Product) error {
	if err := ctx.Err(); err != nil {
		return repository.NewStoreError("update", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(product.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.products[i] = product
	return nil
}

// Delete removes the product with the given id.
func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return repository.NewStoreError("delete", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return nil
}

// ListAll returns a copy of every stored product.
func (s *ProductStore) ListAll(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.NewStoreError("list", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Product, len(s.products))
	copy(result, s.products)
	return result, nil
}

// indexOf must be called with the lock held.
func (s *ProductStore) indexOf(id int64) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
