package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/iyhunko/antique-store-api/internal/model"
)

var (
	// ErrNotFound is returned when an id or name lookup matched no product.
	ErrNotFound = errors.New("product not found")
)

// Store is the backing store capability the product repository is built on.
// Implementations return ErrNotFound from Get, Update and Delete for unknown ids
// and wrap every other failure in a *StoreError.
type Store interface {
	Get(ctx context.Context, id int64) (model.Product, error)
	Query(ctx context.Context, filter Filter) ([]model.Product, error)
	Insert(ctx context.Context, product model.Product) (model.Product, error)
	Update(ctx context.Context, product model.Product) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]model.Product, error)
}

// ValidationError reports required product fields missing from an input,
// or present fields whose values are out of range.
type ValidationError struct {
	Fields  []string
	Invalid []string
}

func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return "product fields out of range: " + strings.Join(v.Invalid, ", ")
	}
	return "missing required product fields: " + strings.Join(v.Fields, ", ")
}

// StoreError wraps a failure of the backing store itself.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err as a backing store failure of operation op.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (s *StoreError) Error() string {
	return "backing store " + s.Op + ": " + s.Err.Error()
}

func (s *StoreError) Unwrap() error {
	return s.Err
}
