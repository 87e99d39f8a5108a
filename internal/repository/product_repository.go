package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iyhunko/antique-store-api/internal/metrics"
	"github.com/iyhunko/antique-store-api/internal/model"
)

// Mutation is the outcome of a create, update or delete.
type Mutation struct {
	// Product is the record that was created, updated or removed.
	Product model.Product
	// Products is the full listing after the change, in natural order.
	Products []model.Product
}

// ProductRepository owns every read and write of the product collection.
// It holds no state of its own; each call goes straight to the Store.
type ProductRepository struct {
	store Store
}

// NewProductRepository creates a ProductRepository on top of the given store.
func NewProductRepository(store Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// ListAll returns every product in insertion order.
func (r *ProductRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	products, err := r.store.ListAll(ctx)
	r.record(ctx, "list_all", err)
	if err != nil {
		return nil, err
	}
	return orEmpty(products), nil
}

// GetByID returns the product with the given id or ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (model.Product, error) {
	product, err := r.store.Get(ctx, id)
	r.record(ctx, "get_by_id", err)
	if err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// GetByTag returns the products whose tag equals tag exactly.
func (r *ProductRepository) GetByTag(ctx context.Context, tag string) ([]model.Product, error) {
	return r.query(ctx, "get_by_tag", *NewFilter().WithTag(tag))
}

// GetByName returns the products whose name starts with or ends with name.
func (r *ProductRepository) GetByName(ctx context.Context, name string) ([]model.Product, error) {
	return r.query(ctx, "get_by_name", *NewFilter().WithName(name))
}

// GetByNameAndTag returns the products matching both the name rule and the exact tag.
func (r *ProductRepository) GetByNameAndTag(ctx context.Context, name, tag string) ([]model.Product, error) {
	return r.query(ctx, "get_by_name_and_tag", *NewFilter().WithName(name).WithTag(tag))
}

// Create stores a new product and returns it together with the full listing.
// Duplicate names and tags are allowed.
func (r *ProductRepository) Create(ctx context.Context, in model.ProductInput) (Mutation, error) {
	if err := validate(in); err != nil {
		r.record(ctx, "create", err)
		return Mutation{}, err
	}

	var product model.Product
	in.ApplyTo(&product)

	created, err := r.store.Insert(ctx, product)
	if err != nil {
		r.record(ctx, "create", err)
		return Mutation{}, err
	}
	return r.mutation(ctx, "create", created)
}

// Update overwrites name, price, url and tag of the product with the given id.
// It returns ErrNotFound without mutating anything when the id is unknown.
func (r *ProductRepository) Update(ctx context.Context, id int64, in model.ProductInput) (Mutation, error) {
	if err := validate(in); err != nil {
		r.record(ctx, "update", err)
		return Mutation{}, err
	}

	product, err := r.store.Get(ctx, id)
	if err != nil {
		r.record(ctx, "update", err)
		return Mutation{}, err
	}

	in.ApplyTo(&product)
	if err := r.store.Update(ctx, product); err != nil {
		r.record(ctx, "update", err)
		return Mutation{}, err
	}
	return r.mutation(ctx, "update", product)
}

// DeleteByID removes the product with the given id.
func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) (Mutation, error) {
	product, err := r.store.Get(ctx, id)
	if err != nil {
		r.record(ctx, "delete_by_id", err)
		return Mutation{}, err
	}
	return r.delete(ctx, "delete_by_id", product)
}

// DeleteByName removes only the first product, in natural order, whose name
// starts with or ends with name. Further matches are left untouched.
func (r *ProductRepository) DeleteByName(ctx context.Context, name string) (Mutation, error) {
	matches, err := r.store.Query(ctx, *NewFilter().WithName(name).WithLimit(1))
	if err != nil {
		r.record(ctx, "delete_by_name", err)
		return Mutation{}, err
	}
	if len(matches) == 0 {
		r.record(ctx, "delete_by_name", ErrNotFound)
		return Mutation{}, ErrNotFound
	}
	return r.delete(ctx, "delete_by_name", matches[0])
}

func (r *ProductRepository) delete(ctx context.Context, op string, product model.Product) (Mutation, error) {
	if err := r.store.Delete(ctx, product.ID); err != nil {
		r.record(ctx, op, err)
		return Mutation{}, err
	}
	return r.mutation(ctx, op, product)
}

func (r *ProductRepository) query(ctx context.Context, op string, filter Filter) ([]model.Product, error) {
	products, err := r.store.Query(ctx, filter)
	r.record(ctx, op, err)
	if err != nil {
		return nil, err
	}
	return orEmpty(products), nil
}

// mutation completes a successful write by loading the post-change listing.
func (r *ProductRepository) mutation(ctx context.Context, op string, product model.Product) (Mutation, error) {
	products, err := r.store.ListAll(ctx)
	r.record(ctx, op, err)
	if err != nil {
		return Mutation{}, err
	}
	return Mutation{Product: product, Products: orEmpty(products)}, nil
}

func (r *ProductRepository) record(ctx context.Context, op string, err error) {
	outcome := Outcome(err)
	metrics.RecordRepositoryOperation(op, outcome)
	if outcome == OutcomeError {
		slog.ErrorContext(ctx, "product repository operation failed", slog.String("operation", op), slog.Any("err", err))
	}
}

const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Outcome classifies an operation result for metrics and logs.
func Outcome(err error) string {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case errors.As(err, &validationErr):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

func validate(in model.ProductInput) error {
	if missing := in.MissingFields(); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if invalid := in.InvalidFields(); len(invalid) > 0 {
		return &ValidationError{Invalid: invalid}
	}
	return nil
}

func orEmpty(products []model.Product) []model.Product {
	if products == nil {
		return []model.Product{}
	}
	return products
}
