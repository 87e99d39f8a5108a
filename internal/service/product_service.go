package service

import (
	"context"
	"log/slog"

	"github.com/iyhunko/antique-store-api/internal/metrics"
	"github.com/iyhunko/antique-store-api/internal/model"
	"github.com/iyhunko/antique-store-api/internal/repository"
)

const (
	publishSent   = "sent"
	publishFailed = "failed"
)

// ProductRepository is the subset of repository.ProductRepository the service depends on.
type ProductRepository interface {
	ListAll(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (model.Product, error)
	GetByTag(ctx context.Context, tag string) ([]model.Product, error)
	GetByName(ctx context.Context, name string) ([]model.Product, error)
	GetByNameAndTag(ctx context.Context, name, tag string) ([]model.Product, error)
	Create(ctx context.Context, in model.ProductInput) (repository.Mutation, error)
	Update(ctx context.Context, id int64, in model.ProductInput) (repository.Mutation, error)
	DeleteByID(ctx context.Context, id int64) (repository.Mutation, error)
	DeleteByName(ctx context.Context, name string) (repository.Mutation, error)
}

// EventPublisher delivers product change notifications.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event model.ProductEvent) error
}

// ProductService adds metrics and change notifications on top of the product repository.
type ProductService struct {
	repo      ProductRepository
	publisher EventPublisher
}

// NewProductService creates a ProductService. A nil publisher disables notifications.
func NewProductService(repo ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProducts dispatches on which of name and tag are non-empty.
func (ps *ProductService) ListProducts(ctx context.Context, name, tag string) ([]model.Product, error) {
	switch {
	case name != "" && tag != "":
		return ps.repo.GetByNameAndTag(ctx, name, tag)
	case name != "":
		return ps.repo.GetByName(ctx, name)
	case tag != "":
		return ps.repo.GetByTag(ctx, tag)
	default:
		return ps.repo.ListAll(ctx)
	}
}

func (ps *ProductService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	return ps.repo.GetByID(ctx, id)
}

func (ps *ProductService) CreateProduct(ctx context.Context, in model.ProductInput) ([]model.Product, error) {
	m, err := ps.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	metrics.ProductsCreated.Inc()
	ps.publish(ctx, model.ProductCreated, m.Product)

	return m.Products, nil
}

func (ps *ProductService) UpdateProduct(ctx context.Context, id int64, in model.ProductInput) ([]model.Product, error) {
	m, err := ps.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	metrics.ProductsUpdated.Inc()
	ps.publish(ctx, model.ProductUpdated, m.Product)

	return m.Products, nil
}

func (ps *ProductService) DeleteProduct(ctx context.Context, id int64) ([]model.Product, error) {
	m, err := ps.repo.DeleteByID(ctx, id)
	return ps.deleted(ctx, m, err)
}

// DeleteProductByName removes the first product whose name matches.
func (ps *ProductService) DeleteProductByName(ctx context.Context, name string) ([]model.Product, error) {
	m, err := ps.repo.DeleteByName(ctx, name)
	return ps.deleted(ctx, m, err)
}

func (ps *ProductService) deleted(ctx context.Context, m repository.Mutation, err error) ([]model.Product, error) {
	if err != nil {
		return nil, err
	}

	metrics.ProductsDeleted.Inc()
	ps.publish(ctx, model.ProductDeleted, m.Product)

	return m.Products, nil
}

// publish never fails the request; the change is already committed.
func (ps *ProductService) publish(ctx context.Context, action model.ProductAction, product model.Product) {
	if ps.publisher == nil {
		return
	}

	event := model.NewProductEvent(action, product)
	if err := ps.publisher.PublishProductEvent(ctx, event); err != nil {
		metrics.NotificationsPublished.WithLabelValues(string(action), publishFailed).Inc()
		slog.ErrorContext(ctx, "Failed to send SQS message",
			slog.Any("err", err),
			slog.String("action", string(action)),
			slog.Int64("product_id", product.ID))
		return
	}
	metrics.NotificationsPublished.WithLabelValues(string(action), publishSent).Inc()
}
