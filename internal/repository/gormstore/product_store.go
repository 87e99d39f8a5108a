package gormstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iyhunko/antique-store-api/internal/model"
	"github.com/iyhunko/antique-store-api/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const memoryPath = ":memory:"

// productRecord is the gorm mapping of model.Product.
// Price is kept as text so SQLite never coerces it to a float.
type productRecord struct {
	ID    int64           `gorm:"primaryKey;autoIncrement"`
	Name  string          `gorm:"not null"`
	Price decimal.Decimal `gorm:"type:text;not null"`
	URL   string          `gorm:"not null;default:''"`
	Tag   string          `gorm:"not null;index"`
}

func (productRecord) TableName() string {
	return "products"
}

func (r productRecord) toModel() model.Product {
	return model.Product{ID: r.ID, Name: r.Name, Price: r.Price, URL: r.URL, Tag: r.Tag}
}

// Open opens the SQLite database at path and creates the products table.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if path == memoryPath {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&productRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate products table: %w", err)
	}
	slog.Info("SQLite database ready", slog.String("path", path))
	return db, nil
}

// ProductStore implements repository.Store on top of gorm.
type ProductStore struct {
	db *gorm.DB
}

// NewProductStore creates a new gorm backed ProductStore.
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// Get retrieves a single product by ID.
func (s *ProductStore) Get(ctx context.Context, id int64) (model.Product, error) {
	var rec productRecord
	result := s.db.WithContext(ctx).Where(repository.IDField+" = ?", id).Limit(1).Find(&rec)
	if result.Error != nil {
		return model.Product{}, repository.NewStoreError("get", fmt.Errorf("failed to find product: %w", result.Error))
	}
	if result.RowsAffected == 0 {
		return model.Product{}, repository.ErrNotFound
	}
	return rec.toModel(), nil
}

// Query retrieves the products matching filter ordered by id.
func (s *ProductStore) Query(ctx context.Context, filter repository.Filter) ([]model.Product, error) {
	dbQuery := s.db.WithContext(ctx).Model(&productRecord{})
	if filter.Name != nil {
		name := *filter.Name
		dbQuery = dbQuery.Where("(substr(name, 1, length(?)) = ? OR substr(name, -length(?)) = ?)", name, name, name, name)
	}
	if filter.Tag != nil {
		dbQuery = dbQuery.Where(repository.TagField+" = ?", *filter.Tag)
	}
	if filter.Limit > 0 {
		dbQuery = dbQuery.Limit(filter.Limit)
	}
	return s.find(dbQuery, "query")
}

// ListAll retrieves every product ordered by id.
func (s *ProductStore) ListAll(ctx context.Context) ([]model.Product, error) {
	return s.find(s.db.WithContext(ctx).Model(&productRecord{}), "list")
}

func (s *ProductStore) find(dbQuery *gorm.DB, op string) ([]model.Product, error) {
	var records []productRecord
	if err := dbQuery.Order(repository.IDField).Find(&records).Error; err != nil {
		return nil, repository.NewStoreError(op, fmt.Errorf("failed to list products: %w", err))
	}

	products := make([]model.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, rec.toModel())
	}
	return products, nil
}

// Insert creates the product and returns it with the generated id.
func (s *ProductStore) Insert(ctx context.Context, product model.Product) (model.Product, error) {
	rec := productRecord{Name: product.Name, Price: product.Price, URL: product.URL, Tag: product.Tag}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return model.Product{}, repository.NewStoreError("insert", fmt.Errorf("failed to create product: %w", err))
	}
	return rec.toModel(), nil
}

// Update overwrites every column except id.
func (s *ProductStore) Update(ctx context.Context, product model.Product) error {
	// a map keeps gorm from skipping empty strings
	result := s.db.WithContext(ctx).Model(&productRecord{}).
		Where(repository.IDField+" = ?", product.ID).
		Updates(map[string]any{
			repository.NameField:  product.Name,
			repository.PriceField: product.Price,
			repository.URLField:   product.URL,
			repository.TagField:   product.Tag,
		})
	if result.Error != nil {
		return repository.NewStoreError("update", fmt.Errorf("failed to update product: %w", result.Error))
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete deletes a product by ID.
func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return repository.NewStoreError("delete", fmt.Errorf("failed to delete product: %w", result.Error))
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
