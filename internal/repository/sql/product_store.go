package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iyhunko/antique-store-api/internal/model"
	"github.com/iyhunko/antique-store-api/internal/repository"
)

const productColumns = "id, name, price, url, tag"

// ProductStore implements repository.Store for PostgreSQL.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore instance.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

// withConn runs fn on a connection reserved for the duration of one operation.
// The connection goes back to the pool on every exit path.
func (s *ProductStore) withConn(ctx context.Context, op string, fn func(executor dbExecutor) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return repository.NewStoreError(op, fmt.Errorf("failed to acquire connection: %w", err))
	}
	defer conn.Close()

	return fn(conn)
}

// Get retrieves a single product by ID.
func (s *ProductStore) Get(ctx context.Context, id int64) (model.Product, error) {
	var result model.Product
	err := s.withConn(ctx, "get", func(executor dbExecutor) error {
		stmt, err := executor.PrepareContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1")
		if err != nil {
			return repository.NewStoreError("get", fmt.Errorf("failed to prepare select statement: %w", err))
		}
		defer stmt.Close()

		err = stmt.QueryRowContext(ctx, id).Scan(&result.ID, &result.Name, &result.Price, &result.URL, &result.Tag)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return repository.NewStoreError("get", fmt.Errorf("failed to query product: %w", err))
		}
		return nil
	})
	if err != nil {
		return model.Product{}, err
	}
	return result, nil
}

// Query retrieves the products matching filter ordered by id.
func (s *ProductStore) Query(ctx context.Context, filter repository.Filter) ([]model.Product, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + productColumns + " FROM products WHERE 1=1")

	var args []interface{}
	argIndex := 1

	if filter.Name != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND (left(name, length($%d)) = $%d OR right(name, length($%d)) = $%d)", argIndex, argIndex, argIndex, argIndex))
		args = append(args, *filter.Name)
		argIndex++
	}

	if filter.Tag != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND tag = $%d", argIndex))
		args = append(args, *filter.Tag)
		argIndex++
	}

	queryBuilder.WriteString(" ORDER BY id")

	if filter.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argIndex))
		args = append(args, filter.Limit)
	}

	return s.list(ctx, "query", queryBuilder.String(), args...)
}

// ListAll retrieves every product ordered by id.
func (s *ProductStore) ListAll(ctx context.Context) ([]model.Product, error) {
	return s.list(ctx, "list", "SELECT "+productColumns+" FROM products ORDER BY id")
}

func (s *ProductStore) list(ctx context.Context, op, query string, args ...interface{}) ([]model.Product, error) {
	products := []model.Product{}
	err := s.withConn(ctx, op, func(executor dbExecutor) error {
		stmt, err := executor.PrepareContext(ctx, query)
		if err != nil {
			return repository.NewStoreError(op, fmt.Errorf("failed to prepare select statement: %w", err))
		}
		defer stmt.Close()

		rows, err := stmt.QueryContext(ctx, args...)
		if err != nil {
			return repository.NewStoreError(op, fmt.Errorf("failed to query products: %w", err))
		}
		defer rows.Close()

		for rows.Next() {
			var product model.Product
			if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.URL, &product.Tag); err != nil {
				return repository.NewStoreError(op, fmt.Errorf("failed to scan product: %w", err))
			}
			products = append(products, product)
		}

		if err := rows.Err(); err != nil {
			return repository.NewStoreError(op, fmt.Errorf("error iterating rows: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Insert inserts a new product and returns it with the generated id.
func (s *ProductStore) Insert(ctx context.Context, product model.Product) (model.Product, error) {
	query := `INSERT INTO products (name, price, url, tag)
	          VALUES ($1, $2, $3, $4) RETURNING id`

	err := s.withConn(ctx, "insert", func(executor dbExecutor) error {
		stmt, err := executor.PrepareContext(ctx, query)
		if err != nil {
			return repository.NewStoreError("insert", fmt.Errorf("failed to prepare insert statement: %w", err))
		}
		defer stmt.Close()

		err = stmt.QueryRowContext(ctx, product.Name, product.Price, product.URL, product.Tag).Scan(&product.ID)
		if err != nil {
			return repository.NewStoreError("insert", fmt.Errorf("failed to insert product: %w", err))
		}
		return nil
	})
	if err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// Update overwrites every column except id.
func (s *ProductStore) Update(ctx context.Context, product model.Product) error {
	query := `UPDATE products SET name = $1, price = $2, url = $3, tag = $4 WHERE id = $5`
	return s.exec(ctx, "update", query, product.Name, product.Price, product.URL, product.Tag, product.ID)
}

// Delete deletes a product by ID.
func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete", `DELETE FROM products WHERE id = $1`, id)
}

// exec runs a single-row write and maps zero affected rows to ErrNotFound.
func (s *ProductStore) exec(ctx context.Context, op, query string, args ...interface{}) error {
	return s.withConn(ctx, op, func(executor dbExecutor) error {
		stmt, err := executor.PrepareContext(ctx, query)
		if err != nil {
			return repository.NewStoreError(op, fmt.Errorf("failed to prepare %s statement: %w", op, err))
		}
		defer stmt.Close()

		result, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return repository.NewStoreError(op, fmt.Errorf("failed to %s product: %w", op, err))
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return repository.NewStoreError(op, fmt.Errorf("failed to get rows affected: %w", err))
		}

		if rowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}
