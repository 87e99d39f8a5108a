//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/iyhunko/antique-store-api/internal/model"
	"github.com/iyhunko/antique-store-api/internal/repository"
	reposql "github.com/iyhunko/antique-store-api/internal/repository/sql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func input(name, price, tag string) model.ProductInput {
	return model.ProductInput{Name: ptr(name), Price: ptr(decimal.RequireFromString(price)), Tag: ptr(tag)}
}

func TestProductRepository_Postgres_Integration(t *testing.T) {
	testDB := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewProductRepository(reposql.NewProductStore(testDB.DB))

	seed := func(t *testing.T) {
		t.Helper()
		testDB.TruncateTables(t)
		for _, in := range []model.ProductInput{
			input("Ming Vase", "1200.50", "ceramics"),
			input("Vase", "30.00", "glass"),
			input("Vaseline Tin", "5.00", "tins"),
			input("Glass Vase", "70.00", "Glass"),
		} {
			_, err := repo.Create(ctx, in)
			require.NoError(t, err)
		}
	}

	names := func(products []model.Product) []string {
		var result []string
		for _, p := range products {
			result = append(result, p.Name)
		}
		return result
	}

	t.Run("name matches prefix or suffix, case-sensitive", func(t *testing.T) {
		seed(t)

		products, err := repo.GetByName(ctx, "Vase")
		require.NoError(t, err)
		assert.Equal(t, []string{"Ming Vase", "Vase", "Vaseline Tin", "Glass Vase"}, names(products))

		products, err = repo.GetByName(ctx, "vase")
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("tag is exact", func(t *testing.T) {
		seed(t)

		products, err := repo.GetByTag(ctx, "glass")
		require.NoError(t, err)
		assert.Equal(t, []string{"Vase"}, names(products))
	})

	t.Run("name and tag", func(t *testing.T) {
		seed(t)

		products, err := repo.GetByNameAndTag(ctx, "Vase", "Glass")
		require.NoError(t, err)
		assert.Equal(t, []string{"Glass Vase"}, names(products))
	})

	t.Run("price keeps two decimal places", func(t *testing.T) {
		testDB.TruncateTables(t)

		m, err := repo.Create(ctx, input("Coin", "19.999", "coins"))
		require.NoError(t, err)

		found, err := repo.GetByID(ctx, m.Product.ID)
		require.NoError(t, err)
		assert.Equal(t, "20.00", found.Price.StringFixed(2))
		assert.Equal(t, "", found.URL)
	})

	t.Run("update replaces every field", func(t *testing.T) {
		seed(t)

		m, err := repo.Update(ctx, 2, model.ProductInput{
			Name:  ptr("Crystal Vase"),
			Price: ptr(decimal.RequireFromString("45.00")),
			URL:   ptr("https://img.example.com/crystal.png"),
			Tag:   ptr("crystal"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), m.Product.ID)
		assert.Len(t, m.Products, 4)

		found, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Crystal Vase", found.Name)
		assert.Equal(t, "https://img.example.com/crystal.png", found.URL)

		_, err = repo.Update(ctx, 99, input("x", "1", "y"))
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete by name removes only the lowest id match", func(t *testing.T) {
		seed(t)

		m, err := repo.DeleteByName(ctx, "Vase")
		require.NoError(t, err)
		assert.Equal(t, "Ming Vase", m.Product.Name)
		assert.Equal(t, []string{"Vase", "Vaseline Tin", "Glass Vase"}, names(m.Products))

		_, err = repo.DeleteByName(ctx, "Lamp")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		seed(t)

		_, err := repo.DeleteByID(ctx, 4)
		require.NoError(t, err)

		m, err := repo.Create(ctx, input("Lamp", "10.00", "lighting"))
		require.NoError(t, err)
		assert.Equal(t, int64(5), m.Product.ID)
	})

	t.Run("concurrent creates get distinct ids", func(t *testing.T) {
		testDB.TruncateTables(t)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Create(ctx, input("Coin", "1.00", "coins"))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		products, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 20)
	})
}
