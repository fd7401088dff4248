package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"toko/internal/database"
	"toko/internal/models"
	"toko/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repositoriesUnderTest(t *testing.T) map[string]repositories.ProductRepository {
	t.Helper()
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)

	return map[string]repositories.ProductRepository{
		"gorm": repositories.NewGORMProductRepository(db),
		"mock": repositories.NewMockProductRepository(),
	}
}

func newProduct(title string) *models.Product {
	return &models.Product{
		Image:       uuid.NewString() + ".png",
		Title:       title,
		Description: "Seeded for repository tests",
		Price:       decimal.RequireFromString("12.75"),
		Stock:       decimal.RequireFromString("2.5"),
	}
}

func TestProductRepository_CRUD(t *testing.T) {
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			product := newProduct("Mechanical Keyboard")
			require.NoError(t, repo.Create(ctx, product))
			assert.NotZero(t, product.ID)
			assert.False(t, product.CreatedAt.IsZero())

			fetched, err := repo.GetByID(ctx, product.ID)
			require.NoError(t, err)
			assert.Equal(t, "Mechanical Keyboard", fetched.Title)
			assert.True(t, decimal.RequireFromString("12.75").Equal(fetched.Price))
			assert.True(t, decimal.RequireFromString("2.5").Equal(fetched.Stock))

			fetched.Title = "Mechanical Keyboard TKL"
			fetched.Stock = decimal.Zero
			require.NoError(t, repo.Update(ctx, fetched))

			updated, err := repo.GetByID(ctx, product.ID)
			require.NoError(t, err)
			assert.Equal(t, "Mechanical Keyboard TKL", updated.Title)
			assert.True(t, updated.Stock.IsZero())
			assert.Equal(t, product.Image, updated.Image)

			require.NoError(t, repo.Delete(ctx, product.ID))
			_, err = repo.GetByID(ctx, product.ID)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
		})
	}
}

func TestProductRepository_NotFound(t *testing.T) {
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.GetByID(ctx, 404)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)

			missing := newProduct("Missing Product")
			missing.ID = 404
			assert.ErrorIs(t, repo.Update(ctx, missing), repositories.ErrProductNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, 404), repositories.ErrProductNotFound)

			_, total, err := repo.List(ctx, 0, 10)
			require.NoError(t, err)
			assert.Zero(t, total)
		})
	}
}

func TestProductRepository_ListNewestFirst(t *testing.T) {
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Now().Add(-time.Hour)

			for i := 0; i < 5; i++ {
				p := newProduct(fmt.Sprintf("Product %d", i))
				p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
				require.NoError(t, repo.Create(ctx, p))
			}

			page, total, err := repo.List(ctx, 0, 3)
			require.NoError(t, err)
			assert.Equal(t, int64(5), total)
			require.Len(t, page, 3)
			assert.Equal(t, "Product 4", page[0].Title)
			assert.Equal(t, "Product 2", page[2].Title)

			rest, _, err := repo.List(ctx, 3, 3)
			require.NoError(t, err)
			require.Len(t, rest, 2)
			assert.Equal(t, "Product 0", rest[1].Title)

			beyond, _, err := repo.List(ctx, 10, 3)
			require.NoError(t, err)
			assert.Empty(t, beyond)
		})
	}
}
