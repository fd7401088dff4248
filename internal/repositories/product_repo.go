package repositories

import (
	"context"
	"errors"

	"toko/internal/models"
)

// ErrProductNotFound is returned (wrapped) when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
// List returns products newest first together with the total row count.
type ProductRepository interface {
	List(ctx context.Context, offset, limit int) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}
