package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"toko/internal/models"
	"toko/internal/repositories"
	"toko/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	// PerPage is the number of products on one listing page.
	PerPage = 10
	// ImageDir is the storage directory holding product images.
	ImageDir = "products"
)

// EventPublisher receives product lifecycle events.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ImageUpload is an already validated image file.
type ImageUpload struct {
	Content   []byte
	MimeType  string
	Extension string
}

// CreateProductCommand holds validated input for a new product.
type CreateProductCommand struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Stock       decimal.Decimal
	Image       ImageUpload
}

// UpdateProductCommand holds validated input for an existing product.
// A nil Image keeps the current one.
type UpdateProductCommand struct {
	ID          uint
	Title       string
	Description string
	Price       decimal.Decimal
	Stock       decimal.Decimal
	Image       *ImageUpload
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Products    []models.Product `json:"products"`
	CurrentPage int              `json:"current_page"`
	PerPage     int              `json:"per_page"`
	Total       int64            `json:"total"`
	LastPage    int              `json:"last_page"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	storage   storage.Storage
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, store storage.Storage, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		storage:   store,
		publisher: publisher,
	}
}

// ImagePath returns the storage path of a product image filename.
func ImagePath(filename string) string {
	return path.Join(ImageDir, filename)
}

// ListProducts returns the requested page, newest products first.
// Pages below 1 are treated as the first page.
func (s *ProductService) ListProducts(ctx context.Context, page int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	products, total, err := s.repo.List(ctx, (page-1)*PerPage, PerPage)
	if err != nil {
		return nil, err
	}

	lastPage := int((total + PerPage - 1) / PerPage)
	if lastPage < 1 {
		lastPage = 1
	}
	return &ProductPage{
		Products:    products,
		CurrentPage: page,
		PerPage:     PerPage,
		Total:       total,
		LastPage:    lastPage,
	}, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct stores the image and then creates the product row referencing it.
func (s *ProductService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*models.Product, error) {
	filename, err := s.storeImage(ctx, cmd.Image)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Image:       filename,
		Title:       cmd.Title,
		Description: cmd.Description,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		if delErr := s.storage.Delete(ctx, ImagePath(filename)); delErr != nil {
			log.Warn().Err(delErr).Str("image", filename).Msg("failed to remove image of unsaved product")
		}
		return nil, err
	}

	log.Info().Uint("product_id", product.ID).Str("image", product.Image).Msg("product created")
	s.publish(models.ProductCreated, *product)
	return product, nil
}

// UpdateProduct rewrites the product fields. When a new image is given it is
// stored first and the previous file is removed.
func (s *ProductService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Image != nil {
		filename, err := s.storeImage(ctx, *cmd.Image)
		if err != nil {
			return nil, err
		}
		if err := s.storage.Delete(ctx, ImagePath(product.Image)); err != nil {
			return nil, err
		}
		product.Image = filename
	}

	product.Title = cmd.Title
	product.Description = cmd.Description
	product.Price = cmd.Price
	product.Stock = cmd.Stock

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	log.Info().Uint("product_id", product.ID).Bool("image_replaced", cmd.Image != nil).Msg("product updated")
	s.publish(models.ProductUpdated, *product)
	return product, nil
}

// DeleteProduct removes the product image and then the product row.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, ImagePath(product.Image)); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Uint("product_id", id).Msg("product deleted")
	s.publish(models.ProductDeleted, *product)
	return nil
}

func (s *ProductService) storeImage(ctx context.Context, img ImageUpload) (string, error) {
	filename := strings.ReplaceAll(uuid.NewString(), "-", "") + "." + img.Extension
	if err := s.storage.Save(ctx, ImagePath(filename), img.Content); err != nil {
		return "", fmt.Errorf("failed to store product image: %w", err)
	}
	return filename, nil
}

func (s *ProductService) publish(eventType string, product models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(models.NewProductEvent(eventType, product)); err != nil {
		log.Warn().Err(err).Str("event", eventType).Uint("product_id", product.ID).Msg("failed to publish product event")
	}
}
