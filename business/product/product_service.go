package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sandeep-S-M/FarmConn/domain"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	if id == 0 {
		logger.Error("invalid product id")
		return nil, errors.New("invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", err)
		return nil, err
	}

	return &product, nil
}

func (s *productService) GetProductsBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error) {
	products, err := s.productRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		logger.Error("Failed to find seller products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if query == "" {
		return []domain.Product{}, nil
	}

	products, err := s.productRepo.Search(ctx, query)
	if err != nil {
		logger.Error("Failed to search products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) CreateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.Name == "" {
		logger.Error("Invalid product data: name is required")
		return nil, errors.New("product name is required")
	}

	if product.Price <= 0 {
		logger.Error("Invalid product data: price must be greater than 0")
		return nil, errors.New("price must be greater than 0")
	}

	if product.Quantity < 0 {
		logger.Error("Invalid product data: quantity cannot be negative")
		return nil, errors.New("quantity cannot be negative")
	}

	product.SellerID = sellerID

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created successfully", "product_id", product.ID, "seller_id", sellerID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error) {
	if product.ID == 0 {
		logger.Error("Invalid product data: ID is required")
		return nil, errors.New("product ID is required")
	}

	if product.Name == "" {
		logger.Error("Invalid product data: name is required")
		return nil, errors.New("product name is required")
	}

	if product.Price <= 0 {
		logger.Error("Invalid product data: price must be greater than 0")
		return nil, errors.New("price must be greater than 0")
	}

	if product.Quantity < 0 {
		logger.Error("Invalid product data: quantity cannot be negative")
		return nil, errors.New("quantity cannot be negative")
	}

	existing, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("product not found", err)
		return nil, err
	}

	if existing.SellerID != sellerID {
		logger.Error("seller mismatch on product update", "product_id", product.ID, "seller_id", sellerID)
		return nil, domain.ErrNotProductSeller
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated", "product_id", updated.ID)

	return &updated, nil
}
