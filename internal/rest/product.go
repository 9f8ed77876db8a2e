package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Sandeep-S-M/FarmConn/domain"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id uint) (*domain.Product, error)
	GetProductsBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error)
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Breed         string  `json:"breed"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
	ImageURL      string  `json:"image_url"`
	PlantAgeDays  int     `json:"plant_age_days" validate:"gte=0"`
	AvailableDays int     `json:"available_days" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Breed         string  `json:"breed"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
	ImageURL      string  `json:"image_url"`
	PlantAgeDays  int     `json:"plant_age_days" validate:"gte=0"`
	AvailableDays int     `json:"available_days" validate:"gte=0"`
}

// GetAllProducts backs the marketplace page.
func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get all products",
		"products": products,
	})
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, uint(productID))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get product by id", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get product",
		"product": product,
	})
}

// GetMyProducts lists the authenticated seller's own inventory.
func (h *ProductHandler) GetMyProducts(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetProductsBySeller(ctx, userID)
	if err != nil {
		logger.Error("Failed to list seller products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get seller products",
		"products": products,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request CreateProductRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&request); err != nil {
		logger.Error("Failed to validate create product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.CreateProduct(ctx, userID, &domain.Product{
		Name:          request.Name,
		Breed:         request.Breed,
		Description:   request.Description,
		Price:         request.Price,
		Quantity:      request.Quantity,
		ImageURL:      request.ImageURL,
		PlantAgeDays:  request.PlantAgeDays,
		AvailableDays: request.AvailableDays,
	})
	if err != nil {
		logger.Error("Failed to create product", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "New plant added to inventory!",
		"product": product,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var request UpdateProductRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&request); err != nil {
		logger.Error("Failed to validate update product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.UpdateProduct(ctx, userID, &domain.Product{
		ID:            uint(productID),
		Name:          request.Name,
		Breed:         request.Breed,
		Description:   request.Description,
		Price:         request.Price,
		Quantity:      request.Quantity,
		ImageURL:      request.ImageURL,
		PlantAgeDays:  request.PlantAgeDays,
		AvailableDays: request.AvailableDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, domain.ErrNotProductSeller):
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		default:
			logger.Error("Failed to update product", err)
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully!",
		"product": product,
	})
}
