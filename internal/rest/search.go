package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Sandeep-S-M/FarmConn/domain"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SearchHandler serves the combined product + user search box.
type SearchHandler struct {
	productService ProductService
	userService    UserService
	timeout        time.Duration
}

func NewSearchHandler(productService ProductService, userService UserService) *SearchHandler {
	return &SearchHandler{
		productService: productService,
		userService:    userService,
		timeout:        10 * time.Second,
	}
}

func (h *SearchHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")

	products := []domain.Product{}
	users := []domain.User{}

	if query != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		defer cancel()

		var err error
		products, err = h.productService.SearchProducts(ctx, query)
		if err != nil {
			logger.Error("Failed to search products", err)
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}

		users, err = h.userService.SearchUsers(ctx, query)
		if err != nil {
			logger.Error("Failed to search users", err)
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"query":    query,
		"products": products,
		"users":    users,
	})
}
