package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Sandeep-S-M/FarmConn/domain"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		validate     *validator.Validate
		orderService OrderService
		timeout      time.Duration
	}

	OrderService interface {
		PlaceOrder(ctx context.Context, buyerID, productID uint, quantity int, deliveryAddress string) (domain.OrderReceipt, error)
		DecideOrder(ctx context.Context, sellerID, orderID uint, decision string) (domain.Order, error)
		GetOrder(ctx context.Context, orderID uint) (domain.Order, error)
		ListForBuyer(ctx context.Context, buyerID uint) ([]domain.Order, error)
		ListForSeller(ctx context.Context, sellerID uint) ([]domain.Order, error)
	}

	PlaceOrderRequest struct {
		ProductID       uint   `json:"product_id" validate:"required"`
		Quantity        int    `json:"quantity" validate:"required,gt=0"`
		DeliveryAddress string `json:"delivery_address" validate:"required"`
	}

	DecideOrderRequest struct {
		Decision string `json:"decision" validate:"required,oneof=accepted rejected"`
	}
)

func NewOrdersHandler(orderService OrderService) *OrdersHandler {
	return &OrdersHandler{
		validate:     validator.New(),
		orderService: orderService,
		timeout:      15 * time.Second,
	}
}

func (h *OrdersHandler) PlaceOrder(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request PlaceOrderRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate place order request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	receipt, err := h.orderService.PlaceOrder(ctx, userID, request.ProductID, request.Quantity, request.DeliveryAddress)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		default:
			logger.Error("Failed to place order", err)
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(receipt))
}

func (h *OrdersHandler) DecideOrder(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	var request DecideOrderRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate order decision", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.orderService.DecideOrder(ctx, userID, uint(orderID), request.Decision)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, domain.ErrNotProductSeller):
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		case errors.Is(err, domain.ErrOrderAlreadyDecided):
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidOrderStatus):
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		default:
			logger.Error("Failed to decide order", err)
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.orderService.GetOrder(ctx, uint(orderID))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get order by id", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

// ListMine returns the authenticated buyer's orders.
func (h *OrdersHandler) ListMine(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orders, err := h.orderService.ListForBuyer(ctx, userID)
	if err != nil {
		logger.Error("Failed to list buyer orders", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

// ListIncoming returns the orders placed against the authenticated
// seller's products.
func (h *OrdersHandler) ListIncoming(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orders, err := h.orderService.ListForSeller(ctx, userID)
	if err != nil {
		logger.Error("Failed to list seller orders", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}
