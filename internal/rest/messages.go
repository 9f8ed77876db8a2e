package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Sandeep-S-M/FarmConn/domain"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	MessagesHandler struct {
		validate       *validator.Validate
		messageService MessageService
		timeout        time.Duration
	}

	MessageService interface {
		Send(ctx context.Context, senderID, receiverID uint, content string) (domain.Message, error)
		ListForUser(ctx context.Context, userID uint) ([]domain.Message, error)
	}

	SendMessageRequest struct {
		ReceiverID uint   `json:"receiver_id" validate:"required"`
		Content    string `json:"content" validate:"required"`
	}
)

func NewMessagesHandler(messageService MessageService) *MessagesHandler {
	return &MessagesHandler{
		validate:       validator.New(),
		messageService: messageService,
		timeout:        10 * time.Second,
	}
}

func (h *MessagesHandler) Send(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request SendMessageRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate send message request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	msg, err := h.messageService.Send(ctx, userID, request.ReceiverID, request.Content)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to send message", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(msg))
}

// List backs the chat page: everything the user sent or received.
func (h *MessagesHandler) List(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	messages, err := h.messageService.ListForUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list messages", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(messages))
}
