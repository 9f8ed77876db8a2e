package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Sandeep-S-M/FarmConn/domain"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PostsHandler struct {
		validate    *validator.Validate
		postService PostService
		timeout     time.Duration
	}

	PostService interface {
		CreatePost(ctx context.Context, authorID uint, title, content string) (domain.Post, error)
		ListRecent(ctx context.Context) ([]domain.Post, error)
		ListByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error)
	}

	CreatePostRequest struct {
		Title   string `json:"title" validate:"required,max=140"`
		Content string `json:"content" validate:"required"`
	}
)

func NewPostsHandler(postService PostService) *PostsHandler {
	return &PostsHandler{
		validate:    validator.New(),
		postService: postService,
		timeout:     10 * time.Second,
	}
}

func (h *PostsHandler) Create(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request CreatePostRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate create post request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.postService.CreatePost(ctx, userID, request.Title, request.Content)
	if err != nil {
		logger.Error("Failed to create post", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(post))
}

// List backs the forum page, newest first.
func (h *PostsHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	posts, err := h.postService.ListRecent(ctx)
	if err != nil {
		logger.Error("Failed to list posts", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(posts))
}
