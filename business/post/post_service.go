package post

import (
	"context"
	"errors"

	"github.com/Sandeep-S-M/FarmConn/domain"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"
)

// PostRepository contract interface
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindAllRecent(ctx context.Context) ([]domain.Post, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error)
}

type postService struct {
	postRepo PostRepository
}

func NewPostService(postRepo PostRepository) *postService {
	return &postService{
		postRepo: postRepo,
	}
}

func (s *postService) CreatePost(ctx context.Context, authorID uint, title, content string) (domain.Post, error) {
	if title == "" {
		return domain.Post{}, errors.New("post title is required")
	}

	p := domain.Post{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
	}

	if err := s.postRepo.Create(ctx, &p); err != nil {
		logger.Error("Failed to create post", err)
		return domain.Post{}, err
	}

	return p, nil
}

// ListRecent backs the forum page, newest first.
func (s *postService) ListRecent(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.FindAllRecent(ctx)
	if err != nil {
		logger.Error("Failed to list posts", err)
		return nil, err
	}

	return posts, nil
}

func (s *postService) ListByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error) {
	posts, err := s.postRepo.FindByAuthor(ctx, authorID)
	if err != nil {
		logger.Error("Failed to list author posts", err)
		return nil, err
	}

	return posts, nil
}
