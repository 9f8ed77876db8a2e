package postgres

import (
	"context"
	"fmt"

	"github.com/Sandeep-S-M/FarmConn/domain"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{
		DB: db,
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepository) FindAllRecent(ctx context.Context) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var posts []domain.Post
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepository) FindByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var posts []domain.Post
	err := r.DB.WithContext(ctx).Where("author_id = ?", authorID).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find author posts: %w", err)
	}

	return posts, nil
}
