package postgres

import (
	"context"
	"fmt"

	"github.com/Sandeep-S-M/FarmConn/domain"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		DB: db,
	}
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// FindForUser returns every message the user sent or received, newest
// first. This backs the chat page.
func (r *MessageRepository) FindForUser(ctx context.Context, userID uint) ([]domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var messages []domain.Message
	err := r.DB.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}

	return messages, nil
}
