package message

import (
	"context"
	"errors"

	"github.com/Sandeep-S-M/FarmConn/domain"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"
)

// MessageRepository contract interface
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	FindForUser(ctx context.Context, userID uint) ([]domain.Message, error)
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type messageService struct {
	messageRepo MessageRepository
	userRepo    UserRepository
}

func NewMessageService(messageRepo MessageRepository, userRepo UserRepository) *messageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Send delivers an in-band message. The sender is the authenticated
// caller, passed explicitly.
func (s *messageService) Send(ctx context.Context, senderID, receiverID uint, content string) (domain.Message, error) {
	if content == "" {
		return domain.Message{}, errors.New("message content is required")
	}

	if senderID == receiverID {
		return domain.Message{}, errors.New("cannot message yourself")
	}

	if _, err := s.userRepo.FindByID(ctx, receiverID); err != nil {
		logger.Error("Message receiver not found", err)
		return domain.Message{}, err
	}

	msg := domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}

	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		logger.Error("Failed to create message", err)
		return domain.Message{}, err
	}

	return msg, nil
}

// ListForUser backs the chat page: everything sent or received.
func (s *messageService) ListForUser(ctx context.Context, userID uint) ([]domain.Message, error) {
	messages, err := s.messageRepo.FindForUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list messages", err)
		return nil, err
	}

	return messages, nil
}
