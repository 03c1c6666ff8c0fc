package services

import (
	"context"
	"fmt"

	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/pkg/apperrors"
)

// messageStore is the subset of MessageRepository the message service
// needs.
type messageStore interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	ListInbox(ctx context.Context, recipientID string) ([]*models.Message, error)
	MarkRead(ctx context.Context, id int64, recipientID string) error
	CountUnread(ctx context.Context, recipientID string) (int, error)
}

// recipientResolver checks that the recipient profile exists before a
// message is sent.
type recipientResolver interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}

// MessageService handles direct messaging between profiles
type MessageService struct {
	messages messageStore
	profiles recipientResolver
}

// NewMessageService creates a new message service
func NewMessageService(messages messageStore, profiles recipientResolver) *MessageService {
	return &MessageService{
		messages: messages,
		profiles: profiles,
	}
}

// Send delivers a message from one profile to another
func (s *MessageService) Send(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*models.Message, error) {
	if _, err := s.profiles.GetByID(ctx, req.RecipientID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Body:        req.Body,
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("error sending message: %w", err)
	}

	return message, nil
}

// Get retrieves one message. Only its sender or its recipient may see
// it; anyone else resolves as not found.
func (s *MessageService) Get(ctx context.Context, id int64, profileID string) (*models.Message, error) {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if message.RecipientID != profileID && message.SenderID != profileID {
		return nil, apperrors.ErrMessageNotFound
	}
	return message, nil
}

// Inbox retrieves a profile's received messages, newest first
func (s *MessageService) Inbox(ctx context.Context, profileID string) ([]*models.Message, error) {
	messages, err := s.messages.ListInbox(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("error loading inbox: %w", err)
	}
	return messages, nil
}

// MarkRead flags one of the profile's own messages as read
func (s *MessageService) MarkRead(ctx context.Context, id int64, profileID string) error {
	return s.messages.MarkRead(ctx, id, profileID)
}

// UnreadCount counts the profile's unread messages
func (s *MessageService) UnreadCount(ctx context.Context, profileID string) (int, error) {
	return s.messages.CountUnread(ctx, profileID)
}
