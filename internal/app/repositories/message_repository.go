package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/pkg/apperrors"
)

// MessageRepository handles database operations for messages
type MessageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	sql, args, err := r.sb.Insert("messages").
		Columns("sender_id", "recipient_id", "subject", "body", "read").
		Values(message.SenderID, message.RecipientID, message.Subject, message.Body, false).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create message query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&message.ID, &message.CreatedAt); err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}

	return nil
}

// ListInbox retrieves a profile's received messages, newest first, with
// the sender's name attached.
func (r *MessageRepository) ListInbox(ctx context.Context, recipientID string) ([]*models.Message, error) {
	sql, args, err := r.sb.Select(
		"m.id", "m.sender_id", "m.recipient_id", "m.subject", "m.body", "m.read", "m.created_at",
		"p.full_name").
		From("messages m").
		LeftJoin("profiles p ON p.id = m.sender_id").
		Where(squirrel.Eq{"m.recipient_id": recipientID}).
		OrderBy("m.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build inbox query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing inbox: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var m models.Message
		var senderName *string
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Subject, &m.Body, &m.Read, &m.CreatedAt, &senderName); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		if senderName != nil {
			m.Sender = &models.Profile{ID: m.SenderID, FullName: *senderName}
		}
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// GetByID retrieves a message by id
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	sql, args, err := r.sb.Select("id", "sender_id", "recipient_id", "subject", "body", "read", "created_at").
		From("messages").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get message query: %w", err)
	}

	var m models.Message
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&m.ID, &m.SenderID, &m.RecipientID, &m.Subject, &m.Body, &m.Read, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error retrieving message: %w", err)
	}

	return &m, nil
}

// MarkRead flags a message as read. Scoped to the recipient so a profile
// cannot mark someone else's mail.
func (r *MessageRepository) MarkRead(ctx context.Context, id int64, recipientID string) error {
	sql, args, err := r.sb.Update("messages").
		Set("read", true).
		Where(squirrel.Eq{"id": id, "recipient_id": recipientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark read query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking message read: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}

	return nil
}

// CountUnread counts a profile's unread messages
func (r *MessageRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("messages").
		Where(squirrel.Eq{"recipient_id": recipientID, "read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build unread count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unread messages: %w", err)
	}

	return count, nil
}
