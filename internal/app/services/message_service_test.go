package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/pkg/apperrors"
)

type fakeMessageStore struct {
	sent   []*models.Message
	read   []int64
	unread int
}

func (f *fakeMessageStore) Create(ctx context.Context, message *models.Message) error {
	message.ID = int64(len(f.sent) + 1)
	f.sent = append(f.sent, message)
	return nil
}

func (f *fakeMessageStore) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	for _, m := range f.sent {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, apperrors.ErrMessageNotFound
}

func (f *fakeMessageStore) ListInbox(ctx context.Context, recipientID string) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range f.sent {
		if m.RecipientID == recipientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) MarkRead(ctx context.Context, id int64, recipientID string) error {
	for _, m := range f.sent {
		if m.ID == id && m.RecipientID == recipientID {
			m.Read = true
			f.read = append(f.read, id)
			return nil
		}
	}
	return apperrors.ErrMessageNotFound
}

func (f *fakeMessageStore) CountUnread(ctx context.Context, recipientID string) (int, error) {
	return f.unread, nil
}

type fakeRecipientResolver struct {
	known map[string]bool
}

func (f *fakeRecipientResolver) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if f.known[id] {
		return &models.Profile{ID: id}, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

func TestSendMessage(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store, &fakeRecipientResolver{known: map[string]bool{"p-2": true}})

	msg, err := svc.Send(context.Background(), "p-1", &dto.SendMessageRequest{
		RecipientID: "p-2",
		Subject:     "Treino",
		Body:        "Aula cancelada amanha.",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.SenderID != "p-1" || msg.RecipientID != "p-2" {
		t.Errorf("message routed %s -> %s, want p-1 -> p-2", msg.SenderID, msg.RecipientID)
	}
	if msg.Read {
		t.Error("new messages start unread")
	}
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store, &fakeRecipientResolver{known: map[string]bool{}})

	_, err := svc.Send(context.Background(), "p-1", &dto.SendMessageRequest{
		RecipientID: "ghost",
		Subject:     "x",
		Body:        "y",
	})
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
	if len(store.sent) != 0 {
		t.Error("nothing should be stored for an unknown recipient")
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store, &fakeRecipientResolver{known: map[string]bool{"p-2": true}})

	msg, err := svc.Send(context.Background(), "p-1", &dto.SendMessageRequest{
		RecipientID: "p-2", Subject: "s", Body: "b",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if err := svc.MarkRead(context.Background(), msg.ID, "p-3"); !errors.Is(err, apperrors.ErrMessageNotFound) {
		t.Errorf("foreign profile marking read: err = %v, want ErrMessageNotFound", err)
	}
	if err := svc.MarkRead(context.Background(), msg.ID, "p-2"); err != nil {
		t.Errorf("recipient marking read: %v", err)
	}
	if !msg.Read {
		t.Error("message should be flagged read")
	}
}

func TestGetMessageScopedToParticipants(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store, &fakeRecipientResolver{known: map[string]bool{"p-2": true}})

	msg, err := svc.Send(context.Background(), "p-1", &dto.SendMessageRequest{
		RecipientID: "p-2", Subject: "s", Body: "b",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if _, err := svc.Get(context.Background(), msg.ID, "p-2"); err != nil {
		t.Errorf("recipient read: %v", err)
	}
	if _, err := svc.Get(context.Background(), msg.ID, "p-1"); err != nil {
		t.Errorf("sender read: %v", err)
	}
	if _, err := svc.Get(context.Background(), msg.ID, "p-3"); !errors.Is(err, apperrors.ErrMessageNotFound) {
		t.Errorf("foreign profile read: err = %v, want ErrMessageNotFound", err)
	}
	if _, err := svc.Get(context.Background(), 99, "p-2"); !errors.Is(err, apperrors.ErrMessageNotFound) {
		t.Errorf("unknown id: err = %v, want ErrMessageNotFound", err)
	}
}
