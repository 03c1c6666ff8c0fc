package models

import (
	"time"
)

// Message defines a direct message between two profiles based on the
// 'messages' table. Only the read flag participates in dashboard counts.
type Message struct {
	ID          int64     `json:"id" db:"id"`
	SenderID    string    `json:"senderId" db:"sender_id"`
	RecipientID string    `json:"recipientId" db:"recipient_id"`
	Subject     string    `json:"subject" db:"subject"`
	Body        string    `json:"body" db:"body"`
	Read        bool      `json:"read" db:"read"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Relation (populated by joined reads, no db tag)
	Sender *Profile `json:"sender,omitempty"`
}
