package dto

import (
	"time"
)

// SendMessageRequest is the payload for POST /messages
type SendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required,uuid"`
	Subject     string `json:"subject" binding:"required,max=200"`
	Body        string `json:"body" binding:"required"`
}

// MessageResponse is the read shape for inbox entries
type MessageResponse struct {
	ID         int64     `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}
