package domain

import (
	"context"
	"time"
)

// Message is a direct message between two users, optionally about an event.
// swagger:model Message
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	EventID    *string   `json:"event_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// Conversation is derived by grouping messages by counterpart; there is no thread table.
type Conversation struct {
	CounterpartID string    `json:"counterpart_id"`
	LastMessage   *Message  `json:"last_message"`
	UnreadCount   int       `json:"unread_count"`
	MessageCount  int       `json:"message_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MessageRepository defines message storage.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	ListForUser(ctx context.Context, userID string) ([]*Message, error)
	ListBetween(ctx context.Context, userID, otherID string) ([]*Message, error)
	MarkRead(ctx context.Context, id string) (*Message, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// MessageService manages direct messages.
type MessageService interface {
	ListMessages(ctx context.Context, actor Actor) ([]*Message, error)
	Conversation(ctx context.Context, actor Actor, otherID string) ([]*Message, error)
	Conversations(ctx context.Context, actor Actor) ([]*Conversation, error)
	Send(ctx context.Context, actor Actor, msg *Message) error
	MarkRead(ctx context.Context, actor Actor, id string) (*Message, error)
	DeleteMessage(ctx context.Context, actor Actor, id string) error
	UnreadCount(ctx context.Context, actor Actor) (int, error)
}
