package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

type messageService struct {
	messageRepo    domain.MessageRepository
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewMessageService creates a MessageService.
func NewMessageService(messageRepo domain.MessageRepository, userRepo domain.UserRepository, timeout time.Duration) domain.MessageService {
	return &messageService{
		messageRepo:    messageRepo,
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

func (s *messageService) ListMessages(ctx context.Context, actor domain.Actor) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	msgs, err := s.messageRepo.ListForUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

func (s *messageService) Conversation(ctx context.Context, actor domain.Actor, otherID string) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	msgs, err := s.messageRepo.ListBetween(ctx, actor.UserID, otherID)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	return msgs, nil
}

func (s *messageService) Conversations(ctx context.Context, actor domain.Actor) ([]*domain.Conversation, error) {
	msgs, err := s.ListMessages(ctx, actor)
	if err != nil {
		return nil, err
	}
	return GroupConversations(actor.UserID, msgs), nil
}

// GroupConversations folds a user's messages into one entry per counterpart, most recent first.
func GroupConversations(userID string, msgs []*domain.Message) []*domain.Conversation {
	byCounterpart := make(map[string]*domain.Conversation)
	for _, m := range msgs {
		other := m.ReceiverID
		if m.ReceiverID == userID {
			other = m.SenderID
		}
		conv, ok := byCounterpart[other]
		if !ok {
			conv = &domain.Conversation{CounterpartID: other}
			byCounterpart[other] = conv
		}
		conv.MessageCount++
		if m.ReceiverID == userID && !m.IsRead {
			conv.UnreadCount++
		}
		if conv.LastMessage == nil || m.CreatedAt.After(conv.LastMessage.CreatedAt) {
			conv.LastMessage = m
			conv.UpdatedAt = m.CreatedAt
		}
	}
	out := make([]*domain.Conversation, 0, len(byCounterpart))
	for _, c := range byCounterpart {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].CounterpartID < out[j].CounterpartID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func (s *messageService) Send(ctx context.Context, actor domain.Actor, msg *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor.UserID == "" {
		return domain.ErrUnauthorized
	}
	msg.Content = strings.TrimSpace(msg.Content)
	if msg.Content == "" {
		return fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if msg.ReceiverID == "" || msg.ReceiverID == actor.UserID {
		return fmt.Errorf("%w: a different receiver is required", domain.ErrInvalidInput)
	}
	if _, err := s.userRepo.GetByID(ctx, msg.ReceiverID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: unknown receiver", domain.ErrInvalidInput)
		}
		return fmt.Errorf("get receiver: %w", err)
	}
	msg.SenderID = actor.UserID
	msg.IsRead = false
	msg.CreatedAt = time.Now()
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// MarkRead is allowed for the receiver only.
func (s *messageService) MarkRead(ctx context.Context, actor domain.Actor, id string) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, passThrough("get message", err)
	}
	if msg.ReceiverID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if msg.IsRead {
		return msg, nil
	}
	updated, err := s.messageRepo.MarkRead(ctx, id)
	if err != nil {
		return nil, passThrough("mark message read", err)
	}
	return updated, nil
}

// DeleteMessage is allowed for the sender or an admin.
func (s *messageService) DeleteMessage(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return passThrough("get message", err)
	}
	if !actor.CanManage(msg.SenderID) {
		return domain.ErrForbidden
	}
	if err := s.messageRepo.Delete(ctx, id); err != nil {
		return passThrough("delete message", err)
	}
	return nil
}

func (s *messageService) UnreadCount(ctx context.Context, actor domain.Actor) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	n, err := s.messageRepo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}
