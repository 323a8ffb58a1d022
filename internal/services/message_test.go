package services

import (
	"context"
	"testing"
	"time"

	"weddingplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupConversations(t *testing.T) {
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := []*domain.Message{
		{ID: "1", SenderID: "me", ReceiverID: "ann", CreatedAt: base},
		{ID: "2", SenderID: "ann", ReceiverID: "me", CreatedAt: base.Add(time.Hour)},
		{ID: "3", SenderID: "ann", ReceiverID: "me", CreatedAt: base.Add(30 * time.Minute), IsRead: true},
		{ID: "4", SenderID: "bo", ReceiverID: "me", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "5", SenderID: "me", ReceiverID: "cy", CreatedAt: base.Add(time.Hour)},
	}

	got := GroupConversations("me", msgs)
	require.Len(t, got, 3)

	assert.Equal(t, "bo", got[0].CounterpartID)
	assert.Equal(t, 1, got[0].UnreadCount)

	// ann and cy tie on their latest message; counterpart id breaks the tie.
	assert.Equal(t, "ann", got[1].CounterpartID)
	assert.Equal(t, 3, got[1].MessageCount)
	assert.Equal(t, 1, got[1].UnreadCount)
	assert.Equal(t, "2", got[1].LastMessage.ID)

	assert.Equal(t, "cy", got[2].CounterpartID)
	assert.Zero(t, got[2].UnreadCount)

	assert.Empty(t, GroupConversations("me", nil))
}

func TestMessageService(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(
		&domain.User{ID: ownerID, Name: "Ann"},
		&domain.User{ID: vendorID, Name: "Bloom"},
	)
	repo := &fakeMessageRepo{}
	svc := NewMessageService(repo, users, time.Second)

	rejects := []struct {
		name    string
		actor   domain.Actor
		msg     *domain.Message
		wantErr error
	}{
		{"anonymous", domain.Actor{}, &domain.Message{ReceiverID: vendorID, Content: "hi"}, domain.ErrUnauthorized},
		{"blank content", owner, &domain.Message{ReceiverID: vendorID, Content: "  "}, domain.ErrInvalidInput},
		{"to self", owner, &domain.Message{ReceiverID: ownerID, Content: "hi"}, domain.ErrInvalidInput},
		{"unknown receiver", owner, &domain.Message{ReceiverID: "ghost", Content: "hi"}, domain.ErrInvalidInput},
	}
	for _, tt := range rejects {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, svc.Send(ctx, tt.actor, tt.msg), tt.wantErr)
		})
	}
	assert.Empty(t, repo.msgs)

	msg := &domain.Message{ReceiverID: vendorID, Content: " Are you free in June? ", IsRead: true}
	require.NoError(t, svc.Send(ctx, owner, msg))
	assert.Equal(t, ownerID, msg.SenderID)
	assert.Equal(t, "Are you free in June?", msg.Content)
	assert.False(t, msg.IsRead)

	unread, err := svc.UnreadCount(ctx, vendorActor)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	_, err = svc.MarkRead(ctx, owner, msg.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	read, err := svc.MarkRead(ctx, vendorActor, msg.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	convs, err := svc.Conversations(ctx, vendorActor)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, ownerID, convs[0].CounterpartID)
	assert.Zero(t, convs[0].UnreadCount)

	thread, err := svc.Conversation(ctx, vendorActor, ownerID)
	require.NoError(t, err)
	assert.Len(t, thread, 1)

	require.ErrorIs(t, svc.DeleteMessage(ctx, vendorActor, msg.ID), domain.ErrForbidden)
	require.NoError(t, svc.DeleteMessage(ctx, owner, msg.ID))
	require.ErrorIs(t, svc.DeleteMessage(ctx, admin, msg.ID), domain.ErrNotFound)
}
