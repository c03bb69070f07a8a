package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
)

type fakeChatStore struct {
	seq           int
	conversations map[string]*domain.ChatConversation // by user id
	messages      []domain.ChatMessage
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{conversations: map[string]*domain.ChatConversation{}}
}

func (f *fakeChatStore) ConversationFor(_ context.Context, userID string) (*domain.ChatConversation, error) {
	if conv, ok := f.conversations[userID]; ok {
		cp := *conv
		return &cp, nil
	}
	conv := &domain.ChatConversation{ID: "conv-" + userID, UserID: userID, LastMessageAt: time.Now()}
	f.conversations[userID] = conv
	cp := *conv
	return &cp, nil
}

func (f *fakeChatStore) Append(_ context.Context, msg *domain.ChatMessage) error {
	f.seq++
	if msg.ID == "" {
		msg.ID = fmt.Sprintf("msg-%d", f.seq)
	}
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeChatStore) Messages(_ context.Context, conversationID string) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeChatStore) Conversations(_ context.Context) ([]domain.ChatConversation, error) {
	var out []domain.ChatConversation
	for _, conv := range f.conversations {
		out = append(out, *conv)
	}
	return out, nil
}

func (f *fakeChatStore) MarkRead(_ context.Context, conversationID string, readerRole domain.Role) error {
	for i, m := range f.messages {
		if m.ConversationID == conversationID && m.SenderRole != readerRole {
			f.messages[i].Read = true
		}
	}
	return nil
}

func (f *fakeChatStore) UnreadCount(_ context.Context, conversationID string, readerRole domain.Role) (int64, error) {
	var n int64
	for _, m := range f.messages {
		if m.ConversationID == conversationID && m.SenderRole != readerRole && !m.Read {
			n++
		}
	}
	return n, nil
}

func TestConversationsCarryAdminUnreadCounts(t *testing.T) {
	store := newFakeChatStore()
	svc := NewChatSvc(store)
	user := Identity{ID: "user-1"}

	_, err := svc.Send(context.Background(), user, "halo, lapangan besok kosong?")
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), user, "jam 9 pagi")
	require.NoError(t, err)

	out, err := svc.Conversations(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].Unread)

	// opening the conversation clears the staff-side badge
	_, err = svc.ConversationMessages(context.Background(), out[0].ID)
	require.NoError(t, err)
	out, err = svc.Conversations(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out[0].Unread)
}

func TestMyUnreadCountsStaffReplies(t *testing.T) {
	store := newFakeChatStore()
	svc := NewChatSvc(store)
	user := Identity{ID: "user-1"}
	staff := Identity{ID: "admin-1"}

	_, err := svc.Send(context.Background(), user, "halo")
	require.NoError(t, err)

	conv, err := store.ConversationFor(context.Background(), user.ID)
	require.NoError(t, err)
	_, err = svc.Reply(context.Background(), staff, conv.ID, "halo, ada yang bisa dibantu?")
	require.NoError(t, err)

	n, err := svc.MyUnread(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "the user's own message does not count")

	// reading the thread clears the user's badge
	_, err = svc.MyMessages(context.Background(), user)
	require.NoError(t, err)
	n, err = svc.MyUnread(context.Background(), user)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSendRequiresBody(t *testing.T) {
	svc := NewChatSvc(newFakeChatStore())

	_, err := svc.Send(context.Background(), Identity{ID: "user-1"}, "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
