package service

import (
	"context"
	"fmt"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
)

// ChatStore is the persistence contract for customer-staff messaging.
type ChatStore interface {
	ConversationFor(ctx context.Context, userID string) (*domain.ChatConversation, error)
	Append(ctx context.Context, msg *domain.ChatMessage) error
	Messages(ctx context.Context, conversationID string) ([]domain.ChatMessage, error)
	Conversations(ctx context.Context) ([]domain.ChatConversation, error)
	MarkRead(ctx context.Context, conversationID string, readerRole domain.Role) error
	UnreadCount(ctx context.Context, conversationID string, readerRole domain.Role) (int64, error)
}

// ChatSvc stores and reads customer-staff messages. Delivery is plain
// request/response; there is no realtime transport here.
type ChatSvc struct {
	repo ChatStore
}

func NewChatSvc(repo ChatStore) *ChatSvc {
	return &ChatSvc{repo: repo}
}

func (s *ChatSvc) MyMessages(ctx context.Context, who Identity) ([]domain.ChatMessage, error) {
	conv, err := s.repo.ConversationFor(ctx, who.ID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkRead(ctx, conv.ID, domain.RoleUser); err != nil {
		return nil, err
	}
	return s.repo.Messages(ctx, conv.ID)
}

// MyUnread counts staff replies the user has not opened yet; feeds the
// chat badge in the UI.
func (s *ChatSvc) MyUnread(ctx context.Context, who Identity) (int64, error) {
	conv, err := s.repo.ConversationFor(ctx, who.ID)
	if err != nil {
		return 0, err
	}
	return s.repo.UnreadCount(ctx, conv.ID, domain.RoleUser)
}

func (s *ChatSvc) Send(ctx context.Context, who Identity, body string) (*domain.ChatMessage, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", ErrInvalidRequest)
	}
	conv, err := s.repo.ConversationFor(ctx, who.ID)
	if err != nil {
		return nil, err
	}
	msg := &domain.ChatMessage{
		ConversationID: conv.ID,
		SenderID:       who.ID,
		SenderRole:     domain.RoleUser,
		Body:           body,
	}
	if err := s.repo.Append(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ConversationSummary is one row of the admin inbox: the conversation
// plus how many customer messages staff have not read yet.
type ConversationSummary struct {
	domain.ChatConversation
	Unread int64 `json:"unread"`
}

func (s *ChatSvc) Conversations(ctx context.Context) ([]ConversationSummary, error) {
	convs, err := s.repo.Conversations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		n, err := s.repo.UnreadCount(ctx, conv.ID, domain.RoleAdmin)
		if err != nil {
			return nil, err
		}
		out = append(out, ConversationSummary{ChatConversation: conv, Unread: n})
	}
	return out, nil
}

func (s *ChatSvc) ConversationMessages(ctx context.Context, conversationID string) ([]domain.ChatMessage, error) {
	if err := s.repo.MarkRead(ctx, conversationID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.Messages(ctx, conversationID)
}

func (s *ChatSvc) Reply(ctx context.Context, who Identity, conversationID, body string) (*domain.ChatMessage, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", ErrInvalidRequest)
	}
	msg := &domain.ChatMessage{
		ConversationID: conversationID,
		SenderID:       who.ID,
		SenderRole:     domain.RoleAdmin,
		Body:           body,
	}
	if err := s.repo.Append(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
