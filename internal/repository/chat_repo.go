package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
)

type ChatRepo struct{ db *gorm.DB }

func NewChatRepo(db *gorm.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.ChatConversation{}, &domain.ChatMessage{})
}

// ConversationFor returns the user's conversation, creating it on first use.
func (r *ChatRepo) ConversationFor(ctx context.Context, userID string) (*domain.ChatConversation, error) {
	var conv domain.ChatConversation
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		conv = domain.ChatConversation{ID: uuid.NewString(), UserID: userID, LastMessageAt: time.Now().UTC()}
		if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
			return nil, err
		}
		return &conv, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepo) Append(ctx context.Context, msg *domain.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&domain.ChatConversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", time.Now().UTC()).Error
	})
}

func (r *ChatRepo) Messages(ctx context.Context, conversationID string) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *ChatRepo) Conversations(ctx context.Context) ([]domain.ChatConversation, error) {
	var out []domain.ChatConversation
	err := r.db.WithContext(ctx).Order("last_message_at DESC").Find(&out).Error
	return out, err
}

// MarkRead flags every message in the conversation not sent by readerRole.
func (r *ChatRepo) MarkRead(ctx context.Context, conversationID string, readerRole domain.Role) error {
	return r.db.WithContext(ctx).Model(&domain.ChatMessage{}).
		Where("conversation_id = ? AND sender_role <> ? AND read = ?", conversationID, readerRole, false).
		Update("read", true).Error
}

func (r *ChatRepo) UnreadCount(ctx context.Context, conversationID string, readerRole domain.Role) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.ChatMessage{}).
		Where("conversation_id = ? AND sender_role <> ? AND read = ?", conversationID, readerRole, false).
		Count(&n).Error
	return n, err
}
