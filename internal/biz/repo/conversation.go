package repo

import (
	"context"

	"github.com/devricklin/intercom-autoreply/internal/biz/domain"
)

// ConversationRepo is the conversation repository interface
// Backed by the messaging platform API; nothing is stored locally
type ConversationRepo interface {
	// GetConversation fetches a conversation with all of its parts
	GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error)

	// Reply posts an admin reply (comment or note) to a conversation
	Reply(ctx context.Context, reply *domain.Reply) error
}
