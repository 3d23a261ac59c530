package data

import (
	"context"

	"github.com/devricklin/intercom-autoreply/internal/biz/domain"
	"github.com/devricklin/intercom-autoreply/internal/biz/repo"
	"github.com/devricklin/intercom-autoreply/internal/infra/intercom"
)

// intercomRepo implements the conversation repository over the Intercom API
type intercomRepo struct {
	client *intercom.Client
}

// NewIntercomRepo creates a new Intercom repository
func NewIntercomRepo(client *intercom.Client) repo.ConversationRepo {
	return &intercomRepo{client: client}
}

// GetConversation fetches a conversation and maps its parts
func (r *intercomRepo) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	conv, err := r.client.FindConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	result := &domain.Conversation{ID: conv.ID}
	if result.ID == "" {
		result.ID = conversationID
	}
	for _, p := range conv.ConversationParts.Parts {
		result.Parts = append(result.Parts, domain.ConversationNote{
			ID:       p.ID,
			PartType: domain.PartType(p.PartType),
			Body:     p.Body,
		})
	}
	return result, nil
}

// Reply posts an admin reply
func (r *intercomRepo) Reply(ctx context.Context, reply *domain.Reply) error {
	return r.client.ReplyToConversation(ctx, reply.ConversationID, intercom.ReplyRequest{
		Type:        domain.ReplierAdmin,
		AdminID:     reply.AdminID,
		MessageType: string(reply.MessageType),
		Body:        reply.Body,
	})
}
