package usecase

import (
	"context"
	"sync"

	"github.com/devricklin/intercom-autoreply/internal/biz/domain"
)

type mockConversationRepo struct {
	conv     *domain.Conversation
	getErr   error
	replyErr map[domain.MessageType]error
	replies  []domain.Reply
	gets     int
	mu       sync.Mutex
}

func (m *mockConversationRepo) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.conv == nil {
		return &domain.Conversation{ID: conversationID}, nil
	}
	return m.conv, nil
}

func (m *mockConversationRepo) Reply(ctx context.Context, reply *domain.Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.replyErr[reply.MessageType]; err != nil {
		return err
	}
	m.replies = append(m.replies, *reply)
	return nil
}

type mockAlertRepo struct {
	alerts []string
	err    error
}

func (m *mockAlertRepo) SendAlert(ctx context.Context, text string) error {
	m.alerts = append(m.alerts, text)
	return m.err
}
