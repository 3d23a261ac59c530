package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Topics that can trigger an auto-reply
const (
	TopicUserCreated = "conversation.user.created"
	TopicUserReplied = "conversation.user.replied"
)

// ErrMissingConversationID is returned when a payload has no usable data.item.id
var ErrMissingConversationID = errors.New("conversation id missing from payload")

// IsSupportedTopic reports whether topic contains one of the user-conversation topics
func IsSupportedTopic(topic string) bool {
	return strings.Contains(topic, TopicUserCreated) || strings.Contains(topic, TopicUserReplied)
}

// WebhookPayload is the raw notification body. Data is decoded lazily
// because its shape depends on the topic.
type WebhookPayload struct {
	Topic string          `json:"topic"`
	ID    string          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data"`
}

// InboundEvent is the part of a notification the auto-responder acts on
type InboundEvent struct {
	Topic          string
	ConversationID string
}

// ParseWebhookPayload decodes a notification body
func ParseWebhookPayload(body []byte) (*WebhookPayload, error) {
	var p WebhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ConversationID extracts data.item.id. Both string and numeric ids are accepted.
func (p *WebhookPayload) ConversationID() (string, error) {
	if len(p.Data) == 0 {
		return "", ErrMissingConversationID
	}

	var data struct {
		Item struct {
			ID json.RawMessage `json:"id"`
		} `json:"item"`
	}
	if err := json.Unmarshal(p.Data, &data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingConversationID, err)
	}
	raw := data.Item.ID
	if len(raw) == 0 {
		return "", ErrMissingConversationID
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return s, nil
		}
		return "", ErrMissingConversationID
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil && n != "" {
		return n.String(), nil
	}
	return "", ErrMissingConversationID
}

// Event converts the payload into an InboundEvent
func (p *WebhookPayload) Event() (InboundEvent, error) {
	id, err := p.ConversationID()
	if err != nil {
		return InboundEvent{Topic: p.Topic}, err
	}
	return InboundEvent{Topic: p.Topic, ConversationID: id}, nil
}
