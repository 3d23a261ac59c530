package domain

import (
	"errors"
	"testing"
)

func TestIsSupportedTopic(t *testing.T) {
	tests := []struct {
		topic string
		want  bool
	}{
		{"conversation.user.created", true},
		{"conversation.user.replied", true},
		{"conversation.user.replied.v2", true},
		{"prefix.conversation.user.created", true},
		{"conversation.admin.replied", false},
		{"conversation.admin.noted", false},
		{"ping", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSupportedTopic(tt.topic); got != tt.want {
			t.Errorf("IsSupportedTopic(%q) = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestWebhookPayload_ConversationID(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"string id", `{"topic":"conversation.user.created","data":{"item":{"id":"123"}}}`, "123", false},
		{"numeric id", `{"topic":"conversation.user.created","data":{"item":{"id":456}}}`, "456", false},
		{"no data", `{"topic":"conversation.user.created"}`, "", true},
		{"null data", `{"topic":"conversation.user.created","data":null}`, "", true},
		{"no item", `{"topic":"conversation.user.created","data":{}}`, "", true},
		{"no id", `{"topic":"conversation.user.created","data":{"item":{}}}`, "", true},
		{"empty id", `{"topic":"conversation.user.created","data":{"item":{"id":""}}}`, "", true},
		{"data is a string", `{"topic":"conversation.user.created","data":"oops"}`, "", true},
		{"id is an object", `{"topic":"conversation.user.created","data":{"item":{"id":{}}}}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseWebhookPayload([]byte(tt.body))
			if err != nil {
				t.Fatalf("Unexpected parse error: %v", err)
			}

			got, err := p.ConversationID()
			if tt.wantErr {
				if !errors.Is(err, ErrMissingConversationID) {
					t.Errorf("Expected ErrMissingConversationID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseWebhookPayload_Malformed(t *testing.T) {
	for _, body := range []string{`not json`, `{"topic":`, `{"topic":42}`, ``} {
		if _, err := ParseWebhookPayload([]byte(body)); err == nil {
			t.Errorf("Expected error for %q", body)
		}
	}
}

func TestWebhookPayload_Event(t *testing.T) {
	p, err := ParseWebhookPayload([]byte(`{"topic":"conversation.user.replied","data":{"item":{"id":"c1"}}}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ev, err := p.Event()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ev.Topic != TopicUserReplied || ev.ConversationID != "c1" {
		t.Errorf("Unexpected event: %+v", ev)
	}
}
