package intercom

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindConversation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/conversations/123" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "app" || pass != "key" {
			t.Errorf("Expected basic auth app/key, got %q %q %v", user, pass, ok)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"type": "conversation",
			"id": "123",
			"conversation_parts": {
				"type": "conversation_part.list",
				"conversation_parts": [
					{"type": "conversation_part", "id": "p1", "part_type": "comment", "body": "<p>Hi</p>", "created_at": 1},
					{"type": "conversation_part", "id": "p2", "part_type": "note", "body": "<p>Out of office autoresponder: 1700000000</p>", "created_at": 2}
				],
				"total_count": 2
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient("app", "key", WithBaseURL(srv.URL))

	conv, err := client.FindConversation(context.Background(), "123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if conv.ID != "123" {
		t.Errorf("Expected id 123, got %s", conv.ID)
	}
	parts := conv.ConversationParts.Parts
	if len(parts) != 2 {
		t.Fatalf("Expected 2 parts, got %d", len(parts))
	}
	if parts[1].PartType != PartTypeNote || parts[1].ID != "p2" {
		t.Errorf("Unexpected second part: %+v", parts[1])
	}
}

func TestReplyToConversation(t *testing.T) {
	var got ReplyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/conversations/abc/reply" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Errorf("Expected bearer token, got %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		w.Write([]byte(`{"type":"conversation","id":"abc"}`))
	}))
	defer srv.Close()

	client := NewClient("", "", WithBaseURL(srv.URL+"/"), WithAccessToken("tok"))

	err := client.ReplyToConversation(context.Background(), "abc", ReplyRequest{
		Type:        ReplyTypeAdmin,
		AdminID:     "42",
		MessageType: MessageTypeNote,
		Body:        "Out of office autoresponder: 1700000000",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := ReplyRequest{Type: "admin", AdminID: "42", MessageType: "note", Body: "Out of office autoresponder: 1700000000"}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"type":"error.list","errors":[{"code":"not_found"}]}`))
	}))
	defer srv.Close()

	client := NewClient("app", "key", WithBaseURL(srv.URL))

	_, err := client.FindConversation(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", apiErr.StatusCode)
	}
}

func TestFindConversation_EscapesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/conversations/a%2Fb" {
			t.Errorf("Expected escaped id, got %s", r.URL.EscapedPath())
		}
		w.Write([]byte(`{"id":"a/b"}`))
	}))
	defer srv.Close()

	client := NewClient("app", "key", WithBaseURL(srv.URL))
	if _, err := client.FindConversation(context.Background(), "a/b"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}
