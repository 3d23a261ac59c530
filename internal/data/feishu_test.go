package data

import (
	"context"
	"strings"
	"testing"
)

type fakeSender struct {
	chatID string
	title  string
	lines  []string
}

func (f *fakeSender) SendPost(ctx context.Context, chatID, title string, lines []string) error {
	f.chatID = chatID
	f.title = title
	f.lines = lines
	return nil
}

func TestNewFeishuAlertRepo_Disabled(t *testing.T) {
	if r := NewFeishuAlertRepo(nil, "oc_1"); r != nil {
		t.Error("Expected nil repo without sender")
	}
	if r := NewFeishuAlertRepo(&fakeSender{}, ""); r != nil {
		t.Error("Expected nil repo without chat id")
	}
}

func TestFeishuAlertRepo_SendAlert(t *testing.T) {
	sender := &fakeSender{}
	r := NewFeishuAlertRepo(sender, "oc_1")

	if err := r.SendAlert(context.Background(), "note failed\n\n  add the marker manually "); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sender.chatID != "oc_1" {
		t.Errorf("Expected chat oc_1, got %s", sender.chatID)
	}
	if sender.title != alertTitle {
		t.Errorf("Expected title %q, got %q", alertTitle, sender.title)
	}
	want := []string{"note failed", "add the marker manually"}
	if strings.Join(sender.lines, "|") != strings.Join(want, "|") {
		t.Errorf("Expected lines %q, got %q", want, sender.lines)
	}
}

func TestNewRepositories_NoAlerts(t *testing.T) {
	repos := NewRepositories(nil, nil, "")
	if repos.Alert != nil {
		t.Error("Expected alerts disabled")
	}
	if repos.Conversation == nil {
		t.Error("Expected conversation repo")
	}
}
