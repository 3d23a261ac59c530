package data

import (
	"context"
	"strings"

	"github.com/devricklin/intercom-autoreply/internal/biz/repo"
)

// alertTitle heads every ops alert in the chat
const alertTitle = "Intercom auto-reply alert"

// PostSender sends titled rich-text messages to a chat; implemented by feishu.Client
type PostSender interface {
	SendPost(ctx context.Context, chatID, title string, lines []string) error
}

// feishuAlertRepo implements the alert repository over a Feishu chat
type feishuAlertRepo struct {
	sender PostSender
	chatID string
}

// NewFeishuAlertRepo creates an alert repository posting to chatID.
// Returns nil when alerts are not configured.
func NewFeishuAlertRepo(sender PostSender, chatID string) repo.AlertRepo {
	if sender == nil || chatID == "" {
		return nil
	}
	return &feishuAlertRepo{sender: sender, chatID: chatID}
}

// SendAlert posts the alert, one paragraph per line of text
func (r *feishuAlertRepo) SendAlert(ctx context.Context, text string) error {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return r.sender.SendPost(ctx, r.chatID, alertTitle, lines)
}
