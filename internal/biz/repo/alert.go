package repo

import "context"

// AlertRepo delivers operator alerts to a chat channel
type AlertRepo interface {
	// SendAlert posts a plain text alert
	SendAlert(ctx context.Context, text string) error
}
