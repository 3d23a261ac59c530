package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/devricklin/intercom-autoreply/internal/biz/domain"
	"github.com/devricklin/intercom-autoreply/internal/biz/repo"
)

// DefaultMessage is sent to the customer when no message is configured
const DefaultMessage = "We are not available at the moment, we'll get back to you as soon as possible"

var (
	// ErrDispatchFailed is returned when the customer-facing reply could not be sent
	ErrDispatchFailed = errors.New("auto-reply not sent")
	// ErrPartialDispatch is returned when the customer saw the reply but the marker note failed
	ErrPartialDispatch = errors.New("auto-reply sent without marker note")
)

// ReplyConfig configures the reply dispatcher
type ReplyConfig struct {
	AdminID string
	Message string
	Marker  string
}

// ReplyUsecase sends the off-hours reply and its marker note
type ReplyUsecase struct {
	convRepo  repo.ConversationRepo
	alertRepo repo.AlertRepo // optional
	config    ReplyConfig
	logger    *zap.Logger
}

// NewReplyUsecase creates a new reply usecase
func NewReplyUsecase(convRepo repo.ConversationRepo, alertRepo repo.AlertRepo, cfg ReplyConfig, logger *zap.Logger) *ReplyUsecase {
	if cfg.Message == "" {
		cfg.Message = DefaultMessage
	}
	if cfg.Marker == "" {
		cfg.Marker = domain.MarkerPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplyUsecase{
		convRepo:  convRepo,
		alertRepo: alertRepo,
		config:    cfg,
		logger:    logger,
	}
}

// Dispatch posts the customer-facing comment then the internal marker note.
// The two calls are sequential; there is no rollback if the second fails.
func (uc *ReplyUsecase) Dispatch(ctx context.Context, conversationID string, now time.Time) error {
	comment := &domain.Reply{
		ConversationID: conversationID,
		AdminID:        uc.config.AdminID,
		MessageType:    domain.MessageTypeComment,
		Body:           uc.config.Message,
	}
	if err := uc.convRepo.Reply(ctx, comment); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	note := &domain.Reply{
		ConversationID: conversationID,
		AdminID:        uc.config.AdminID,
		MessageType:    domain.MessageTypeNote,
		Body:           domain.MarkerNote(uc.config.Marker, now),
	}
	if err := uc.convRepo.Reply(ctx, note); err != nil {
		uc.alert(ctx, fmt.Sprintf(
			"Auto-reply sent to conversation %s but the marker note failed: %v\n"+
				"Another auto-reply may follow on the next customer message.\n"+
				"Add this internal note manually: %s",
			conversationID, err, note.Body))
		return fmt.Errorf("%w: %w", ErrPartialDispatch, err)
	}

	uc.logger.Info("auto-reply sent", zap.String("conversation_id", conversationID))
	return nil
}

func (uc *ReplyUsecase) alert(ctx context.Context, text string) {
	if uc.alertRepo == nil {
		return
	}
	if err := uc.alertRepo.SendAlert(ctx, text); err != nil {
		uc.logger.Warn("failed to send alert", zap.Error(err))
	}
}
