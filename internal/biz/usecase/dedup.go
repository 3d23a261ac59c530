package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/devricklin/intercom-autoreply/internal/biz/domain"
	"github.com/devricklin/intercom-autoreply/internal/biz/repo"
)

// DefaultReplyWindow is how long a previous auto-reply suppresses another
const DefaultReplyWindow = 24 * time.Hour

// DedupUsecase looks for an earlier auto-reply marker note on a conversation
type DedupUsecase struct {
	convRepo repo.ConversationRepo
	marker   string
	window   time.Duration
	logger   *zap.Logger
}

// NewDedupUsecase creates a new dedup usecase
func NewDedupUsecase(convRepo repo.ConversationRepo, marker string, window time.Duration, logger *zap.Logger) *DedupUsecase {
	if marker == "" {
		marker = domain.MarkerPrefix
	}
	if window <= 0 {
		window = DefaultReplyWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DedupUsecase{
		convRepo: convRepo,
		marker:   marker,
		window:   window,
		logger:   logger,
	}
}

// WasRepliedRecently fetches the conversation and reports whether an
// auto-reply marker newer than the window exists
func (uc *DedupUsecase) WasRepliedRecently(ctx context.Context, conversationID string, now time.Time) (bool, error) {
	conv, err := uc.convRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return false, fmt.Errorf("get conversation: %w", err)
	}

	_, found := uc.FindRecentReply(conv.Notes(), now)
	return found, nil
}

// FindRecentReply scans internal notes for a marker whose timestamp is
// strictly less than the window before now, returning the first hit.
// Notes without a parseable timestamp are skipped.
func (uc *DedupUsecase) FindRecentReply(notes []domain.ConversationNote, now time.Time) (time.Time, bool) {
	windowSec := int64(uc.window / time.Second)
	for _, n := range notes {
		if !n.IsInternalNote() || !domain.HasMarker(n.Body, uc.marker) {
			continue
		}
		ts, err := domain.ParseMarkerTimestamp(n.Body)
		if err != nil {
			uc.logger.Debug("skipping marker note", zap.String("part_id", n.ID), zap.Error(err))
			continue
		}
		if now.Unix()-ts.Unix() < windowSec {
			return ts, true
		}
	}
	return time.Time{}, false
}
