package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/devricklin/intercom-autoreply/internal/biz"
	"github.com/devricklin/intercom-autoreply/internal/biz/domain"
	"github.com/devricklin/intercom-autoreply/internal/biz/usecase"
)

// ErrMalformedPayload is returned when the webhook body is not valid JSON
var ErrMalformedPayload = errors.New("malformed webhook payload")

// Outcome is the terminal state of one delivery
type Outcome string

const (
	OutcomeDispatched       Outcome = "dispatched"
	OutcomeUnsupportedTopic Outcome = "unsupported_topic"
	OutcomeMissingID        Outcome = "missing_conversation_id"
	OutcomeOfficeHours      Outcome = "office_hours"
	OutcomeAlreadyReplied   Outcome = "already_replied"
	OutcomeFailed           Outcome = "failed"
)

// WebhookRequest represents one inbound delivery
type WebhookRequest struct {
	DeliveryID string
	Body       []byte
	Signature  string
}

// WebhookService runs a delivery through verify, parse, topic filter,
// office-hours gate, dedup gate and dispatch, in that order
type WebhookService struct {
	signature   *usecase.SignatureVerifier
	officeHours *usecase.OfficeHoursUsecase
	dedup       *usecase.DedupUsecase
	reply       *usecase.ReplyUsecase
	now         func() time.Time
	logger      *zap.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(uc *biz.Usecases, logger *zap.Logger) *WebhookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookService{
		signature:   uc.Signature,
		officeHours: uc.OfficeHours,
		dedup:       uc.Dedup,
		reply:       uc.Reply,
		now:         time.Now,
		logger:      logger,
	}
}

// SetClock replaces the time source
func (s *WebhookService) SetClock(now func() time.Time) {
	s.now = now
}

// Handle processes one delivery synchronously. Drops return a nil error
// with the outcome describing why nothing was sent.
func (s *WebhookService) Handle(ctx context.Context, req *WebhookRequest) (Outcome, error) {
	log := s.logger.With(zap.String("delivery_id", req.DeliveryID))
	log.Debug("webhook received", zap.ByteString("body", req.Body))

	// 1. Verify signature
	result, err := s.signature.Verify(req.Body, req.Signature)
	switch result {
	case usecase.SignatureSkipped:
		log.Debug("no secret configured, accepting all data")
	case usecase.SignatureUnsigned:
		log.Warn("request not signed, accepting")
	case usecase.SignatureInvalid:
		log.Warn("signature mismatch", zap.String("signature", req.Signature))
	}
	if err != nil {
		return OutcomeFailed, err
	}

	// 2. Parse
	payload, err := domain.ParseWebhookPayload(req.Body)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	log = log.With(zap.String("topic", payload.Topic))
	log.Debug("topic received")

	// 3. Topic filter
	if !domain.IsSupportedTopic(payload.Topic) {
		return OutcomeUnsupportedTopic, nil
	}

	// 4. Office hours
	now := s.now()
	if s.officeHours.IsOfficeHours(now) {
		log.Debug("inside office hours, not replying")
		return OutcomeOfficeHours, nil
	}

	event, err := payload.Event()
	if err != nil {
		log.Warn("could not retrieve conversation id", zap.Error(err))
		return OutcomeMissingID, nil
	}
	log = log.With(zap.String("conversation_id", event.ConversationID))

	// 5. Dedup
	recent, err := s.dedup.WasRepliedRecently(ctx, event.ConversationID, now)
	if err != nil {
		return OutcomeFailed, err
	}
	if recent {
		log.Info("auto-reply already sent in the last 24 hours")
		return OutcomeAlreadyReplied, nil
	}

	// 6. Dispatch
	log.Info("sending out of office reply")
	// the marker records when the reply went out, after the conversation fetch
	if err := s.reply.Dispatch(ctx, event.ConversationID, s.now()); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeDispatched, nil
}
