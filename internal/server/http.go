package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/devricklin/intercom-autoreply/internal/biz/usecase"
	"github.com/devricklin/intercom-autoreply/internal/metrics"
	"github.com/devricklin/intercom-autoreply/internal/service"
)

// MaxBodyBytes bounds the webhook body read into memory
const MaxBodyBytes = 1 << 20

// RequestIDHeader carries a caller supplied delivery id
const RequestIDHeader = "X-Request-Id"

// WebhookHandler is the part of the service the server depends on
type WebhookHandler interface {
	Handle(ctx context.Context, req *service.WebhookRequest) (service.Outcome, error)
}

// Server is the inbound HTTP boundary for webhook deliveries
type Server struct {
	webhook  WebhookHandler
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *zap.Logger

	addr string
}

// NewServer creates a new HTTP server. m and gatherer may be nil.
func NewServer(addr string, webhook WebhookHandler, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		webhook:  webhook,
		metrics:  m,
		gatherer: gatherer,
		logger:   logger,
		addr:     addr,
	}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleWebhook)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return mux
}

// Run listens on the configured address until ctx is done, then drains
// in-flight deliveries for up to grace before returning
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln, grace)
}

// Serve accepts on ln until ctx is done. It returns only after Shutdown has
// finished, so a delivery that already posted its comment gets to post its note.
func (s *Server) Serve(ctx context.Context, ln net.Listener, grace time.Duration) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()
	s.logger.Info("starting HTTP server", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("draining in-flight deliveries", zap.Duration("grace", grace))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	deliveryID := r.Header.Get(RequestIDHeader)
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}
	log := s.logger.With(zap.String("delivery_id", deliveryID))
	log.Debug("webhook headers", zap.Any("headers", redactHeaders(r.Header)))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		log.Warn("failed to read body", zap.Error(err))
		s.metrics.ObserveDelivery(string(service.OutcomeFailed), time.Since(start))
		http.Error(w, "could not read body", http.StatusBadRequest)
		return
	}

	outcome, err := s.webhook.Handle(r.Context(), &service.WebhookRequest{
		DeliveryID: deliveryID,
		Body:       body,
		Signature:  r.Header.Get(usecase.SignatureHeader),
	})
	s.metrics.ObserveDelivery(string(outcome), time.Since(start))

	if err != nil {
		status, msg := statusFor(err)
		log.Error("webhook failed", zap.String("outcome", string(outcome)), zap.Int("status", status), zap.Error(err))
		http.Error(w, msg, status)
		return
	}

	log.Info("webhook handled", zap.String("outcome", string(outcome)), zap.Duration("elapsed", time.Since(start)))
	w.WriteHeader(http.StatusOK)
}

// statusFor maps a service error to the response status and plaintext body
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrSignatureMismatch):
		return http.StatusInternalServerError, "Signatures didn't match!"
	case errors.Is(err, service.ErrMalformedPayload):
		// unparseable bodies fail like any other error, no 4xx
		return http.StatusInternalServerError, "malformed payload"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		if k == usecase.SignatureHeader || k == "Authorization" {
			out[k] = "[redacted]"
			continue
		}
		out[k] = h.Get(k)
	}
	return out
}
