package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/devricklin/intercom-autoreply/internal/biz"
	"github.com/devricklin/intercom-autoreply/internal/biz/domain"
	"github.com/devricklin/intercom-autoreply/internal/biz/usecase"
	"github.com/devricklin/intercom-autoreply/internal/data"
	"github.com/devricklin/intercom-autoreply/internal/infra/feishu"
	"github.com/devricklin/intercom-autoreply/internal/infra/intercom"
	"github.com/devricklin/intercom-autoreply/internal/metrics"
	"github.com/devricklin/intercom-autoreply/internal/server"
	"github.com/devricklin/intercom-autoreply/internal/service"
)

// ServeCmd runs the webhook receiver
type ServeCmd struct {
	ShutdownTimeout time.Duration `help:"Grace period for in-flight deliveries on shutdown." default:"10s"`
}

func (c *ServeCmd) Run(app *App) error {
	cfg := app.Config
	logger := app.Logger

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize clients
	opts := []intercom.Option{intercom.WithBaseURL(cfg.Intercom.BaseURL)}
	if cfg.Intercom.AccessToken != "" {
		opts = append(opts, intercom.WithAccessToken(cfg.Intercom.AccessToken))
	}
	intercomClient := intercom.NewClient(cfg.Intercom.AppID, cfg.Intercom.APIKey, opts...)

	var feishuClient *feishu.Client
	if cfg.Feishu.Enabled() {
		feishuClient = feishu.NewClient(cfg.Feishu.AppID, cfg.Feishu.AppSecret)
		logger.Info("ops alerts enabled", zap.String("chat_id", cfg.Feishu.AlertChatID))
	}

	// Initialize data layer
	repos := data.NewRepositories(intercomClient, feishuClient, cfg.Feishu.AlertChatID)

	// Initialize usecases
	uc := &biz.Usecases{
		Signature:   usecase.NewSignatureVerifier(cfg.Secret),
		OfficeHours: usecase.NewOfficeHoursUsecase(cfg.ToOfficeHoursConfig(), logger),
		Dedup:       usecase.NewDedupUsecase(repos.Conversation, domain.MarkerPrefix, usecase.DefaultReplyWindow, logger),
		Reply:       usecase.NewReplyUsecase(repos.Conversation, repos.Alert, cfg.ToReplyConfig(), logger),
	}
	if !uc.Signature.Enabled() {
		logger.Warn("no webhook secret configured, accepting all deliveries")
	}

	// Initialize service and metrics
	webhookSvc := service.NewWebhookService(uc, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	srv := server.NewServer(cfg.ListenAddr, webhookSvc, m, reg, logger)

	// Graceful shutdown: Run returns only once in-flight deliveries have drained
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, c.ShutdownTimeout); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	logger.Info("shut down")
	return nil
}

// CheckCmd prints the office-hours decision for a point in time
type CheckCmd struct {
	At time.Time `help:"Time to evaluate (RFC3339). Defaults to now." format:"2006-01-02T15:04:05Z07:00"`
}

func (c *CheckCmd) Run(app *App) error {
	if err := app.Config.ValidateSchedule(); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	at := c.At
	if at.IsZero() {
		at = time.Now()
	}

	oh := usecase.NewOfficeHoursUsecase(app.Config.ToOfficeHoursConfig(), app.Logger)
	d := oh.Evaluate(at)
	writeDecision(os.Stdout, at, d)
	return nil
}

func writeDecision(w io.Writer, at time.Time, d usecase.OfficeHoursDecision) {
	state := "closed (auto-reply active)"
	if d.Open {
		state = "open (no auto-reply)"
	}
	fmt.Fprintf(w, "Time:     %s\n", at.Format(time.RFC3339))
	fmt.Fprintf(w, "Location: %s\n", d.Location)
	fmt.Fprintf(w, "Day:      %s\n", d.Day)
	fmt.Fprintf(w, "Clock:    %04d\n", d.Clock)
	fmt.Fprintf(w, "Window:   %s\n", d.Window)
	fmt.Fprintf(w, "Office:   %s\n", state)
}

// SignCmd computes the signature a sender would attach to a payload
type SignCmd struct {
	Payload string `arg:"" help:"Payload file, or - for stdin." default:"-"`
	Secret  string `help:"Shared secret. Defaults to the configured secret." env:"secret"`
}

func (c *SignCmd) Run(app *App) error {
	secret := c.Secret
	if secret == "" {
		secret = app.Config.Secret
	}
	if secret == "" {
		return fmt.Errorf("no secret given")
	}

	var r io.Reader = os.Stdin
	if c.Payload != "-" {
		f, err := os.Open(c.Payload)
		if err != nil {
			return fmt.Errorf("failed to open payload: %w", err)
		}
		defer f.Close()
		r = f
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	fmt.Println(usecase.Sign(payload, secret))
	return nil
}
