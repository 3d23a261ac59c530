package usecase

import (
	"time"

	"go.uber.org/zap"

	"github.com/devricklin/intercom-autoreply/internal/biz/domain"
)

// OfficeHoursConfig configures the office-hours evaluation
type OfficeHoursConfig struct {
	Schedule domain.WeeklySchedule
	Timezone string // IANA or display name; empty uses Local

	// DayInTimezone takes the weekday from the configured timezone as well.
	// When false the weekday comes from Local while the time of day comes
	// from the configured timezone.
	DayInTimezone bool

	// Local is the process timezone, defaults to time.Local
	Local *time.Location
}

// OfficeHoursDecision is the outcome of one evaluation, kept for logging
type OfficeHoursDecision struct {
	Day      time.Weekday
	Clock    int
	Window   domain.Window
	Open     bool
	Location *time.Location
}

// OfficeHoursUsecase decides whether humans are expected to be answering
type OfficeHoursUsecase struct {
	schedule      domain.WeeklySchedule
	location      *time.Location // nil when no timezone resolved
	local         *time.Location
	dayInTimezone bool
	logger        *zap.Logger
}

// NewOfficeHoursUsecase creates a new office-hours usecase.
// An unresolvable timezone is logged and evaluation falls back to Local.
func NewOfficeHoursUsecase(cfg OfficeHoursConfig, logger *zap.Logger) *OfficeHoursUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	local := cfg.Local
	if local == nil {
		local = time.Local
	}

	uc := &OfficeHoursUsecase{
		schedule:      cfg.Schedule,
		local:         local,
		dayInTimezone: cfg.DayInTimezone,
		logger:        logger,
	}

	if cfg.Timezone != "" {
		loc, err := domain.ResolveTimezone(cfg.Timezone)
		if err != nil {
			logger.Warn("invalid timezone, using local time",
				zap.String("timezone", cfg.Timezone), zap.Error(err))
		} else {
			uc.location = loc
		}
	}

	return uc
}

// Evaluate computes the office-hours decision for now
func (uc *OfficeHoursUsecase) Evaluate(now time.Time) OfficeHoursDecision {
	local := now.In(uc.local)
	clock := local
	loc := uc.local
	if uc.location != nil {
		clock = now.In(uc.location)
		loc = uc.location
	}

	day := local.Weekday()
	if uc.dayInTimezone {
		day = clock.Weekday()
	}

	window := uc.schedule.Window(day)
	code := domain.ClockCode(clock)

	return OfficeHoursDecision{
		Day:      day,
		Clock:    code,
		Window:   window,
		Open:     window.Contains(code),
		Location: loc,
	}
}

// IsOfficeHours reports whether now falls inside today's window
func (uc *OfficeHoursUsecase) IsOfficeHours(now time.Time) bool {
	d := uc.Evaluate(now)
	uc.logger.Debug("office hours evaluated",
		zap.Time("now", now),
		zap.String("location", d.Location.String()),
		zap.String("day", d.Day.String()),
		zap.Int("clock", d.Clock),
		zap.Int("start", d.Window.Start),
		zap.Int("stop", d.Window.Stop),
		zap.Bool("open", d.Open),
	)
	return d.Open
}
