package conf

import (
	"os"
	"strings"
	"time"

	"github.com/devricklin/intercom-autoreply/internal/biz/domain"
	"github.com/devricklin/intercom-autoreply/internal/biz/usecase"
)

// DefaultListenAddr is used when neither LISTEN_ADDR nor PORT is set
const DefaultListenAddr = ":4567"

// dayPrefixes are the env var prefixes for each weekday, e.g. mon_time_start
var dayPrefixes = [7]string{
	time.Sunday:    "sun",
	time.Monday:    "mon",
	time.Tuesday:   "tues",
	time.Wednesday: "wed",
	time.Thursday:  "thurs",
	time.Friday:    "fri",
	time.Saturday:  "sat",
}

// Config represents application configuration
type Config struct {
	// Intercom configuration
	Intercom IntercomConfig

	// Webhook shared secret, empty accepts all data
	Secret string

	// Reply configuration
	Reply ReplyValues

	// Office hours configuration
	Schedule ScheduleConfig

	// Feishu ops alerts (optional)
	Feishu FeishuConfig

	// HTTP listen address
	ListenAddr string

	// Debug mode
	Debug bool

	// invalid values found while loading, reported by Validate
	invalid []*ConfigError
}

// IntercomConfig contains Intercom API credentials
type IntercomConfig struct {
	AppID       string
	APIKey      string
	AccessToken string // preferred over AppID/APIKey when set
	BaseURL     string
}

// ReplyValues contains the reply text and attribution
type ReplyValues struct {
	AdminID string
	Message string
}

// ScheduleConfig contains the weekly office hours and timezone
type ScheduleConfig struct {
	Timezone      string
	DayInTimezone bool
	Days          domain.WeeklySchedule
	ConfigPath    string
}

// FeishuConfig contains Feishu alert configuration
type FeishuConfig struct {
	AppID       string
	AppSecret   string
	AlertChatID string
}

// Enabled reports whether ops alerts should be sent
func (c *FeishuConfig) Enabled() bool {
	return c.AppID != "" && c.AppSecret != "" && c.AlertChatID != ""
}

// LoadFromEnv loads configuration from environment variables.
// Malformed values are collected and returned by Validate.
func LoadFromEnv() *Config {
	cfg := &Config{
		Intercom: IntercomConfig{
			AppID:       os.Getenv("APP_ID"),
			APIKey:      os.Getenv("API_KEY"),
			AccessToken: os.Getenv("ACCESS_TOKEN"),
			BaseURL:     os.Getenv("INTERCOM_BASE_URL"),
		},
		Secret: os.Getenv("secret"),
		Reply: ReplyValues{
			AdminID: os.Getenv("bot_admin_id"),
			Message: os.Getenv("message"),
		},
		Feishu: FeishuConfig{
			AppID:       os.Getenv("FEISHU_APP_ID"),
			AppSecret:   os.Getenv("FEISHU_APP_SECRET"),
			AlertChatID: os.Getenv("FEISHU_ALERT_CHAT_ID"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	// Listen address
	cfg.ListenAddr = os.Getenv("LISTEN_ADDR")
	if cfg.ListenAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.ListenAddr = ":" + port
		} else {
			cfg.ListenAddr = DefaultListenAddr
		}
	}

	// Schedule file first so env values win
	cfg.Schedule.ConfigPath = os.Getenv("SCHEDULE_CONFIG_PATH")
	if cfg.Schedule.ConfigPath != "" {
		file, err := LoadScheduleFile(cfg.Schedule.ConfigPath)
		if err != nil {
			cfg.invalid = append(cfg.invalid, &ConfigError{Field: "SCHEDULE_CONFIG_PATH", Message: err.Error()})
		} else {
			cfg.invalid = append(cfg.invalid, file.apply(&cfg.Schedule)...)
		}
	}

	if tz := os.Getenv("timezone"); tz != "" {
		cfg.Schedule.Timezone = tz
	}
	cfg.Schedule.DayInTimezone = os.Getenv("SCHEDULE_DAY_IN_TIMEZONE") == "true"

	for day, prefix := range dayPrefixes {
		h := &cfg.Schedule.Days.Days[day]
		if v := cfg.clockFromEnv(prefix + "_time_start"); v != nil {
			h.Start = v
		}
		if v := cfg.clockFromEnv(prefix + "_time_stop"); v != nil {
			h.Stop = v
		}
	}

	return cfg
}

// clockFromEnv parses an HHMM env var, returning nil when unset or invalid
func (c *Config) clockFromEnv(key string) *int {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	code, err := domain.ParseClockCode(val)
	if err != nil {
		c.invalid = append(c.invalid, &ConfigError{Field: key, Message: err.Error()})
		return nil
	}
	return &code
}

// ToOfficeHoursConfig converts to office-hours usecase configuration
func (c *Config) ToOfficeHoursConfig() usecase.OfficeHoursConfig {
	return usecase.OfficeHoursConfig{
		Schedule:      c.Schedule.Days,
		Timezone:      c.Schedule.Timezone,
		DayInTimezone: c.Schedule.DayInTimezone,
	}
}

// ToReplyConfig converts to reply usecase configuration
func (c *Config) ToReplyConfig() usecase.ReplyConfig {
	return usecase.ReplyConfig{
		AdminID: c.Reply.AdminID,
		Message: c.Reply.Message,
		Marker:  domain.MarkerPrefix,
	}
}

// ValidateSchedule reports the first malformed schedule or timezone source value
func (c *Config) ValidateSchedule() error {
	if len(c.invalid) > 0 {
		return c.invalid[0]
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.ValidateSchedule(); err != nil {
		return err
	}
	if c.Intercom.AccessToken == "" && (c.Intercom.AppID == "" || c.Intercom.APIKey == "") {
		return &ConfigError{Field: "ACCESS_TOKEN or APP_ID/API_KEY", Message: "required"}
	}
	if strings.TrimSpace(c.Reply.AdminID) == "" {
		return &ConfigError{Field: "bot_admin_id", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
