package conf

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/devricklin/intercom-autoreply/internal/biz/domain"
)

// ScheduleFile is the optional YAML office-hours overlay:
//
//	timezone: Europe/Paris
//	days:
//	  monday:    {start: 800, stop: 1800}
//	  saturday:  {start: 1000, stop: 1400}
type ScheduleFile struct {
	Timezone string                  `yaml:"timezone"`
	Days     map[string]ScheduleHours `yaml:"days"`
}

// ScheduleHours holds HHMM values as written in the file. Strings keep
// values like "0900" from being read as octal.
type ScheduleHours struct {
	Start string `yaml:"start"`
	Stop  string `yaml:"stop"`
}

// LoadScheduleFile loads the schedule overlay from a YAML file
func LoadScheduleFile(path string) (*ScheduleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}

	var file ScheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse schedule file: %w", err)
	}

	for name := range file.Days {
		if _, ok := domain.WeekdayByName(name); !ok {
			return nil, fmt.Errorf("unknown weekday %q in schedule file", name)
		}
	}

	return &file, nil
}

// apply copies the file values into cfg, returning any malformed entries
func (f *ScheduleFile) apply(cfg *ScheduleConfig) []*ConfigError {
	var invalid []*ConfigError

	if f.Timezone != "" {
		cfg.Timezone = f.Timezone
	}

	for name, hours := range f.Days {
		day, _ := domain.WeekdayByName(name)
		h := &cfg.Days.Days[day]

		for _, v := range []struct {
			field string
			raw   string
			dst   **int
		}{
			{"start", hours.Start, &h.Start},
			{"stop", hours.Stop, &h.Stop},
		} {
			if strings.TrimSpace(v.raw) == "" {
				continue
			}
			code, err := domain.ParseClockCode(v.raw)
			if err != nil {
				invalid = append(invalid, &ConfigError{
					Field:   "days." + strings.ToLower(name) + "." + v.field,
					Message: err.Error(),
				})
				continue
			}
			*v.dst = &code
		}
	}

	return invalid
}
