package log

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestConfig_Options(t *testing.T) {
	c := apply(config{},
		WithLevel(LevelWarn),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
	)

	if c.level != LevelWarn || c.format != FormatJSON || !c.caller || c.pretty {
		t.Errorf("options not applied: %+v", c)
	}

	if c.mutex == nil {
		t.Error("options did not initialize the mutex")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{" info ", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelsAndFormats(t *testing.T) {
	if got, want := slices.Collect(Levels()), []string{"trace", "debug", "info", "warn", "error"}; !slices.Equal(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}

	if got, want := slices.Collect(Formats()), []string{"text", "json"}; !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}

	if got := Level(3).String(); got != "Level(3)" {
		t.Errorf("unknown level String() = %q", got)
	}
}

func TestConfig_formatTime(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"rfc3339", "RFC3339", "2023-10-15T14:30:45Z"},
		{"rfc3339 nano", "RFC3339Nano", "2023-10-15T14:30:45.123456789Z"},
		{"punctuation ignored", "rfc-3339", "2023-10-15T14:30:45Z"},
		{"kitchen", "kitchen", "2:30PM"},
		{"custom", "2006-01-02 15:04", "2023-10-15 14:30"},
		{"unknown name is a layout", "UNKNOWN", "UNKNOWN"},
		{"none", "none", ""},
		{"empty", "", ""},
		{"whitespace", "  \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithTimeLayout(tt.layout)(config{}).formatTime(now)
			if got != tt.want {
				t.Errorf("formatTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_handler(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		prefix string
	}{
		{"json", []Option{WithFormat(FormatJSON)}, "*slog.JSONHandler"},
		{"text", []Option{WithPretty(false)}, "*slog.TextHandler"},
		{"pretty", nil, "*log.prettyHandler"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := makeConfig(nil, tt.opts...).handler()

			if got := typeName(h); !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("handler type = %s, want %s", got, tt.prefix)
			}
		})
	}
}
