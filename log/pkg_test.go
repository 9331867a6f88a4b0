package log

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func typeName(v any) string { return fmt.Sprintf("%T", v) }

func swapDefault(t *testing.T, opts ...Option) *bytes.Buffer {
	t.Helper()

	original := Default()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	})

	var buf bytes.Buffer

	Config(append([]Option{WithOutput(&buf)}, opts...)...)

	return &buf
}

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	buf := swapDefault(t, WithLevel(LevelTrace), WithFormat(FormatJSON))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"WarnContext", func(msg string, attrs ...slog.Attr) {
			WarnContext(t.Context(), msg, attrs...)
		}, "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("package message", slog.String("key", "value"))

			out := buf.String()
			for _, want := range []string{"package message", tt.level, `"key":"value"`} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in %s", want, out)
				}
			}
		})
	}
}

func TestPackage_Caller(t *testing.T) {
	buf := swapDefault(t, WithCaller(true), WithPretty(false))

	Info("where")

	if !strings.Contains(buf.String(), "pkg_test.go:") {
		t.Errorf("caller is not this file: %s", buf.String())
	}
}

func TestPackage_With(t *testing.T) {
	buf := swapDefault(t, WithPretty(false))

	With(slog.String("cmd", "env")).Info("run")

	if !strings.Contains(buf.String(), "cmd=env") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
