package watch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ardnew/ntro/log"
)

type harness struct {
	runs  chan int
	ready chan struct{}
	done  chan error
}

func start(t *testing.T, paths []string, fn Func, opts ...Option) *harness {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{
		runs:  make(chan int, 16),
		ready: make(chan struct{}),
		done:  make(chan error, 1),
	}

	var n atomic.Int32

	wrapped := func(ctx context.Context) error {
		h.runs <- int(n.Add(1))

		return fn(ctx)
	}

	opts = append(opts, WithReady(func() { close(h.ready) }))

	go func() { h.done <- Run(ctx, paths, wrapped, opts...) }()

	t.Cleanup(func() {
		cancel()

		select {
		case <-h.done:
		case <-time.After(5 * time.Second):
			t.Error("Run did not return after cancel")
		}
	})

	select {
	case <-h.ready:
	case err := <-h.done:
		t.Fatalf("Run returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher not ready")
	}

	return h
}

func (h *harness) expectRun(t *testing.T, want int) {
	t.Helper()

	select {
	case got := <-h.runs:
		if got != want {
			t.Errorf("run %d, want %d", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run %d did not happen", want)
	}
}

func (h *harness) expectQuiet(t *testing.T, d time.Duration) {
	t.Helper()

	select {
	case got := <-h.runs:
		t.Errorf("unexpected run %d", got)
	case <-time.After(d):
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_RerunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	write(t, env, "A=1\n")

	h := start(t, []string{env}, func(context.Context) error { return nil },
		WithDebounce(20*time.Millisecond))

	h.expectRun(t, 1)

	write(t, env, "A=2\n")
	h.expectRun(t, 2)

	write(t, env, "A=3\n")
	h.expectRun(t, 3)
}

func TestRun_Debounces(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	write(t, env, "")

	h := start(t, []string{env}, func(context.Context) error { return nil },
		WithDebounce(200*time.Millisecond))

	h.expectRun(t, 1)

	for i := range 5 {
		write(t, env, strings.Repeat("A=1\n", i+1))
	}

	h.expectRun(t, 2)
	h.expectQuiet(t, 400*time.Millisecond)
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	write(t, env, "")

	h := start(t, []string{env}, func(context.Context) error { return nil },
		WithDebounce(20*time.Millisecond))

	h.expectRun(t, 1)

	write(t, filepath.Join(dir, "env.d.ts"), "declare namespace NodeJS {}\n")
	h.expectQuiet(t, 200*time.Millisecond)
}

func TestRun_CreatedLater(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env.local")

	h := start(t, []string{env}, func(context.Context) error { return nil },
		WithDebounce(20*time.Millisecond))

	h.expectRun(t, 1)

	write(t, env, "B=1\n")
	h.expectRun(t, 2)
}

func TestRun_LogsErrors(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	write(t, env, "")

	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithFormat(log.FormatJSON))

	h := start(t, []string{env}, func(context.Context) error { return errors.New("boom") },
		WithLogger(logger))

	h.expectRun(t, 1)

	// The first run completes before the watcher reports ready.
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("error not logged: %q", buf.String())
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", ".env")

	err := Run(context.Background(), []string{missing}, func(context.Context) error {
		t.Error("pipeline ran")

		return nil
	})
	if !errors.Is(err, ErrWatch) {
		t.Errorf("Run() error = %v, want ErrWatch", err)
	}
}
