package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/ntro/log"
	"github.com/ardnew/ntro/pkg"
)

// DefaultDebounce is the quiet period that ends a burst of events.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatch is returned when the watched paths cannot be monitored.
var ErrWatch = pkg.MakeErrorf("failed to watch files")

// Func is the pipeline re-run on every change.
// Its errors are logged and do not stop the watcher.
type Func func(ctx context.Context) error

type config struct {
	debounce time.Duration
	logger   log.Logger
	ready    func()
}

// Option configures [Run].
type Option func(config) config

// WithDebounce sets the quiet period after the last event before the
// pipeline runs. Non-positive durations select [DefaultDebounce].
func WithDebounce(d time.Duration) Option {
	return func(c config) config {
		if d > 0 {
			c.debounce = d
		}

		return c
	}
}

// WithLogger sets the logger receiving pipeline and watcher errors.
func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = l

		return c
	}
}

// WithReady sets a function called once the watcher is installed and the
// first run has completed.
func WithReady(fn func()) Option {
	return func(c config) config {
		c.ready = fn

		return c
	}
}

// Run calls fn once, then again after every burst of writes, creations,
// or renames of the files in paths, until ctx is done.
//
// The parent directory of each path is watched, so files replaced by
// editors that save through a rename keep triggering runs, and files that
// do not exist yet trigger a run when created.
func Run(ctx context.Context, paths []string, fn Func, opts ...Option) error {
	cfg := config{debounce: DefaultDebounce, logger: log.Default()}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer w.Close()

	targets := make(map[string]bool, len(paths))

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return ErrWatch.Wrap(err)
		}

		targets[abs] = true
	}

	added := make(map[string]bool)

	for abs := range targets {
		dir := filepath.Dir(abs)
		if added[dir] {
			continue
		}

		if err := w.Add(dir); err != nil {
			return ErrWatch.Wrapf("%s: %w", dir, err)
		}

		added[dir] = true
	}

	cfg.run(ctx, fn)

	if cfg.ready != nil {
		cfg.ready()
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !relevant(ev) || !targets[filepath.Clean(ev.Name)] {
				continue
			}

			cfg.logger.TraceContext(ctx, "file changed",
				slog.String("path", ev.Name),
				slog.String("op", ev.Op.String()))

			if timer == nil {
				timer = time.NewTimer(cfg.debounce)
			} else {
				timer.Reset(cfg.debounce)
			}

			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			cfg.logger.WarnContext(ctx, "watcher error", slog.Any("error", err))

		case <-fire:
			fire = nil

			cfg.run(ctx, fn)
		}
	}
}

func (c config) run(ctx context.Context, fn Func) {
	if err := fn(ctx); err != nil && ctx.Err() == nil {
		c.logger.ErrorContext(ctx, "run failed", slog.Any("error", err))
	}
}

func relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
