package log

import (
	"io"
	"sync"
)

// Option configures a [Logger]. Options are applied in order to a copy of
// the configuration, so a later option overrides an earlier one.
type Option func(config) config

func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// set applies fn to a copy of c while holding its mutex.
func (c config) set(fn func(*config)) config {
	if c.mutex == nil {
		c.mutex = &sync.RWMutex{}
	} else {
		c.mutex.Lock()
		defer c.mutex.Unlock()
	}

	fn(&c)

	return c
}

// WithDefaults resets every setting to its default and directs output to w.
func WithDefaults(w io.Writer) Option {
	return func(c config) config {
		return c.set(func(c *config) {
			c.output = orDiscard(w)
			c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
			c.level = DefaultLevel
			c.format = DefaultFormat
			c.caller = DefaultCaller
			c.pretty = DefaultPretty
		})
	}
}

// WithOutput directs output to w, or discards it if w is nil.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		return c.set(func(c *config) { c.output = orDiscard(w) })
	}
}

// WithLevel sets the minimum level of logged messages.
func WithLevel(level Level) Option {
	return func(c config) config {
		return c.set(func(c *config) { c.level = level })
	}
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return func(c config) config {
		return c.set(func(c *config) { c.format = format })
	}
}

// WithTimeLayout sets the timestamp layout.
//
// The layout is either a name from the [time] package (matched without
// regard to case or punctuation, e.g. "RFC3339Nano" or "kitchen") or a
// layout string passed verbatim to [time.Time.Format]. An empty layout or
// "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return func(c config) config {
		return c.set(func(c *config) { c.formatTime = format })
	}
}

// WithCaller enables or disables source locations.
func WithCaller(enable bool) Option {
	return func(c config) config {
		return c.set(func(c *config) { c.caller = enable })
	}
}

// WithPretty enables or disables colorized text output. It has no effect on
// [FormatJSON].
func WithPretty(enable bool) Option {
	return func(c config) config {
		return c.set(func(c *config) { c.pretty = enable })
	}
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}

	return w
}
