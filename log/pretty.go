package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of a prettyHandler, bound to the color profile
// of its output.
type palette struct {
	key, str, num, on, off, dur, time lipgloss.Style
	levels                            map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		on:   fg("2"),
		off:  fg("1"),
		dur:  fg("5"),
		time: fg("4"),
		levels: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("8"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2").Bold(true),
			slog.LevelWarn:         fg("3").Bold(true),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	for _, at := range []slog.Level{
		slog.LevelError, slog.LevelWarn, slog.LevelInfo, slog.LevelDebug,
	} {
		if l >= at {
			return p.levels[at]
		}
	}

	return p.levels[slog.Level(LevelTrace)]
}

// prettyHandler writes colorized key=value lines without quoting.
// Nested groups and [slog.LogValuer] values are flattened to dotted keys.
type prettyHandler struct {
	opts   slog.HandlerOptions
	colors palette
	mu     *sync.Mutex
	w      io.Writer
	attrs  []byte // preformatted attributes from WithAttrs
	groups []string
}

// newPrettyHandler treats nil opts or a nil level as [slog.LevelInfo].
func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	var o slog.HandlerOptions
	if opts != nil {
		o = *opts
	}

	if o.Level == nil {
		o.Level = slog.LevelInfo
	}

	return &prettyHandler{
		opts:   o,
		colors: newPalette(w),
		mu:     &sync.Mutex{},
		w:      w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeBuiltin(buf, slog.Time(slog.TimeKey, r.Time))
	}

	h.writeBuiltin(buf, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeBuiltin(buf, slog.String(slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	h.writeBuiltin(buf, slog.String(slog.MessageKey, r.Message))

	if len(h.attrs) > 0 {
		buf.WriteByte(' ')
		buf.Write(h.attrs)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.groups, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	buf := bytes.NewBuffer(slices.Clone(h.attrs))
	for _, a := range attrs {
		h.writeAttr(buf, h.groups, a)
	}

	c := *h
	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// writeBuiltin writes one of the record fields through ReplaceAttr.
func (h *prettyHandler) writeBuiltin(buf *bytes.Buffer, a slog.Attr) {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Key == slog.LevelKey {
		if level, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(strings.ToUpper(Level(level).String()))
		}

		h.writeKey(buf, a.Key)
		buf.WriteString(h.colors.level(levelOf(a)).Render(a.Value.String()))

		return
	}

	h.writeKey(buf, a.Key)
	h.writeValue(buf, a.Value)
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		inner := a.Value.Group()
		if len(inner) == 0 {
			return
		}

		if a.Key != "" {
			groups = append(slices.Clip(groups), a.Key)
		}

		for _, g := range inner {
			h.writeAttr(buf, groups, g)
		}

		return
	}

	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	h.writeKey(buf, strings.Join(append(slices.Clip(groups), a.Key), "."))
	h.writeValue(buf, a.Value)
}

func (h *prettyHandler) writeKey(buf *bytes.Buffer, key string) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.colors.key.Render(key))
	buf.WriteByte('=')
}

func (h *prettyHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	var style lipgloss.Style

	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		style = h.colors.num

	case slog.KindBool:
		if v.Bool() {
			style = h.colors.on
		} else {
			style = h.colors.off
		}

	case slog.KindDuration:
		style = h.colors.dur

	case slog.KindTime:
		style = h.colors.time

	default:
		style = h.colors.str
	}

	buf.WriteString(style.Render(v.String()))
}

// levelOf recovers the level from a level attribute already rendered to a
// name by ReplaceAttr.
func levelOf(a slog.Attr) slog.Level {
	if level, ok := a.Value.Any().(slog.Level); ok {
		return level
	}

	return slog.Level(ParseLevel(a.Value.String()))
}
