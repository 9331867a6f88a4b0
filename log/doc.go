// Package log provides a concurrency-safe structured logger built on
// [log/slog].
//
// A [Logger] is configured once, at creation, with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// Every logging method takes [slog.Attr] values only:
//
//	logger.Info("wrote declarations", slog.String("path", out))
//
// Values implementing [slog.LogValuer] (such as the error types of this
// module) are resolved; in pretty text output their groups are flattened
// into dotted keys.
//
// # Package-level logger
//
// The functions [Trace], [Debug], [Info], [Warn], [Error] and their Context
// variants log through a package-level logger writing to standard error.
// [Config] applies options to it; the CLI does this once after parsing its
// log flags.
//
// # Levels and formats
//
// Five levels are defined, [LevelTrace] through [LevelError]. Records are
// encoded as [FormatText] (colorized with lipgloss unless [WithPretty] is
// false or the output is not a terminal) or [FormatJSON].
package log
