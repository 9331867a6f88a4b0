// Package cli contains the command line interface for ntro.
//
// # Usage
//
//	ntro [flags] [env] [SOURCE...]
//	ntro yaml SOURCE [-o DIR]
//	ntro inspect [SOURCE...]
//	ntro init [--force]
//	ntro completion bash|zsh|fish
//
// env is the default command. It reads the sources given as arguments, then
// those in the PATH-like list NTRO_SOURCES, or .env if there are none.
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the ntro
// configuration directory (for example ~/.config/ntro). YAML keys may use
// underscores in place of hyphens, and a mapping named after a command
// holds the flags of that command. ntro init writes config.yaml from the
// current flag values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o ntro .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default ~/.cache/ntro/pprof)
package cli
