// Package cli contains the command line interface for binconf.
//
// # Usage
//
// The CLI translates binconf language sources to JSON (or YAML) and
// provides logging and profiling configuration:
//
//	binconf translate -i config.bc
//	binconf --log-level=debug fmt -i config.bc
//
// The translate command is the default, so source input can be given
// directly:
//
//	binconf -i config.bc
//	echo '@{ port = 0b1010; }' | binconf
//
// # Configuration File
//
// Flag defaults can be set in a config file written in the binconf language
// itself (see [resolve]), located at:
//
//	$XDG_CONFIG_HOME/binconf/config.bc
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o binconf .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//     (default: ~/.cache/binconf/pprof)
package cli
