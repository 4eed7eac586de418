// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured at creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//
// The package adds a Trace level below slog's Debug for high-volume
// diagnostics such as per-token parser events.
//
// A package-level default logger is also provided so that code without an
// injected Logger can still emit structured messages:
//
//	log.Config(log.WithLevel(log.LevelWarn))
//	log.Warn("cache miss", slog.String("key", key))
package log
