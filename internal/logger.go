package internal

import "log/slog"

// Logger wraps a *slog.Logger with leveled helpers matching the levels this
// module cares about, including a Trace level below Debug. A nil Logger
// discards all output; zero value is ready to use.
type Logger struct {
	Log *slog.Logger
}

func (l Logger) Enabled(lvl slog.Level) bool {
	return LogEnabled(l.Log, lvl)
}

func (l Logger) Error(msg string, attrs ...slog.Attr) {
	LogAttrs(l.Log, slog.LevelError, msg, attrs...)
}

func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	LogAttrs(l.Log, slog.LevelWarn, msg, attrs...)
}

func (l Logger) Info(msg string, attrs ...slog.Attr) {
	LogAttrs(l.Log, slog.LevelInfo, msg, attrs...)
}

func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	LogAttrs(l.Log, slog.LevelDebug, msg, attrs...)
}

func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	LogAttrs(l.Log, LevelTrace, msg, attrs...)
}
