package log

import (
	"io"

	charmlog "charm.land/log/v2"
)

// newPrettyHandler builds the colorized handler FormatPretty selects. It
// exists apart from json/logfmt/text because a TUI owns stdout while it
// runs: pretty output is meant for a --debug-log file, read by a human
// afterward, not interleaved with a bubbletea program's own rendering.
func newPrettyHandler(w io.Writer, level Level) Handler {
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		Level:           charmLevel(level),
	})

	return logger
}

func charmLevel(l Level) charmlog.Level {
	switch l {
	case LevelDebug:
		return charmlog.DebugLevel
	case LevelWarn:
		return charmlog.WarnLevel
	case LevelError:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}
