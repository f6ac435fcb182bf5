package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Level is a logging severity, parsed from and rendered as a flag-friendly
// string rather than [slog.Level]'s integer so zero-value Level compares
// equal to "" and reports a helpful string in flag usage and errors.
type Level string

// Severity levels, ordered least to most severe.
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// slogLevel converts l to the [slog.Level] the standard handlers want.
func slogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs as key=value pairs via [slog.TextHandler].
	FormatLogfmt Format = "logfmt"
	// FormatText is an alias of FormatLogfmt kept for the flag surface:
	// operators reach for "text" before they reach for "logfmt".
	FormatText Format = "text"
	// FormatPretty is not part of the flag surface GetAllFormatStrings
	// advertises: it requires a terminal and is only ever selected
	// directly by the view command, never parsed from a flag string.
	FormatPretty Format = "pretty"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// Handler is the [slog.Handler] every constructor in this package returns.
type Handler = slog.Handler

// NewHandlerFromStrings creates a [Handler] by parsing levelStr and
// formatStr.
func NewHandlerFromStrings(w io.Writer, levelStr, formatStr string) (Handler, error) {
	lvl, err := ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	fmtVal, err := ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, fmtVal), nil
}

// NewHandler creates a [Handler] with the given level and format.
func NewHandler(w io.Writer, level Level, format Format) Handler {
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     slogLevel(level),
		})

	case FormatLogfmt, FormatText:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     slogLevel(level),
		})

	case FormatPretty:
		return newPrettyHandler(w, level)
	}

	return nil
}

// ParseLevel parses a log level string and returns the corresponding
// [Level].
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}

	return "", ErrUnknownLogLevel
}

// ParseFormat parses a log format string and returns the corresponding
// [Format].
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains(GetAllFormatStrings(), string(f)) {
		return f, nil
	}

	return "", ErrUnknownLogFormat
}

// GetAllLevelStrings returns every accepted level string, in severity
// order, for flag help text and shell completion.
func GetAllLevelStrings() []string {
	return []string{"debug", "info", "warn", "error"}
}

// GetAllFormatStrings returns every accepted format string for flag help
// text and shell completion. FormatPretty is deliberately excluded: it is
// a programmatic-only choice for the view command, not something an
// operator types on the flag line.
func GetAllFormatStrings() []string {
	return []string{string(FormatJSON), string(FormatLogfmt), string(FormatText)}
}
