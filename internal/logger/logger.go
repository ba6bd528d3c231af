package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"codeberg.org/mutker/bodymind/internal/errors"
	"github.com/rs/zerolog"
)

var log Logger = Nop()

type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// ParseLevel maps a configuration level name to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning", "":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return WarnLevel, errors.New().WithData(errors.ErrInvalidLogLevel, name)
	}
}

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *LogEvent) Send() {
	e.Event.Send()
}

type zlogger struct {
	zl zerolog.Logger
}

// New builds a console logger writing to out at the given level.
func New(out io.Writer, level LogLevel) Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    out != os.Stdout && out != os.Stderr,
	}

	zl := zerolog.New(output).Level(zerolog.Level(level)).With().Timestamp().Logger()
	return &zlogger{zl: zl}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &zlogger{zl: zerolog.Nop()}
}

// Init installs the process-wide logger used by the package level helpers
// and returns it for injection.
func Init(out io.Writer, level LogLevel) Logger {
	log = New(out, level)
	return log
}

// Default returns the process-wide logger.
func Default() Logger {
	return log
}

func (l *zlogger) Debug() *LogEvent {
	return &LogEvent{l.zl.Debug()}
}

func (l *zlogger) Info() *LogEvent {
	return &LogEvent{l.zl.Info()}
}

func (l *zlogger) Warn() *LogEvent {
	return &LogEvent{l.zl.Warn()}
}

func (l *zlogger) Error() *LogEvent {
	return &LogEvent{l.zl.Error()}
}

// ErrorWithCode logs an error message with a specific error code
func (l *zlogger) ErrorWithCode(err errors.Error) *LogEvent {
	return &LogEvent{l.zl.Error().
		Str("error_code", string(err.Code())).
		Str("error_message", err.Error()).
		AnErr("error", err.Unwrap())}
}

// WarnWithContext logs a recoverable failure together with where it happened.
func (l *zlogger) WarnWithContext(err error, component, operation string) *LogEvent {
	ev := l.zl.Warn().
		Str("component", component).
		Str("operation", operation).
		Err(err)

	var appErr errors.Error
	if errors.As(err, &appErr) {
		ev = ev.Str("error_code", string(appErr.Code()))
	}
	return &LogEvent{ev}
}

// Debug logs a debug message
func Debug() *LogEvent {
	return log.Debug()
}

// Info logs an info message
func Info() *LogEvent {
	return log.Info()
}

// Warn logs a warning message
func Warn() *LogEvent {
	return log.Warn()
}

// Error logs an error message
func Error() *LogEvent {
	return log.Error()
}
