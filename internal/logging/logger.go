package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging contract shared by the engine and the CLI.
// Implementations must be safe to call with no fields.
type Logger interface {
	// Debug logs a low-priority diagnostic message.
	Debug(msg string, fields ...Field)
	// Info logs an informational message.
	Info(msg string, fields ...Field)
	// Error logs a failure together with its cause. err may be nil.
	Error(msg string, err error, fields ...Field)
	// Printf logs a formatted informational message.
	Printf(format string, args ...any)
	// Println logs its arguments separated by spaces.
	Println(args ...any)
}

// Field is a single structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates a field holding an error under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ─────────────────────────────────────────────────────────────────────────────
// Zerolog Backend
// ─────────────────────────────────────────────────────────────────────────────

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog logger.
//
// Parameters:
//   - zl: The configured zerolog logger.
//
// Returns:
//   - *ZerologAdapter: An adapter implementing Logger.
func NewZerologAdapter(zl zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: zl}
}

// NewLogger creates a JSON zerolog logger writing to w, tagged with the
// given component name.
//
// Parameters:
//   - w: The destination writer.
//   - component: Value of the "component" field on every entry.
//
// Returns:
//   - *ZerologAdapter: The configured logger.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return NewZerologAdapter(zl)
}

// NewConsoleLogger creates a human-readable zerolog logger for terminals.
func NewConsoleLogger(w io.Writer, component string) *ZerologAdapter {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	zl := zerolog.New(cw).With().Timestamp().Str("component", component).Logger()
	return NewZerologAdapter(zl)
}

// NewDefaultLogger returns a logger writing JSON entries to stderr.
func NewDefaultLogger() Logger {
	return NewLogger(os.Stderr, "biguint")
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() Logger {
	return NewZerologAdapter(zerolog.Nop())
}

// Debug logs at debug level.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	z.applyFields(z.logger.Debug(), fields).Msg(msg)
}

// Info logs at info level.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	z.applyFields(z.logger.Info(), fields).Msg(msg)
}

// Error logs at error level with the cause attached.
func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	z.applyFields(z.logger.Error().Err(err), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (z *ZerologAdapter) Printf(format string, args ...any) {
	z.logger.Info().Msgf(format, args...)
}

// Println logs its arguments at info level.
func (z *ZerologAdapter) Println(args ...any) {
	z.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// applyFields copies fields onto a zerolog event using typed setters where possible.
func (z *ZerologAdapter) applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// ─────────────────────────────────────────────────────────────────────────────
// Standard Library Backend
// ─────────────────────────────────────────────────────────────────────────────

// StdLoggerAdapter implements Logger on top of a *log.Logger.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a standard library logger.
func NewStdLoggerAdapter(l *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: l}
}

// Debug logs a [DEBUG] line.
func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	s.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Info logs an [INFO] line.
func (s *StdLoggerAdapter) Info(msg string, fields ...Field) {
	s.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Error logs an [ERROR] line including the cause.
func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	s.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
}

// Printf forwards to the wrapped logger.
func (s *StdLoggerAdapter) Printf(format string, args ...any) {
	s.logger.Printf(format, args...)
}

// Println forwards to the wrapped logger.
func (s *StdLoggerAdapter) Println(args ...any) {
	s.logger.Println(args...)
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key, f.Value)
	}
	return sb.String()
}
