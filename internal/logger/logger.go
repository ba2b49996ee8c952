package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"
)

// Level is the severity of a log entry.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// rank orders levels for min-level filtering.
func (l Level) rank() int {
	switch l {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	case LevelWarn:
		return 2
	case LevelError:
		return 3
	}
	return 1
}

// parseLevel maps a config string to a Level, defaulting to info.
func parseLevel(level string) Level {
	switch level {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// Entry is the JSON shape of one log line.
type Entry struct {
	Timestamp string                 `json:"timestamp"`
	Level     Level                  `json:"level"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Stack     []string               `json:"stack,omitempty"`
}

// Logger writes structured JSON log lines, one entry per line.
type Logger struct {
	output    io.Writer
	minLevel  Level
	withStack bool
}

// Config configures a Logger. Zero values fall back to stdout at info.
type Config struct {
	Output    io.Writer
	MinLevel  Level
	WithStack bool
}

func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.MinLevel == "" {
		cfg.MinLevel = LevelInfo
	}
	return &Logger{
		output:    cfg.Output,
		minLevel:  cfg.MinLevel,
		withStack: cfg.WithStack,
	}
}

// Default returns a stdout logger at info level.
func Default() *Logger {
	return New(Config{})
}

// newWithLevel builds a logger for a config-file level string. Debug level
// implies stack traces on errors.
func newWithLevel(level string) *Logger {
	parsed := parseLevel(level)
	return New(Config{
		MinLevel:  parsed,
		WithStack: parsed == LevelDebug,
	})
}

var (
	mu             sync.RWMutex
	appLogger      *Logger
	databaseLogger *Logger
)

// InitializeLoggers configures the package-level application and database
// loggers from config-file level strings.
func InitializeLoggers(appLevel, dbLevel string) {
	mu.Lock()
	defer mu.Unlock()
	appLogger = newWithLevel(appLevel)
	databaseLogger = newWithLevel(dbLevel)
}

// AppLogger returns the shared application logger, creating a default one
// if InitializeLoggers has not run yet.
func AppLogger() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if appLogger == nil {
		appLogger = Default()
	}
	return appLogger
}

// DatabaseLogger returns the shared logger used by the gorm adapter.
func DatabaseLogger() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if databaseLogger == nil {
		databaseLogger = Default()
	}
	return databaseLogger
}

func (l *Logger) Debug(msg string) { l.log(LevelDebug, msg, nil, nil) }
func (l *Logger) Info(msg string)  { l.log(LevelInfo, msg, nil, nil) }
func (l *Logger) Warn(msg string)  { l.log(LevelWarn, msg, nil, nil) }

func (l *Logger) Error(msg string, err error) { l.log(LevelError, msg, nil, err) }

// InfoContext logs at info level, picking up the request id from ctx.
func (l *Logger) InfoContext(ctx context.Context, msg string) {
	l.logContext(ctx, LevelInfo, msg, nil, nil)
}

// ErrorContext logs at error level, picking up the request id from ctx.
func (l *Logger) ErrorContext(ctx context.Context, msg string, err error) {
	l.logContext(ctx, LevelError, msg, nil, err)
}

// WithFields returns a view of the logger that attaches fields to every entry.
func (l *Logger) WithFields(fields map[string]interface{}) *FieldLogger {
	return &FieldLogger{logger: l, fields: fields}
}

func (l *Logger) log(level Level, msg string, fields map[string]interface{}, err error) {
	if level.rank() < l.minLevel.rank() {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Message:   msg,
		Context:   fields,
	}
	if err != nil {
		entry.Error = err.Error()
		if l.withStack && level == LevelError {
			entry.Stack = stackTrace()
		}
	}

	data, _ := json.Marshal(entry)
	fmt.Fprintln(l.output, string(data))
}

func (l *Logger) logContext(ctx context.Context, level Level, msg string, fields map[string]interface{}, err error) {
	merged := make(map[string]interface{}, len(fields)+1)
	if requestID := ctx.Value(requestIDKey); requestID != nil {
		merged["request_id"] = requestID
	}
	for k, v := range fields {
		merged[k] = v
	}
	l.log(level, msg, merged, err)
}

// FieldLogger is a Logger bound to a fixed set of context fields.
type FieldLogger struct {
	logger *Logger
	fields map[string]interface{}
}

func (fl *FieldLogger) Debug(msg string) { fl.logger.log(LevelDebug, msg, fl.fields, nil) }
func (fl *FieldLogger) Info(msg string)  { fl.logger.log(LevelInfo, msg, fl.fields, nil) }
func (fl *FieldLogger) Warn(msg string)  { fl.logger.log(LevelWarn, msg, fl.fields, nil) }

func (fl *FieldLogger) Error(msg string, err error) {
	fl.logger.log(LevelError, msg, fl.fields, err)
}

// WithFields returns a FieldLogger with the extra fields merged on top of
// the existing ones.
func (fl *FieldLogger) WithFields(fields map[string]interface{}) *FieldLogger {
	merged := make(map[string]interface{}, len(fl.fields)+len(fields))
	for k, v := range fl.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &FieldLogger{logger: fl.logger, fields: merged}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// ContextWithRequestID tags ctx with a request id for the *Context log methods.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func stackTrace() []string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])

	frames := runtime.CallersFrames(pcs[:n])
	stack := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		stack = append(stack, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}
	return stack
}
