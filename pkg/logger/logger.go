package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log levels
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// Logger is the main logging interface
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Fatal(msg string, err error, fields ...Field)

	WithContext(ctx context.Context) Logger
	WithFields(fields ...Field) Logger
	WithRequestID(requestID string) Logger
	WithUserID(userID int64) Logger
	WithComponent(component string) Logger
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// ZerologLogger implements Logger using zerolog
type ZerologLogger struct {
	zl zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level       Level
	Environment string // "production" logs JSON, anything else logs to the console
	ServiceName string
	Version     string
	Output      io.Writer
}

var globalLogger *ZerologLogger

// New builds a logger without touching the global instance.
func New(cfg Config) *ZerologLogger {
	var out io.Writer = os.Stdout
	if cfg.Output != nil {
		out = cfg.Output
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "landing-cms"
	}

	if cfg.Environment != "production" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	} else {
		zerolog.TimeFieldFormat = time.RFC3339Nano
	}

	zl := zerolog.New(out).With().
		Timestamp().
		Str("service", cfg.ServiceName)
	if cfg.Version != "" {
		zl = zl.Str("version", cfg.Version)
	}
	return &ZerologLogger{zl: zl.Logger()}
}

// Init replaces the global logger and sets the global level. Unknown levels
// fall back to info.
func Init(cfg Config) {
	globalLogger = New(cfg)

	lvl, err := zerolog.ParseLevel(string(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// Get returns the global logger instance
func Get() Logger {
	if globalLogger == nil {
		Init(Config{Level: LevelInfo, Environment: "development"})
	}
	return globalLogger
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &ZerologLogger{zl: zerolog.Nop()}
}

func (l *ZerologLogger) Debug(msg string, fields ...Field) {
	emit(l.zl.Debug(), nil, fields, msg)
}

func (l *ZerologLogger) Info(msg string, fields ...Field) {
	emit(l.zl.Info(), nil, fields, msg)
}

func (l *ZerologLogger) Warn(msg string, fields ...Field) {
	emit(l.zl.Warn(), nil, fields, msg)
}

func (l *ZerologLogger) Error(msg string, err error, fields ...Field) {
	emit(l.zl.Error(), err, fields, msg)
}

// Fatal logs and exits the process.
func (l *ZerologLogger) Fatal(msg string, err error, fields ...Field) {
	emit(l.zl.Fatal(), err, fields, msg)
}

func emit(event *zerolog.Event, err error, fields []Field, msg string) {
	if err != nil {
		event = event.Err(err)
	}
	for _, f := range fields {
		event = event.Interface(f.Key, f.Value)
	}
	event.Msg(msg)
}

// WithContext copies the request id and user id carried by ctx onto the logger.
func (l *ZerologLogger) WithContext(ctx context.Context) Logger {
	zc := l.zl.With()
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		zc = zc.Str("request_id", requestID)
	}
	if userID, ok := ctx.Value(ContextKeyUserID).(int64); ok {
		zc = zc.Int64("user_id", userID)
	}
	return &ZerologLogger{zl: zc.Logger()}
}

func (l *ZerologLogger) WithFields(fields ...Field) Logger {
	zc := l.zl.With()
	for _, f := range fields {
		zc = zc.Interface(f.Key, f.Value)
	}
	return &ZerologLogger{zl: zc.Logger()}
}

func (l *ZerologLogger) WithRequestID(requestID string) Logger {
	return &ZerologLogger{zl: l.zl.With().Str("request_id", requestID).Logger()}
}

func (l *ZerologLogger) WithUserID(userID int64) Logger {
	return &ZerologLogger{zl: l.zl.With().Int64("user_id", userID).Logger()}
}

func (l *ZerologLogger) WithComponent(component string) Logger {
	return &ZerologLogger{zl: l.zl.With().Str("component", component).Logger()}
}
