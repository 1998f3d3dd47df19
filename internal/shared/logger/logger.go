package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Line layout: "2006-01-02 15:04:05 => info => message".
const (
	timeLayout = "2006-01-02 15:04:05"
	separator  = " => "
)

// Sub-directories of Config.Dir, one per channel.
const (
	SuccessDir = "successes"
	ErrorDir   = "errors"
)

// Logger is the process-wide dual channel logger.
// Debug, Info and Warn go to the info channel; Error goes to the error channel.
type Logger struct {
	info    *zap.Logger
	err     *zap.Logger
	console *zap.Logger
	closers []io.Closer
}

// Config holds logger configuration.
type Config struct {
	Level       string // debug, info, warn, error
	Dir         string // root directory for rotated files; empty disables files
	Console     bool   // mirror both channels to stdout/stderr
	DatePattern string // Go time layout that marks a rotation window
	MaxSizeMB   int
	MaxAgeDays  int
	Compress    bool
}

// DefaultConfig returns default logger configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:       "info",
		Dir:         filepath.Join("logs", "winston"),
		Console:     true,
		DatePattern: "2006-01-02",
		MaxSizeMB:   20,
		MaxAgeDays:  14,
		Compress:    true,
	}
}

// New creates a Logger writing to the console and to rotating files.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	enc := NewLineEncoder()

	var (
		infoCores  []zapcore.Core
		errorCores []zapcore.Core
		closers    []io.Closer
	)

	if cfg.Console {
		infoCores = append(infoCores, zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level))
		errorCores = append(errorCores, zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zapcore.ErrorLevel))
	}

	if cfg.Dir != "" {
		success, err := newFileSink(cfg, SuccessDir, "app-success.log")
		if err != nil {
			return nil, err
		}
		failure, err := newFileSink(cfg, ErrorDir, "app-error.log")
		if err != nil {
			_ = success.Close()
			return nil, err
		}
		closers = append(closers, success, failure)
		infoCores = append(infoCores, zapcore.NewCore(enc, zapcore.AddSync(success), level))
		errorCores = append(errorCores, zapcore.NewCore(enc, zapcore.AddSync(failure), zapcore.ErrorLevel))
	}

	l := NewWithCores(zapcore.NewTee(infoCores...), zapcore.NewTee(errorCores...))
	l.closers = closers
	return l, nil
}

// NewWithCores builds a Logger from explicit cores. Tests pass observer cores here.
// The console logger writes to stdout with the info core's encoder settings.
func NewWithCores(info, errCore zapcore.Core) *Logger {
	return &Logger{
		info:    zap.New(info),
		err:     zap.New(errCore),
		console: zap.New(zapcore.NewCore(NewLineEncoder(), zapcore.Lock(os.Stdout), zapcore.DebugLevel)),
	}
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{
		info:    zap.NewNop(),
		err:     zap.NewNop(),
		console: zap.NewNop(),
	}
}

// WithConsole replaces the console logger, mainly for tests.
func (l *Logger) WithConsole(console *zap.Logger) *Logger {
	cp := *l
	cp.console = console
	return &cp
}

// NewLineEncoder returns the console-style encoder producing the
// "<date> <time> => <level> => <message>" line format.
func NewLineEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		StacktraceKey:    "",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: separator,
	})
}

func newFileSink(cfg *Config, sub, name string) (*DailyRotator, error) {
	dir := filepath.Join(cfg.Dir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", dir, err)
	}
	return NewDailyRotator(RotateConfig{
		Filename:    filepath.Join(dir, name),
		DatePattern: cfg.DatePattern,
		MaxSizeMB:   cfg.MaxSizeMB,
		MaxAgeDays:  cfg.MaxAgeDays,
		Compress:    cfg.Compress,
	}), nil
}

// parseLevel parses a log level string.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Debug logs to the info channel at debug level.
func (l *Logger) Debug(msg string, fields ...zap.Field) { l.info.Debug(msg, fields...) }

// Info logs to the info channel.
func (l *Logger) Info(msg string, fields ...zap.Field) { l.info.Info(msg, fields...) }

// Warn logs to the info channel at warn level.
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.info.Warn(msg, fields...) }

// Error logs to the error channel.
func (l *Logger) Error(msg string, fields ...zap.Field) { l.err.Error(msg, fields...) }

// Console returns the stdout-only logger used for development diagnostics.
func (l *Logger) Console() *zap.Logger { return l.console }

// Zap returns the info channel as a plain *zap.Logger.
func (l *Logger) Zap() *zap.Logger { return l.info }

// With returns a Logger whose channels carry the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{
		info:    l.info.With(fields...),
		err:     l.err.With(fields...),
		console: l.console.With(fields...),
		closers: l.closers,
	}
}

// Sync flushes both channels.
func (l *Logger) Sync() error {
	return errors.Join(ignoreSyncErr(l.info.Sync()), ignoreSyncErr(l.err.Sync()))
}

// Close flushes and closes the file sinks.
func (l *Logger) Close() error {
	errs := []error{l.Sync()}
	for _, c := range l.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// ignoreSyncErr drops the EINVAL/ENOTTY errors returned when syncing a terminal.
func ignoreSyncErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
