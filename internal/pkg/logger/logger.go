package logger

import (
	"log/slog"
	"os"
	"strings"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
)

var globalLogger *slog.Logger

// ParseLevel maps a config level string onto a slog level, defaulting to INFO.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		slog.Warn("Invalid log level string, defaulting to INFO", "input", levelStr)
		return slog.LevelInfo
	}
}

// InitZap routes the global slog logger through the given zap logger using the
// samber/slog-zap handler, so application code can keep using the package-level
// helpers while the output format stays zap's.
func InitZap(zapLogger *zap.Logger, levelStr string) {
	handler := slogzap.Option{
		Level:  ParseLevel(levelStr),
		Logger: zapLogger,
	}.NewZapHandler()

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// InitSlog initializes the global slog logger with a plain JSON handler.
// Used by tests and as the fallback when no zap logger is wired.
func InitSlog(levelStr string) {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(levelStr),
	}
	globalLogger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	slog.SetDefault(globalLogger)
}

func ensureInitialized() {
	if globalLogger == nil {
		InitSlog("INFO")
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Debug(msg, args...)
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Error(msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Error(msg, args...)
	os.Exit(1)
}
