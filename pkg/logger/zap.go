package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type CallerDisplayMode int

const (
	// CallerShort shows only filename:line (driver.go:116)
	CallerShort CallerDisplayMode = iota
	// CallerMedium shows package/filename:line (pager/driver.go:116)
	CallerMedium
	// CallerFull shows full path
	CallerFull
)

const callerWidth = 24

var (
	Logger            = zap.NewNop()
	Sugar             = Logger.Sugar()
	atomicLevel       zap.AtomicLevel
	callerDisplayMode = CallerShort
)

// ParseLevel maps a level name to a zap level, defaulting to info
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// InitLogger initializes the global logger
func InitLogger(isDevelopment bool, logPath string, logLevel ...string) error {
	level := zap.InfoLevel
	if len(logLevel) > 0 && logLevel[0] != "" {
		level = ParseLevel(logLevel[0])
	}

	var logger *zap.Logger
	var err error
	if isDevelopment {
		logger, err = newDevelopmentLogger(level)
	} else {
		logger, err = NewProductionLogger(logPath, level)
	}
	if err != nil {
		return err
	}

	Logger = logger
	Sugar = logger.Sugar()
	zap.ReplaceGlobals(logger)
	return nil
}

func newDevelopmentLogger(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = encodeLevel
	config.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.EncodeCaller = encodeCaller
	config.Level = zap.NewAtomicLevelAt(level)
	atomicLevel = config.Level

	return config.Build(
		zap.AddCallerSkip(1), // skip the package-level wrapper
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

// NewProductionLogger creates a logger writing JSON to a rotated file and text to stdout
func NewProductionLogger(logPath string, level zapcore.Level) (*zap.Logger, error) {
	if logPath == "" {
		logPath = "./logs/shopscan.log"
	}

	if err := createLogDir(logPath); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = encodeLevel
	encoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	encoderConfig.MessageKey = "msg"
	encoderConfig.LevelKey = "level"
	encoderConfig.CallerKey = "caller"
	encoderConfig.EncodeCaller = encodeCaller

	atomicLevel = zap.NewAtomicLevelAt(level)

	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), w, atomicLevel)
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), atomicLevel)

	return zap.New(zapcore.NewTee(fileCore, consoleCore),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// With creates a child logger with additional fields
func With(fields ...zap.Field) *zap.Logger {
	return Logger.With(fields...)
}

// Info logs a message at InfoLevel
func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

// Error logs a message at ErrorLevel
func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	if Logger != nil {
		return Logger.Sync()
	}
	return nil
}

// SetLevel dynamically changes the log level
func SetLevel(level zapcore.Level) {
	if atomicLevel != (zap.AtomicLevel{}) {
		atomicLevel.SetLevel(level)
	}
}

// GetLevel returns the current log level
func GetLevel() zapcore.Level {
	if atomicLevel != (zap.AtomicLevel{}) {
		return atomicLevel.Level()
	}
	return zapcore.InfoLevel
}

func createLogDir(logPath string) error {
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// SetCallerDisplayMode sets the caller path display mode
func SetCallerDisplayMode(mode CallerDisplayMode) {
	callerDisplayMode = mode
}

func encodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(fmt.Sprintf("%-5s", level.CapitalString()))
}

func encodeCaller(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(formatCallerPath(caller.TrimmedPath()))
}

// formatCallerPath shortens a caller path according to the display mode and pads it
func formatCallerPath(fullPath string) string {
	var result string

	switch callerDisplayMode {
	case CallerShort:
		parts := strings.Split(fullPath, "/")
		result = parts[len(parts)-1]
	case CallerMedium:
		shortened := strings.TrimPrefix(fullPath, "pkg/")
		shortened = strings.TrimPrefix(shortened, "cmd/")
		shortened = strings.TrimPrefix(shortened, "internal/")
		parts := strings.Split(shortened, "/")
		if len(parts) > 2 {
			result = strings.Join(parts[len(parts)-2:], "/")
		} else {
			result = shortened
		}
	default:
		result = fullPath
	}

	if len(result) > callerWidth {
		result = "..." + result[len(result)-(callerWidth-3):]
	}
	return fmt.Sprintf("%-*s", callerWidth, result)
}
