package logger

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/Payphone-Digital/auth-service/config"
	"github.com/Payphone-Digital/auth-service/internal/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger

	mu sync.RWMutex
)

// InitLogger initializes Zap logger with configuration
func InitLogger(cfg *config.Config) error {
	// Configure log level based on environment
	var zapLevel zapcore.Level
	switch cfg.App.Environment {
	case constants.EnvProduction:
		zapLevel = zapcore.InfoLevel
	default:
		zapLevel = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	infoWriters := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	errorWriters := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}

	// Optional file output next to stdout/stderr
	if logsPath := os.Getenv("LOGS_PATH"); logsPath != "" {
		if err := os.MkdirAll(logsPath, 0755); err != nil {
			return err
		}

		infoFile, err := os.OpenFile(filepath.Join(logsPath, "info.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		errorFile, err := os.OpenFile(filepath.Join(logsPath, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			infoFile.Close()
			return err
		}

		infoWriters = append(infoWriters, zapcore.AddSync(infoFile))
		errorWriters = append(errorWriters, zapcore.AddSync(errorFile))
	}

	// Everything below error goes to stdout, errors go to stderr
	infoCore := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(infoWriters...),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapLevel && l < zapcore.ErrorLevel
		}),
	)
	errorCore := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(errorWriters...),
		zapcore.ErrorLevel,
	)

	SetLogger(zap.New(zapcore.NewTee(infoCore, errorCore), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
	return nil
}

// SetLogger replaces the process logger. Tests use it to install zap.NewNop()
// or an observer core.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	Logger = l
	Sugar = nil
	if l != nil {
		Sugar = l.Sugar()
	}
}

// GetLogger returns the structured logger, falling back to a no-op logger
// when InitLogger has not run.
func GetLogger() *zap.Logger {
	mu.RLock()
	l := Logger
	mu.RUnlock()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// GetSugarLogger returns the sugared logger
func GetSugarLogger() *zap.SugaredLogger {
	return GetLogger().Sugar()
}

// Sync syncs all logs (call this before application exits)
func Sync() {
	_ = GetLogger().Sync()
}

// WithFields adds structured fields to the logger
func WithFields(fields ...zap.Field) *zap.Logger {
	return GetLogger().With(fields...)
}

// LogRequest logs HTTP request information
func LogRequest(method, path string, statusCode int, duration int64, clientIP string, userAgent string) {
	GetLogger().Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Int64("duration_ms", duration),
		zap.String("client_ip", clientIP),
		zap.String("user_agent", userAgent),
	)
}

// LogPanic logs panic and recovers
func LogPanic(recovered interface{}) {
	GetLogger().Error("Panic recovered",
		zap.Any("panic", recovered),
		zap.Stack("stack"),
	)
}
