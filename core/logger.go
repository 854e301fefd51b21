package core

import (
	"carrier-gateway-service/config"
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"os"
	"path/filepath"
	"time"
)

// NewLogger writes to a new rotating file per run and mirrors warnings and
// above to stderr.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	if err := os.MkdirAll(cfg.LogsDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	runTimestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	logFile := filepath.Join(cfg.LogsDirectory, fmt.Sprintf("carrier-gateway-service-%s.log", runTimestamp))

	rotating := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 7,
		MaxAge:     30, // days
		Compress:   true,
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(rotating), zap.InfoLevel),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.WarnLevel),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
