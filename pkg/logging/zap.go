package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap sugared logger to the Logger interface.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger creates the production logger. All output goes to stderr:
// stdout belongs to the supervised command, never to us. Verbose lowers
// the level to debug.
func NewZapLogger(verbose bool) *ZapLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		level,
	)

	return &ZapLogger{
		sugar: zap.New(core).Sugar(),
	}
}

func (z *ZapLogger) Debugf(msg string, args ...interface{}) {
	z.sugar.Debugf(msg, args...)
}

func (z *ZapLogger) Infof(msg string, args ...interface{}) {
	z.sugar.Infof(msg, args...)
}

func (z *ZapLogger) Warnf(msg string, args ...interface{}) {
	z.sugar.Warnf(msg, args...)
}

func (z *ZapLogger) Errorf(msg string, args ...interface{}) {
	z.sugar.Errorf(msg, args...)
}

// Sync flushes buffered log entries. Called once before process exit.
func (z *ZapLogger) Sync() {
	_ = z.sugar.Sync()
}
