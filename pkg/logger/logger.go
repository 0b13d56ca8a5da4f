package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. Initialized once in main; packages log
// through it directly.
var Log = zap.NewNop()

// Init configures the global logger. Development mode gets a colored console
// encoder at debug level; everything else gets production JSON at info.
func Init(environment string) error {
	var cfg zap.Config

	if environment == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	built, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return err
	}

	Log = built
	return nil
}

// Sync flushes buffered entries. Call before the process exits.
func Sync() {
	_ = Log.Sync()
}
