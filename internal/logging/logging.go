package logging

import (
	"go.uber.org/zap"
)

// Logger is the process-wide sugared logger. Init must run before any
// command logic; the default level keeps human output clean and reserves
// stderr logging for warnings unless --debug raises verbosity.
var Logger *zap.SugaredLogger

func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = logger.Sugar()
	return nil
}

// Sync flushes buffered log entries. Called on command exit.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
