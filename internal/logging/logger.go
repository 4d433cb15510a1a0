package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log  *zap.Logger        = zap.NewNop()
	SLog *zap.SugaredLogger = Log.Sugar()
)

// Init builds the global loggers. "prod" gets JSON output at info level,
// anything else the colored development encoder.
func Init(env string) error {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = logger
	SLog = logger.Sugar()
	return nil
}

func Sync() {
	_ = Log.Sync()
}
