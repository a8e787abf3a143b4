// Package logger builds the single *zap.SugaredLogger every subsystem in
// this module accepts through its Config struct. Loggers are threaded in
// explicitly rather than reached for through a global.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-grade JSON logger, or a human-readable console
// logger when ENV=development, tagging every entry with the given service
// name (e.g. "kvs-server", "kvs-client", "ignite").
func New(service string) *zap.SugaredLogger {
	var cfg zap.Config
	if strings.EqualFold(os.Getenv("ENV"), "development") {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	base, err := cfg.Build()
	if err != nil {
		// A logger that fails to build its own encoder is a configuration
		// bug, not a runtime condition callers can recover from.
		base = zap.NewNop()
	}

	return base.Named(service).Sugar()
}
