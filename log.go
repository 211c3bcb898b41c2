package hroute

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Log is the app logger. Replace it before serving to change output or
// level.
var Log *zap.Logger = initLog()

func initLog() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	return logger
}

// NewLogger builds a production logger at the given level, one of debug,
// info, warn, error, dpanic, panic or fatal.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
