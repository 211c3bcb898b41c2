package router

import (
	"go.uber.org/zap"
)

// Log is used by the routers for build-time diagnostics.
var Log = zap.NewNop()

// SetLogger replaces the logger used by the routers. A nil logger disables
// logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Log = l
}
