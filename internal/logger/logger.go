package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New returns the application logger. Development environments get the
// human readable console encoder, everything else JSON.
func New(appEnv string) (*zap.SugaredLogger, error) {
	env := strings.ToLower(strings.TrimSpace(appEnv))
	var cfg zap.Config
	if env == "development" || env == "dev" || env == "" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// NewTest returns a development logger without automatic stack traces so
// expected error logs in tests stay readable.
func NewTest() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	l, _ := cfg.Build()
	return l.Sugar()
}
