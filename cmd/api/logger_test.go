// Package main
package main

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"gotest.tools/assert"

	"github.com/sobatoken/burn-backend/cfg"
)

func TestNewLogger_Level(t *testing.T) {
	cases := []struct {
		mode, level string
		want        zapcore.Level
	}{
		{cfg.ModeDev, "debug", zapcore.DebugLevel},
		{cfg.ModeDev, "", zapcore.InfoLevel},
		{cfg.ModeProduction, "warn", zapcore.WarnLevel},
		{cfg.ModeProduction, "error", zapcore.ErrorLevel},
	}
	for _, c := range cases {
		logger, err := newLogger(cfg.Config{ServerMode: c.mode, LogLevel: c.level})
		assert.NilError(t, err)
		assert.Assert(t, logger.Core().Enabled(c.want))
		if c.want > zapcore.DebugLevel {
			assert.Assert(t, !logger.Core().Enabled(c.want-1))
		}
	}
}

func TestSentryHook_IgnoresInfo(t *testing.T) {
	// sentry is not initialised, capture is a no-op
	assert.NilError(t, sentryHook(zapcore.Entry{Level: zapcore.InfoLevel, Message: "ok"}))
	assert.NilError(t, sentryHook(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "boom"}))
}
