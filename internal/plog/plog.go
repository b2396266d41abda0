// Package plog sets up the module's structured logger. Every other
// internal package logs through the *zap.SugaredLogger this package
// builds, read once from the environment at first use.
package plog

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv is the environment variable consumers set to raise the log
// level above its off-by-default. Accepts zap's level strings: "debug",
// "info", "warn", "error".
const LevelEnv = "ANALOG_SDK_LOG"

var (
	once   sync.Once
	logger *zap.SugaredLogger
)

// Logger returns the process-wide sugared logger, building it on first
// use from LevelEnv. With LevelEnv unset or unparsable, it is a no-op
// logger so nothing is emitted — "off by default" per spec.md §6.
func Logger() *zap.SugaredLogger {
	once.Do(func() {
		logger = build().Sugar()
	})

	return logger
}

func build() *zap.Logger {
	var (
		level zapcore.Level
		err   error
	)

	var raw = os.Getenv(LevelEnv)
	if raw == "" {
		return zap.NewNop()
	}

	err = level.UnmarshalText([]byte(raw))
	if err != nil {
		return zap.NewNop()
	}

	var cfg = zap.NewProductionConfig()

	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()

	var built *zap.Logger

	built, err = cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return built
}
