// Package log is the structured logger used across this gateway, wrapping
// zap.SugaredLogger (a direct teacher dependency) behind the variadic
// key/value call shape Erigon's own logging convention uses.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the call surface every package in this gateway logs through.
type Logger interface {
	Debug(msg string, kv ...interface{})
	Info(msg string, kv ...interface{})
	Warn(msg string, kv ...interface{})
	Error(msg string, kv ...interface{})
	With(kv ...interface{}) Logger
}

type sugared struct {
	l *zap.SugaredLogger
}

// New builds a Logger at the given verbosity ("debug", "info", "warn", "error").
func New(verbosity string) Logger {
	level := zapcore.InfoLevel
	_ = level.UnmarshalText([]byte(verbosity))

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"

	zl, err := cfg.Build()
	if err != nil {
		zl = zap.NewNop()
	}
	return &sugared{l: zl.Sugar()}
}

// Nop returns a Logger that discards everything, for tests.
func Nop() Logger { return &sugared{l: zap.NewNop().Sugar()} }

func (s *sugared) Debug(msg string, kv ...interface{}) { s.l.Debugw(msg, kv...) }
func (s *sugared) Info(msg string, kv ...interface{})  { s.l.Infow(msg, kv...) }
func (s *sugared) Warn(msg string, kv ...interface{})  { s.l.Warnw(msg, kv...) }
func (s *sugared) Error(msg string, kv ...interface{}) { s.l.Errorw(msg, kv...) }

func (s *sugared) With(kv ...interface{}) Logger {
	return &sugared{l: s.l.With(kv...)}
}
