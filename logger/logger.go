// Package logger provides a process wide zap logger with context scoping.
//
// Initialise once from main:
//
//	logger.Init(logger.Config{Env: cfg.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
// Library code takes a *zap.Logger option and falls back to Named(component).
package logger

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures the logger
type Config struct {
	// Env is "dev" (console) or "prod" (JSON); default dev
	Env string
	// Level is debug, info, warn or error; default info
	Level string
	// ServiceName is attached to every entry when set
	ServiceName string
}

var (
	once     sync.Once
	mux      sync.RWMutex
	instance *zap.Logger
)

// Init builds the singleton; only the first call has effect
func Init(cfg Config) {
	once.Do(func() {
		l := build(cfg)
		mux.Lock()
		instance = l
		mux.Unlock()
	})
}

// L returns the singleton, initialising a dev/info logger if Init was not called
func L() *zap.Logger {
	Init(Config{Env: "dev", Level: "info"})
	mux.RLock()
	defer mux.RUnlock()
	return instance
}

// Named returns a component logger
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes buffered entries
func Sync() error {
	mux.RLock()
	defer mux.RUnlock()
	if instance != nil {
		return instance.Sync()
	}
	return nil
}

type ctxKey struct{}

// ToContext stores a scoped logger in ctx
func ToContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the logger scoped in ctx or fallback when absent
func From(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if fallback != nil {
		return fallback
	}
	return L()
}

func build(cfg Config) *zap.Logger {
	level := parseLevel(cfg.Level)
	var zcfg zap.Config
	if strings.ToLower(cfg.Env) == "prod" {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zcfg.DisableStacktrace = true
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	l, err := zcfg.Build(zap.AddCaller())
	if err != nil {
		l = zap.NewNop()
	}
	if cfg.ServiceName != "" {
		l = l.With(zap.String("service", cfg.ServiceName))
	}
	return l
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
