// Package logger provides a structured, levelled logger built on log/slog.
//
// In production (APP_ENV=production) records are JSON for log aggregators;
// everywhere else they are human-readable text. An optional MongoDB sink
// can be attached with ConnectMongo when LOG_MONGO_URI is configured.
package logger

import (
	"log/slog"
	"os"

	"github.com/ethioagri/gebeya/config"
)

var L *slog.Logger

func init() {
	var level slog.Level
	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: level}

	switch config.AppEnv() {
	case "production", "prod":
		level = slog.LevelInfo
		opts.Level = level
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		level = slog.LevelDebug
		opts.Level = level
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// ConnectMongo attaches the MongoDB sink next to the stdout handler.
// Returns a close func that flushes pending records; callers should defer
// it from main. No-op when LOG_MONGO_URI is not set.
func ConnectMongo() (func(), error) {
	uri := config.LogMongoURI()
	if uri == "" {
		return func() {}, nil
	}

	mh, err := NewMongoHandler(uri, config.LogMongoDB(), config.LogMongoCollection())
	if err != nil {
		return func() {}, err
	}

	L = slog.New(NewMultiHandler(L.Handler(), mh))
	slog.SetDefault(L)
	return mh.Close, nil
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
