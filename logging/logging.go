// Package logging provides structured logging utilities and a named-logger
// registry for routing pre-rendered report blocks.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger wraps slog.Logger and keeps hold of its sink so pre-rendered
// blocks can bypass the structured handler.
type Logger struct {
	*slog.Logger
	out io.Writer
}

// New creates a logger with the specified level and format writing to w.
// A nil writer falls back to stdout.
func New(level, format string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
		out:    w,
	}
}

// Print writes a pre-rendered block to the logger's sink verbatim,
// followed by a newline.
func (l *Logger) Print(msg string) {
	fmt.Fprintln(l.out, msg)
}

// Default returns the fallback logger.
func Default() *Logger {
	return New("info", "text", os.Stdout)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var (
	mu       sync.RWMutex
	registry = make(map[string]*Logger)
	fallback = Default()
)

// Register binds a logger to a selection token, replacing any previous
// binding.
func Register(name string, l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = l
}

// Get returns the logger bound to name, or the fallback logger when the
// token is unknown.
func Get(name string) *Logger {
	mu.RLock()
	defer mu.RUnlock()
	if l, ok := registry[name]; ok {
		return l
	}
	return fallback
}

// Print writes a pre-rendered block through the logger bound to name.
func Print(name, msg string) {
	Get(name).Print(msg)
}
