// Package logging configures colored structured logging with tint.
//
// INFO and WARN go to the info writer and ERROR goes to the error writer.
// When a log file is given, every record is also appended to it.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Options selects where records go.
type Options struct {
	Level slog.Level
	Info  io.Writer // default os.Stdout
	Error io.Writer // default os.Stderr
	File  string
}

// levelRouter sends ERROR and above to one handler and everything else to another.
type levelRouter struct {
	level slog.Leveler
	info  slog.Handler
	error slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.level.Level()
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.error.Handle(ctx, r)
	}
	return lr.info.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{level: lr.level, info: lr.info.WithAttrs(attrs), error: lr.error.WithAttrs(attrs)}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{level: lr.level, info: lr.info.WithGroup(name), error: lr.error.WithGroup(name)}
}

// New builds a logger. The returned func closes the log file, if one was opened.
func New(opts Options) (*slog.Logger, func(), error) {
	infoW, errorW := opts.Info, opts.Error
	if infoW == nil {
		infoW = os.Stdout
	}
	if errorW == nil {
		errorW = os.Stderr
	}

	cleanup := func() {}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		infoW = io.MultiWriter(infoW, f)
		errorW = io.MultiWriter(errorW, f)
	}

	noColor := !isTerminal(infoW) || !isTerminal(errorW)
	handler := &levelRouter{
		level: opts.Level,
		info:  newTint(infoW, opts.Level, noColor),
		error: newTint(errorW, opts.Level, noColor),
	}
	return slog.New(handler), cleanup, nil
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(opts Options) (func(), error) {
	logger, cleanup, err := New(opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return cleanup, nil
}

func newTint(w io.Writer, level slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    noColor,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
