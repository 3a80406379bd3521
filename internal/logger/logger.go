// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the shared logger. Init replaces it.
var Logger = log.Logger

// Config controls level, output format and timestamps.
type Config struct {
	Level        string `json:"level" yaml:"level"`                 // debug, info, warn, error
	Format       string `json:"format" yaml:"format"`               // json or pretty
	TimeFormat   string `json:"time_format" yaml:"time_format"`     // defaults to RFC3339
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"` // adds file:line
}

// Init builds the shared logger from cfg, writing to stdout.
func Init(cfg Config) {
	Logger = New(cfg, os.Stdout)
	zerolog.SetGlobalLevel(Logger.GetLevel())
	log.Logger = Logger
}

// New builds a logger writing to w. Unknown levels fall back to info.
func New(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	out := w
	if cfg.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: cfg.TimeFormat}
	}

	c := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.ReportCaller {
		c = c.Caller()
	}
	return c.Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// Debug starts a debug event on the shared logger.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info starts an info event on the shared logger.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn starts a warn event on the shared logger.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error starts an error event on the shared logger.
func Error() *zerolog.Event {
	return Logger.Error()
}

// Fatal starts a fatal event; the process exits after it is sent.
func Fatal() *zerolog.Event {
	return Logger.Fatal()
}

// Ctx returns the logger stored in ctx, or a disabled logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext stores the shared logger in ctx.
func WithContext(ctx context.Context) context.Context {
	return Logger.WithContext(ctx)
}
