// Package obslog provides the structured logger used by evocore's
// controller and worker pool.
package obslog

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger so a nil *Logger is a safe no-op, letting callers
// that don't care about logging skip constructing one.
type Logger struct {
	logger *slog.Logger
}

// Option configures a Logger at construction time.
type Option func(*slog.HandlerOptions, *loggerConfig)

type loggerConfig struct {
	writer io.Writer
	json   bool
}

// WithWriter directs log output to w instead of os.Stderr.
func WithWriter(w io.Writer) Option {
	return func(_ *slog.HandlerOptions, cfg *loggerConfig) {
		cfg.writer = w
	}
}

// WithJSON switches the handler to JSON output.
func WithJSON() Option {
	return func(_ *slog.HandlerOptions, cfg *loggerConfig) {
		cfg.json = true
	}
}

// WithLevel sets the minimum enabled level.
func WithLevel(level slog.Level) Option {
	return func(opts *slog.HandlerOptions, _ *loggerConfig) {
		opts.Level = level
	}
}

// New builds a Logger. Passing enabled=false returns nil, and every method
// on a nil *Logger is a no-op, so callers can do `log := obslog.New(cfg.Verbose)`
// unconditionally.
func New(enabled bool, options ...Option) *Logger {
	if !enabled {
		return nil
	}

	handlerOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	cfg := &loggerConfig{writer: os.Stderr}
	for _, opt := range options {
		opt(handlerOpts, cfg)
	}

	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(cfg.writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(cfg.writer, handlerOpts)
	}

	return &Logger{logger: slog.New(handler)}
}

func (l *Logger) Debug(msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}

func (l *Logger) Error(msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.Error(msg, args...)
	}
}

// WithGroup namespaces subsequent attributes under name.
func (l *Logger) WithGroup(name string) *Logger {
	if l == nil || l.logger == nil {
		return nil
	}
	return &Logger{logger: l.logger.WithGroup(name)}
}

// LogGeneration emits one structured line per completed generation.
// diversity is the population's mean pairwise Hamming distance (see
// ga.Population.Diversity); the Adaptive Diversity Policy itself still
// drives purely off stagnantGens, so this is observability only.
func (l *Logger) LogGeneration(generation int, best, avg, diversity float64, stagnant int) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Info("generation complete",
		slog.Int("generation", generation),
		slog.Float64("best", best),
		slog.Float64("avg", avg),
		slog.Float64("diversity", diversity),
		slog.Int("stagnant_gens", stagnant),
	)
}

// LogRecovered records a recovered evaluation error (spec §7 EvaluationError).
func (l *Logger) LogRecovered(genomeID int, err error) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Warn("evaluation error recovered",
		slog.Int("genome_id", genomeID),
		slog.Any("error", err),
	)
}
