package log

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// Logger wraps zap.Logger so callers don't import zap directly.
type Logger struct {
	*zap.Logger
}

// field helpers re-exported for call sites
var (
	ErrorField = zap.Error
	String     = zap.String
	Int        = zap.Int
	Float64    = zap.Float64
	Bool       = zap.Bool
	Duration   = zap.Duration
	Any        = zap.Any
)

type ctxKey struct{}

var defaultLogger *Logger

type Config struct {
	Level   string
	Format  string // text or json
	Filters string // zapfilter rules, e.g. "debug:corners* info:*"
}

type Option func(*Config)

func WithLevel(level string) Option {
	return func(c *Config) { c.Level = level }
}

func WithFormat(format string) Option {
	return func(c *Config) { c.Format = format }
}

func WithFilters(filters string) Option {
	return func(c *Config) { c.Filters = filters }
}

// New creates a Logger writing to stderr. An invalid level or filter
// expression is reported as an error; callers may fall back to Default().
func New(opts ...Option) (*Logger, error) {
	cfg := &Config{Level: "info", Format: "text"}
	for _, opt := range opts {
		opt(cfg)
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	if cfg.Filters != "" {
		filterFunc, fErr := zapfilter.ParseRules(cfg.Filters)
		if fErr != nil {
			return nil, fmt.Errorf("invalid log filters %q: %w", cfg.Filters, fErr)
		}
		core = zapfilter.NewFilteringCore(core, filterFunc)
	}
	return &Logger{Logger: zap.New(core)}, nil
}

// Default returns the process-wide logger, initializing a plain info-level
// logger on first use.
func Default() *Logger {
	if defaultLogger == nil {
		l, err := New()
		if err != nil {
			// static config, cannot fail
			panic(err)
		}
		defaultLogger = l
	}
	return defaultLogger
}

func ResetDefault(l *Logger) {
	defaultLogger = l
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

func AddToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func GetFromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return Default()
}
