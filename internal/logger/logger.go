package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is shared by every package. Init replaces it once at startup;
// until then it writes JSON to stderr.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

type Config struct {
	Level        string // zerolog level name, info when empty or unknown
	Format       string // "pretty" for console output, anything else is JSON
	TimeFormat   string // layout for the time field, RFC3339 when empty
	ReportCaller bool
}

func Init(cfg Config) {
	InitWithWriter(cfg, os.Stdout)
}

func InitWithWriter(cfg Config, out io.Writer) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = timeFormat

	if cfg.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	}

	builder := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.ReportCaller {
		builder = builder.Caller()
	}
	Logger = builder.Logger()
}

func Debug() *zerolog.Event { return Logger.Debug() }
func Info() *zerolog.Event  { return Logger.Info() }
func Warn() *zerolog.Event  { return Logger.Warn() }
func Error() *zerolog.Event { return Logger.Error() }
func Fatal() *zerolog.Event { return Logger.Fatal() }

// With returns a child logger tagged with a component name.
func With(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithContext attaches l to ctx so code further down the call chain logs
// with the same fields.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// Ctx returns the logger attached to ctx, or the shared Logger when there
// is none.
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &Logger
}
