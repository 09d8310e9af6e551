package bootstrap

import (
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-contacts/config"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/rs/zerolog"
)

// NewBaseLogger builds the root glog logger shared by config loading,
// persistence and the pretty service logger.
func NewBaseLogger(name string) *glog.BaseLogger {
	return glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName(name),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
}

// ServiceLogger returns the logger handed to the service layer. The json
// format writes structured lines through zerolog; anything else reuses the
// glog logger.
func ServiceLogger(base *glog.BaseLogger, cfg config.LoggingConfig, name string) types.Logger {
	if cfg.Format == config.LogJSON {
		return NewZerologLogger(os.Stdout, cfg.Level, name)
	}
	return &glogAdapter{l: base.GetLogger(name)}
}

type glogAdapter struct {
	l glog.Logger
}

func (a *glogAdapter) Debug(msg string, args ...any) {
	a.l.Debug(msg, args...)
}

func (a *glogAdapter) Info(msg string, args ...any) {
	a.l.Info(msg, args...)
}

func (a *glogAdapter) Error(msg string, err error, args ...any) {
	if err != nil {
		args = append([]any{"error", err}, args...)
	}
	a.l.Error(msg, args...)
}

// ZerologLogger adapts zerolog to types.Logger.
type ZerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger writes JSON lines to w at the given level. Unknown levels
// fall back to info.
func NewZerologLogger(w io.Writer, level, name string) *ZerologLogger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	ctx := zerolog.New(w).Level(lvl).With().Timestamp()
	if name != "" {
		ctx = ctx.Str("logger", name)
	}
	return &ZerologLogger{l: ctx.Logger()}
}

var _ types.Logger = (*ZerologLogger)(nil)

// Debug implements types.Logger.
func (z *ZerologLogger) Debug(msg string, fields ...any) {
	z.l.Debug().Fields(fields).Msg(msg)
}

// Info implements types.Logger.
func (z *ZerologLogger) Info(msg string, fields ...any) {
	z.l.Info().Fields(fields).Msg(msg)
}

// Error implements types.Logger.
func (z *ZerologLogger) Error(msg string, err error, fields ...any) {
	z.l.Error().Err(err).Fields(fields).Msg(msg)
}
