package xlog

import (
	"context"
	"io"
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/sirupsen/logrus"
)

// NewLogger builds a dlog.Logger writing to out at the given level,
// following the logrus-wrapping pattern of cmd/btrfs-rec/main.go: a
// bare *logrus.Logger handed to dlog.WrapLogrus, rather than
// textui.logger's hand-rolled field-formatting implementation — the
// demo CLI has no structured fields to print, so the plain wrapper is
// all it needs.
func NewLogger(out io.Writer, lvl dlog.LogLevel) dlog.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrusLevel(lvl))
	return dlog.WrapLogrus(l)
}

// WithLevel installs a stderr logger at lvl into ctx, for
// cmd/moarchive-demo's startup.
func WithLevel(ctx context.Context, lvl dlog.LogLevel) context.Context {
	return dlog.WithLogger(ctx, NewLogger(os.Stderr, lvl))
}

func logrusLevel(lvl dlog.LogLevel) logrus.Level {
	switch lvl {
	case dlog.LogLevelError:
		return logrus.ErrorLevel
	case dlog.LogLevelWarn:
		return logrus.WarnLevel
	case dlog.LogLevelDebug:
		return logrus.DebugLevel
	case dlog.LogLevelTrace:
		return logrus.TraceLevel
	default:
		return logrus.WarnLevel
	}
}

// TracedCheck runs check and, on failure, emits a dlog.Debugf trace
// line naming what (e.g. "archive2d.Add") before invoking onFail —
// normally archiveerr.Inconsistent. The archive packages' own debug
// self-check calls never require a context (their hot path doesn't
// take one); this wrapper is the opt-in seam a caller uses when it
// already has a ctx with a logger installed and wants the trace line
// before the fatal panic (spec "make_expensive_asserts" self-check,
// generalized with a diagnostic channel per the ambient logging
// stack).
func TracedCheck(ctx context.Context, what string, check func() error, onFail func(format string, args ...any)) {
	if err := check(); err != nil {
		dlog.Debugf(ctx, "%s: self-check failed: %v", what, err)
		onFail("%s: %v", what, err)
	}
}
