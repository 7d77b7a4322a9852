// Package xlog is the ambient logging/diagnostics surface: a
// dlog.Logger-shaped debug sink plus a pflag.Value log-level flag for
// the demo CLI, grounded on lib/textui.LogLevelFlag and
// github.com/datawire/dlib/dlog. The archive packages themselves never
// do I/O; this package exists only for the optional trace channel
// around the debug self-check (see TracedCheck) and for cmd/moarchive-demo.
package xlog

import (
	"fmt"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/pflag"
)

// LevelFlag is textui.LogLevelFlag trimmed to the four levels this
// module actually emits: error, warn, debug, trace. There is no info
// level here, since nothing in this module logs at that level.
type LevelFlag struct {
	Level dlog.LogLevel
}

var _ pflag.Value = (*LevelFlag)(nil)

func (lvl *LevelFlag) Type() string { return "loglevel" }

func (lvl *LevelFlag) Set(str string) error {
	switch strings.ToLower(str) {
	case "error":
		lvl.Level = dlog.LogLevelError
	case "warn", "warning":
		lvl.Level = dlog.LogLevelWarn
	case "debug":
		lvl.Level = dlog.LogLevelDebug
	case "trace":
		lvl.Level = dlog.LogLevelTrace
	default:
		return fmt.Errorf("invalid log level: %q (want error|warn|debug|trace)", str)
	}
	return nil
}

func (lvl *LevelFlag) String() string {
	switch lvl.Level {
	case dlog.LogLevelError:
		return "error"
	case dlog.LogLevelWarn:
		return "warn"
	case dlog.LogLevelDebug:
		return "debug"
	case dlog.LogLevelTrace:
		return "trace"
	default:
		return "warn"
	}
}
