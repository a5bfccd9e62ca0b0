// Package build provides the leveled, per-subsystem logging backbone
// shared by the orchestrator, participant, and relay binaries. It is
// adapted from the teacher's log.go/build package: a RotatingLogWriter
// fans log lines out to stdout and/or a rotated file, and each subsystem
// gets its own slog.Logger tagged with a short subsystem code.
package build

import (
	"io"
	"os"
	"sync"

	"github.com/decred/slog"
)

// LogWriter wraps an underlying sink (stdout, a rotated file, or both) and
// implements io.Writer so it can back a slog.Backend.
type LogWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (w *LogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

// RotatingLogWriter manages a single LogWriter and the named subsystem
// loggers registered against it. It mirrors the teacher's type of the
// same name: subsystems are registered once at startup, then looked up by
// name so components can quiet or raise their own verbosity.
type RotatingLogWriter struct {
	mu      sync.Mutex
	writer  *LogWriter
	backend *slog.Backend
	loggers map[string]slog.Logger
}

// NewRotatingLogWriter creates a RotatingLogWriter backed by sink (stdout
// by default; a build-tagged variant swaps in a rotated file, see
// log_filelog.go).
func NewRotatingLogWriter(sink io.Writer) *RotatingLogWriter {
	w := &LogWriter{out: sink}
	return &RotatingLogWriter{
		writer:  w,
		backend: slog.NewBackend(w),
		loggers: make(map[string]slog.Logger),
	}
}

// GenSubLogger returns a new slog.Logger tagged with subsystem, creating
// the backend logger on first use.
func (r *RotatingLogWriter) GenSubLogger(subsystem string) slog.Logger {
	return r.backend.Logger(subsystem)
}

// RegisterSubLogger records logger under subsystem so SetLogLevel can find
// it later (e.g. from an operator CLI or a config flag).
func (r *RotatingLogWriter) RegisterSubLogger(subsystem string, logger slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loggers[subsystem] = logger
}

// SetLogLevel raises or lowers the verbosity of a previously registered
// subsystem logger. Unknown subsystems are a silent no-op, matching the
// teacher's tolerance for stale --debuglevel entries across versions.
func (r *RotatingLogWriter) SetLogLevel(subsystem string, level string) {
	r.mu.Lock()
	logger, ok := r.loggers[subsystem]
	r.mu.Unlock()
	if !ok {
		return
	}
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		return
	}
	logger.SetLevel(lvl)
}

// replaceableLogger lets package-level logger variables be declared before
// the root RotatingLogWriter exists, then be swapped in place once startup
// has built the real one by assigning its embedded Logger field.
type replaceableLogger struct {
	slog.Logger
	subsystem string
}

// NewSubLogger creates a logger for subsystem, using root.GenSubLogger
// once root is non-nil, or a disabled logger during early init before the
// root writer exists (mirrors the teacher's addLndPkgLogger bootstrapping
// trick so package-level loggers are never nil).
func NewSubLogger(subsystem string, genLogger func(string) slog.Logger) slog.Logger {
	if genLogger == nil {
		return slog.Disabled
	}
	return genLogger(subsystem)
}

// NewPlaceholderLogger returns a disabled logger usable before the root
// writer exists; callers replace it in place by assigning its embedded
// Logger field.
func NewPlaceholderLogger(subsystem string) *replaceableLogger {
	return &replaceableLogger{Logger: slog.Disabled, subsystem: subsystem}
}

// SetSubLogger is a helper to register and wire the logger of one
// subsystem, optionally propagating it into package-level UseLogger hooks
// the way the teacher's dcrlnd package wires sub-packages.
func SetSubLogger(root *RotatingLogWriter, subsystem string, logger slog.Logger, useLoggers ...func(slog.Logger)) {
	root.RegisterSubLogger(subsystem, logger)
	for _, use := range useLoggers {
		use(logger)
	}
}

// AddSubLogger creates and registers the logger for one subsystem in a
// single call.
func AddSubLogger(root *RotatingLogWriter, subsystem string, useLoggers ...func(slog.Logger)) slog.Logger {
	logger := root.GenSubLogger(subsystem)
	SetSubLogger(root, subsystem, logger, useLoggers...)
	return logger
}

// StdoutWriter is the default sink used when no filelog build tag is
// present.
func StdoutWriter() io.Writer {
	return os.Stdout
}

// ParseLevel is a thin wrapper around slog.LevelFromString for callers
// outside this package that don't want to import slog just to parse a
// --loglevel flag.
func ParseLevel(level string) (slog.Level, bool) {
	return slog.LevelFromString(level)
}
