// Package debuglog is the --debug log: timestamped, leveled lines appended to
// a plain-text file and mirrored to the console, each tagged with a per-run
// id. A nil *Logger is valid and discards everything, so callers never check
// whether debugging is on.
package debuglog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrNoLog is returned by View when the log file does not exist.
var ErrNoLog = errors.New("no debug log found")

// Options configures Open.
type Options struct {
	Path    string    // log file, appended to; parent directories are created
	Console io.Writer // mirror of every line; nil disables the console copy
	RunID   string    // defaults to a new random UUID
}

// Logger writes debug lines. Use Open; the zero value is not valid, nil is.
type Logger struct {
	z     *zap.Logger
	file  *os.File
	runID string
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.CallerKey = zapcore.OmitKey
	cfg.NameKey = zapcore.OmitKey
	cfg.StacktraceKey = zapcore.OmitKey
	return cfg
}

// Open starts a debug log at opts.Path.
func Open(opts Options) (*Logger, error) {
	if opts.Path == "" {
		return nil, errors.New("debuglog: empty log path")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("debuglog: create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("debuglog: open %s: %w", opts.Path, err)
	}
	enc := zapcore.NewConsoleEncoder(encoderConfig())
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.DebugLevel)}
	if opts.Console != nil {
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(opts.Console), zapcore.DebugLevel))
	}
	id := opts.RunID
	if id == "" {
		id = uuid.NewString()
	}
	z := zap.New(zapcore.NewTee(cores...)).With(zap.String("run", id))
	return &Logger{z: z, file: f, runID: id}, nil
}

// Enabled reports whether l writes anywhere.
func (l *Logger) Enabled() bool {
	return l != nil && l.z != nil
}

// RunID returns the id attached to every line, or "" when disabled.
func (l *Logger) RunID() string {
	if !l.Enabled() {
		return ""
	}
	return l.runID
}

// Section writes a "=== name ===" separator line.
func (l *Logger) Section(name string) {
	if !l.Enabled() {
		return
	}
	l.z.Info("=== " + name + " ===")
}

// Debugf logs at DEBUG.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.z.Debug(fmt.Sprintf(format, args...))
}

// Infof logs at INFO.
func (l *Logger) Infof(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.z.Info(fmt.Sprintf(format, args...))
}

// Warnf logs at WARN.
func (l *Logger) Warnf(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.z.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at ERROR.
func (l *Logger) Errorf(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.z.Error(fmt.Sprintf(format, args...))
}

// Payload logs v pretty-printed as YAML under title. Values that cannot be
// marshaled are logged with %+v.
func (l *Logger) Payload(title string, v any) {
	if !l.Enabled() {
		return
	}
	body, err := yaml.Marshal(v)
	if err != nil {
		l.z.Debug(fmt.Sprintf("%s:\n%+v", title, v))
		return
	}
	l.z.Debug(title + ":\n" + strings.TrimRight(string(body), "\n"))
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if !l.Enabled() {
		return nil
	}
	_ = l.z.Sync()
	return l.file.Close()
}

// View copies the log at path to w.
func View(path string, w io.Writer) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNoLog
	}
	if err != nil {
		return fmt.Errorf("debuglog: open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("debuglog: read %s: %w", path, err)
	}
	return nil
}

// Clear deletes the log at path. It reports whether a file was removed.
func Clear(path string) (bool, error) {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("debuglog: remove %s: %w", path, err)
	}
	return true, nil
}
