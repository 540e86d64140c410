package logging

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AutoRequestID asks ResolveRequestID for a freshly generated identifier.
const AutoRequestID = "auto"

// DefaultRequestID tags entries when nothing else is configured.
const DefaultRequestID = "req_001"

// ResolveRequestID returns id, substituting a UUID for "auto" and the
// default for an empty value.
func ResolveRequestID(id string) string {
	switch id {
	case "":
		return DefaultRequestID
	case AutoRequestID:
		return uuid.NewString()
	}
	return id
}

// Logger appends plain `<request-id> <LEVEL> <message>` lines to a file.
// The file is not touched until the first Info-or-above entry is written.
type Logger struct {
	*zap.Logger
	RequestID string
	sink      *lazyFile
}

// Options configures New.
type Options struct {
	// Path of the append-only log file.
	Path string
	// RequestID names the logger; see ResolveRequestID.
	RequestID string
	// Mirror, when set, also receives every entry down to Debug in zap's
	// console format.
	Mirror io.Writer
}

// New builds the run logger. Call Close when done.
func New(opt Options) *Logger {
	id := ResolveRequestID(opt.RequestID)
	sink := &lazyFile{path: opt.Path}
	core := zapcore.NewCore(newLineEncoder(), zapcore.Lock(sink), zapcore.InfoLevel)
	if opt.Mirror != nil {
		console := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(zapcore.AddSync(opt.Mirror)),
			zapcore.DebugLevel,
		)
		core = zapcore.NewTee(core, console)
	}
	return &Logger{
		Logger:    zap.New(core).Named(id),
		RequestID: id,
		sink:      sink,
	}
}

// Flush syncs the file and reports the first write error, if any.
func (l *Logger) Flush() error { return l.sink.Sync() }

// Close flushes and releases the log file.
func (l *Logger) Close() error {
	return errors.Join(l.sink.Sync(), l.sink.Close())
}

// Opened reports whether the log file has been created or opened.
func (l *Logger) Opened() bool { return l.sink.f != nil }
