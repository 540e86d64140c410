package logging

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/gdpfit/internal/utils"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// lazyFile opens its path in append mode on first write. A write failure
// is sticky and reported by Sync.
type lazyFile struct {
	path string
	f    *os.File
	err  error
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.err != nil {
		return 0, l.err
	}
	if l.f == nil {
		if l.path == "" {
			return len(p), nil
		}
		if err := utils.EnsureDir(l.path); err != nil {
			l.err = fmt.Errorf("write log: %w", err)
			return 0, l.err
		}
		f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			l.err = fmt.Errorf("write log: %w", err)
			return 0, l.err
		}
		l.f = f
	}
	n, err := l.f.Write(p)
	if err != nil {
		l.err = fmt.Errorf("write log: %w", err)
	}
	return n, err
}

func (l *lazyFile) Sync() error {
	if l.err != nil {
		return l.err
	}
	if l.f == nil {
		return nil
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}
	return nil
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

var bufPool = buffer.NewPool()

// lineEncoder renders an entry as `<logger name> <LEVEL> <message>`. Context
// fields are not written to the file.
type lineEncoder struct {
	zapcore.Encoder
}

func newLineEncoder() zapcore.Encoder {
	return lineEncoder{Encoder: zapcore.NewConsoleEncoder(zapcore.EncoderConfig{})}
}

func (e lineEncoder) Clone() zapcore.Encoder { return lineEncoder{Encoder: e.Encoder.Clone()} }

func (e lineEncoder) EncodeEntry(ent zapcore.Entry, _ []zapcore.Field) (*buffer.Buffer, error) {
	b := bufPool.Get()
	if ent.LoggerName != "" {
		b.AppendString(ent.LoggerName)
		b.AppendByte(' ')
	}
	b.AppendString(ent.Level.CapitalString())
	b.AppendByte(' ')
	b.AppendString(ent.Message)
	b.AppendString(zapcore.DefaultLineEnding)
	return b, nil
}
