package logging

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface for creating new loggers
type Interface interface {
	Root() *zap.Logger
	SetLevel(level string) error
}

type Service struct {
	root   *zap.Logger
	c      Config
	stdout io.Writer
	stderr io.Writer
	closer io.Closer
	level  zap.AtomicLevel
}

func NewService(c Config, stdout, stderr io.Writer) *Service {
	return &Service{
		c:      c,
		stdout: stdout,
		stderr: stderr,
		level:  zap.NewAtomicLevel(),
		root:   zap.NewNop(),
	}
}

func (s *Service) Open() error {
	var output io.Writer
	switch s.c.File {
	case "STDERR":
		output = s.stderr
	case "STDOUT":
		output = s.stdout
	default:
		dir := filepath.Dir(s.c.File)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}

		f, err := os.OpenFile(s.c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
		if err != nil {
			return err
		}
		output = f
		s.closer = f
	}

	// Set level from configuration
	if err := s.SetLevel(s.c.Level); err != nil {
		return err
	}

	encoder, err := newEncoder(s.c.Encoding)
	if err != nil {
		return err
	}

	s.root = zap.New(zapcore.NewCore(encoder, zapcore.AddSync(output), s.level))
	return nil
}

func (s *Service) Close() error {
	_ = s.root.Sync()
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func (s *Service) Root() *zap.Logger {
	return s.root
}

func (s *Service) SetLevel(level string) error {
	l, err := parseLevel(level)
	if err != nil {
		return err
	}
	s.level.SetLevel(l)
	return nil
}
