// Package loggingtest records log entries in memory so tests can assert on them.
package loggingtest

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type TestLogService struct {
	root  *zap.Logger
	level zap.AtomicLevel
	Logs  *observer.ObservedLogs
}

func New() *TestLogService {
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	core, logs := observer.New(level)
	return &TestLogService{
		root:  zap.New(core),
		level: level,
		Logs:  logs,
	}
}

func (l *TestLogService) Root() *zap.Logger {
	return l.root
}

func (l *TestLogService) SetLevel(level string) error {
	return l.level.UnmarshalText([]byte(level))
}

// Messages returns the messages logged at lvl, in order.
func (l *TestLogService) Messages(lvl zapcore.Level) []string {
	var msgs []string
	for _, e := range l.Logs.All() {
		if e.Level == lvl {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}
