package diagnostic

import (
	"io"

	"github.com/secmon/alertfwd/keyvalue"
	"github.com/secmon/alertfwd/services/logging"
	"go.uber.org/zap"
)

// Service builds the per component diagnostic handlers on top of one logger.
type Service struct {
	logService *logging.Service
	root       logging.Interface
	Logger     *zap.Logger
}

func NewService(c logging.Config, stdout, stderr io.Writer) *Service {
	ls := logging.NewService(c, stdout, stderr)
	return &Service{
		logService: ls,
		root:       ls,
		Logger:     zap.NewNop(),
	}
}

// NewServiceWith wraps an already opened logger, Open and Close are no-ops.
func NewServiceWith(l logging.Interface) *Service {
	return &Service{
		root:   l,
		Logger: l.Root(),
	}
}

func (s *Service) Open() error {
	if s.logService == nil {
		return nil
	}
	if err := s.logService.Open(); err != nil {
		return err
	}
	s.Logger = s.logService.Root()
	return nil
}

func (s *Service) Close() error {
	if s.logService == nil {
		return s.Logger.Sync()
	}
	return s.logService.Close()
}

func (s *Service) SetLogLevel(level string) error {
	return s.root.SetLevel(level)
}

// Named returns a Service whose handlers log under name.
func (s *Service) Named(name string) *Service {
	return &Service{
		logService: s.logService,
		root:       s.root,
		Logger:     s.Logger.Named(name),
	}
}

// With returns a Service whose handlers carry ctx on every line.
func (s *Service) With(ctx ...keyvalue.T) *Service {
	return &Service{
		logService: s.logService,
		root:       s.root,
		Logger:     s.Logger.With(logFieldsFromContext(ctx)...),
	}
}

func (s *Service) NewCmdHandler() *CmdHandler {
	return &CmdHandler{
		l: s.Logger.With(zap.String("service", "run")),
	}
}

func (s *Service) NewHTTPPostHandler() *HTTPPostHandler {
	return &HTTPPostHandler{
		l: s.Logger.With(zap.String("service", "httppost")),
	}
}

func (s *Service) NewTeamsHandler() *TeamsHandler {
	return &TeamsHandler{
		l: s.Logger.With(zap.String("service", "teams")),
	}
}

func (s *Service) NewJiraHandler() *JiraHandler {
	return &JiraHandler{
		l: s.Logger.With(zap.String("service", "jira")),
	}
}

func (s *Service) NewFlattenHandler() *FlattenHandler {
	return &FlattenHandler{
		l: s.Logger.With(zap.String("service", "flatten")),
	}
}
