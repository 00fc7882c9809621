package run

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/secmon/alertfwd/keyvalue"
	"github.com/secmon/alertfwd/services/diagnostic"
	"github.com/secmon/alertfwd/services/httppost"
)

// Options represents the flags shared by every integration command.
type Options struct {
	ConfigPath string
	LogFile    string
	LogLevel   string
}

// Command holds what every integration command needs to run.
type Command struct {
	Stdout io.Writer
	Stderr io.Writer

	// Config, when set, is used instead of searching for a config file.
	Config *Config
	Options

	name string

	Diag       *diagnostic.Service
	diag       *diagnostic.CmdHandler
	HTTPPost   *httppost.Service
	Invocation uuid.UUID
}

func newCommand(name string) Command {
	return Command{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		name:   name,
	}
}

// open loads the configuration, opens the log and builds the HTTP client.
func (cmd *Command) open() error {
	config := cmd.Config
	if config == nil {
		c, err := LoadConfig(cmd.ConfigPath)
		if err != nil {
			return err
		}
		config = c
	}
	if cmd.LogFile != "" {
		config.Logging.File = cmd.LogFile
	}
	if err := config.Logging.Validate(); err != nil {
		return errors.Wrap(err, "invalid logging options")
	}
	cmd.Config = config

	diag := diagnostic.NewService(config.Logging, cmd.Stdout, cmd.Stderr)
	if err := diag.Open(); err != nil {
		return errors.Wrap(err, "failed to open log")
	}
	// The flag wins over the configured level.
	if cmd.LogLevel != "" {
		if err := diag.SetLogLevel(cmd.LogLevel); err != nil {
			diag.Close()
			return errors.Wrap(err, "invalid log level")
		}
	}
	cmd.Invocation = uuid.New()
	cmd.Diag = diag.Named(cmd.name).With(keyvalue.KV("invocation", cmd.Invocation.String()))
	cmd.diag = cmd.Diag.NewCmdHandler()

	h, err := httppost.NewService(config.HTTPPost, cmd.Diag.NewHTTPPostHandler())
	if err != nil {
		cmd.diag.Error("failed to create HTTP client", err)
		diag.Close()
		return err
	}
	if err := h.Open(); err != nil {
		diag.Close()
		return err
	}
	cmd.HTTPPost = h
	return nil
}

func (cmd *Command) close() {
	if cmd.HTTPPost != nil {
		cmd.HTTPPost.Close()
	}
	if cmd.Diag != nil {
		cmd.Diag.Close()
	}
}
