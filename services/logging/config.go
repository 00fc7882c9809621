package logging

import (
	"strings"

	"github.com/pkg/errors"
)

// DefaultFile is the integrations log of the manager.
const DefaultFile = "/var/ossec/logs/integrations.log"

type Config struct {
	// File is STDERR, STDOUT or a path opened for append.
	File string `toml:"file" json:"file"`
	// Level is one of DEBUG, INFO, WARN or ERROR.
	Level string `toml:"level" json:"level"`
	// Encoding is one of text, json or logfmt.
	Encoding string `toml:"encoding" json:"encoding"`
}

func NewConfig() Config {
	return Config{
		File:     DefaultFile,
		Level:    "INFO",
		Encoding: "text",
	}
}

func (c Config) Validate() error {
	if c.File == "" {
		return errors.New("must specify log file")
	}
	if _, err := parseLevel(c.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Encoding) {
	case "text", "json", "logfmt":
	default:
		return errors.Errorf("unknown log encoding %q", c.Encoding)
	}
	return nil
}
