package httppost

import (
	"time"

	"github.com/pkg/errors"
	"github.com/secmon/alertfwd/tlsconfig"
	"github.com/secmon/alertfwd/toml"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "alertfwd"
)

type BasicAuth struct {
	Username string `toml:"username" json:"username"`
	Password string `toml:"password" json:"password"`
}

func (b BasicAuth) valid() bool {
	return b.Username != "" && b.Password != ""
}

func (b BasicAuth) validate() error {
	if (b.Username == "") != (b.Password == "") {
		return errors.New("basic-auth must set both \"username\" and \"password\" parameters")
	}

	return nil
}

// Config is the configuration of the [httppost] section shared by every
// outbound webhook.
type Config struct {
	Timeout   toml.Duration     `toml:"timeout" json:"timeout"`
	UserAgent string            `toml:"user-agent" json:"user-agent"`
	Headers   map[string]string `toml:"headers" json:"headers"`
	BasicAuth BasicAuth         `toml:"basic-auth" json:"basic-auth"`
	TLS       tlsconfig.Config  `toml:"tls" json:"tls"`
}

func NewConfig() Config {
	return Config{
		Timeout:   toml.Duration(DefaultTimeout),
		UserAgent: DefaultUserAgent,
	}
}

// Validate ensures that all configurations options are valid.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if err := c.BasicAuth.validate(); err != nil {
		return err
	}
	return errors.Wrap(c.TLS.Validate(), "invalid tls config")
}
