package teams

import (
	"net/url"

	"github.com/pkg/errors"
)

const (
	DefaultCriticalLevel = 10
	DefaultSummary       = "Wazuh Alert"
	DefaultTitlePrefix   = "Wazuh Alert – Level"
)

type Config struct {
	// Whether Teams integration is enabled.
	Enabled bool `toml:"enabled" json:"enabled"`
	// The incoming (to Teams) channel webhook URL, used when none is passed
	// on the command line.
	ChannelURL string `toml:"channel-url" json:"channel-url"`
	// Alerts at or above this rule level get the critical theme color.
	CriticalLevel int `toml:"critical-level" json:"critical-level"`
	// Card summary text.
	Summary string `toml:"summary" json:"summary"`
	// Text put before the rule level in the card title.
	TitlePrefix string `toml:"title-prefix" json:"title-prefix"`
}

func NewConfig() Config {
	return Config{
		Enabled:       true,
		CriticalLevel: DefaultCriticalLevel,
		Summary:       DefaultSummary,
		TitlePrefix:   DefaultTitlePrefix,
	}
}

func (c Config) Validate() error {
	if c.ChannelURL != "" {
		if _, err := url.Parse(c.ChannelURL); err != nil {
			return errors.Wrapf(err, "invalid url %q", c.ChannelURL)
		}
	}
	if c.CriticalLevel < 0 {
		return errors.New("critical-level must not be negative")
	}
	return nil
}
