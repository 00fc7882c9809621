package jira

import (
	"net/url"

	"github.com/pkg/errors"
)

const (
	DefaultTokenHeader   = "X-Automation-Webhook-Token"
	DefaultIssueType     = "Task"
	DefaultSummaryPrefix = "Wazuh Alert: "
	DefaultSummary       = "Wazuh Alert"
	DefaultDetails       = "No additional details"
)

type Config struct {
	// Whether JIRA integration is enabled.
	Enabled bool `toml:"enabled" json:"enabled"`
	// The Jira automation incoming webhook URL, used when none is passed
	// on the command line.
	URL string `toml:"url" json:"url"`
	// Header carrying the webhook token.
	TokenHeader string `toml:"token-header" json:"token-header"`
	// JIRA project, used when the options carry no project key.
	Project string `toml:"project" json:"project"`
	// Issue type
	IssueType string `toml:"issue-type" json:"issue-type"`
	// Text put before the rule description in the ticket summary.
	SummaryPrefix string `toml:"summary-prefix" json:"summary-prefix"`
	// Groups that are never ticketed, merged with those of the options.
	ExcludedGroups []string `toml:"excluded-groups" json:"excluded-groups"`
}

func NewConfig() Config {
	return Config{
		Enabled:       true,
		TokenHeader:   DefaultTokenHeader,
		IssueType:     DefaultIssueType,
		SummaryPrefix: DefaultSummaryPrefix,
	}
}

func (c Config) Validate() error {
	if c.URL != "" {
		if _, err := url.Parse(c.URL); err != nil {
			return errors.Wrapf(err, "invalid url %q", c.URL)
		}
	}
	if c.TokenHeader == "" {
		return errors.New("must specify token-header")
	}
	if c.IssueType == "" {
		return errors.New("must specify issue-type")
	}
	return nil
}
