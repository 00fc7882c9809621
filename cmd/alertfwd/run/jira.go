package run

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/secmon/alertfwd/alert"
	"github.com/secmon/alertfwd/services/jira"
)

const jiraUsage = `Creates a Jira ticket from the last alert of an alert file.

Usage: custom-jira <alert_file> <api_key> <hook_url> <options>

    options is a comma separated list: the project key followed by the
    rule groups whose alerts are never ticketed, e.g. SEC,syscheck,ossec.
`

// JiraCommand represents the command forwarding an alert to a Jira
// automation webhook.
type JiraCommand struct {
	Command
}

func NewJiraCommand() *JiraCommand {
	return &JiraCommand{Command: newCommand("custom-jira")}
}

// Usage returns the usage text of the command.
func (cmd *JiraCommand) Usage() string {
	return jiraUsage
}

// Run forwards the alert found in args[0] unless it belongs to an
// excluded group. Skips and failed deliveries do not return an error, a
// disabled integration or a missing webhook URL does.
func (cmd *JiraCommand) Run(ctx context.Context, args ...string) error {
	if err := cmd.open(); err != nil {
		return err
	}
	defer cmd.close()

	cmd.diag.Info("started")
	if len(args) != 4 {
		err := newUsageError(jiraUsage, "expected 4 arguments, got %d", len(args))
		cmd.diag.Error("incorrect arguments", err)
		return err
	}
	cmd.diag.ReceivedArgs(args[0], len(args))
	if !cmd.Config.Jira.Enabled {
		err := errors.New("integration is disabled in the configuration")
		cmd.diag.Error("cannot create Jira ticket", err)
		return err
	}

	a, err := alert.LoadFile(args[0])
	if err != nil {
		cmd.diag.Error("failed to load alert", err)
		return err
	}
	cmd.diag.AlertLevel(a.LevelString("N/A"))

	project, excluded := ParseOptions(args[3])
	t := jira.Target{
		URL:            args[2],
		Token:          args[1],
		Project:        project,
		ExcludedGroups: excluded,
	}
	if t.URL == "" && cmd.Config.Jira.URL == "" {
		err := errors.New("no Jira webhook URL")
		cmd.diag.Error("incorrect arguments", err)
		return err
	}

	s := jira.NewService(cmd.Config.Jira, cmd.HTTPPost, cmd.Diag.NewJiraHandler())
	if err := s.Open(); err != nil {
		return err
	}
	defer s.Close()

	s.Handler(t).Handle(ctx, a)
	return nil
}

// ParseOptions splits the options argument into the project key and the
// excluded group names.
func ParseOptions(options string) (project string, excluded []string) {
	fields := strings.Split(options, ",")
	project = strings.TrimSpace(fields[0])
	for _, f := range fields[1:] {
		if f = strings.TrimSpace(f); f != "" {
			excluded = append(excluded, f)
		}
	}
	return project, excluded
}
