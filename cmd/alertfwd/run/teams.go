package run

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"github.com/secmon/alertfwd/alert"
	"github.com/secmon/alertfwd/services/teams"
)

const teamsUsage = `Forwards the last alert of an alert file to a Teams channel.

Usage: custom-teams <alert_file> [args...]

    The first argument after the alert file that is an http or https URL
    is the incoming webhook of the channel. Without one the webhook set in
    the [teams] section of the configuration is used.
`

// TeamsCommand represents the command forwarding an alert to Teams.
type TeamsCommand struct {
	Command
}

func NewTeamsCommand() *TeamsCommand {
	return &TeamsCommand{Command: newCommand("custom-teams")}
}

// Usage returns the usage text of the command.
func (cmd *TeamsCommand) Usage() string {
	return teamsUsage
}

// Run forwards the alert found in args[0].
// A failed delivery is logged and does not return an error, a disabled
// integration or a missing webhook URL does.
func (cmd *TeamsCommand) Run(ctx context.Context, args ...string) error {
	if err := cmd.open(); err != nil {
		return err
	}
	defer cmd.close()

	cmd.diag.Info("started")
	if len(args) < 1 {
		err := newUsageError(teamsUsage, "expected at least an alert file, got %d arguments", len(args))
		cmd.diag.Error("incorrect arguments", err)
		return err
	}
	cmd.diag.ReceivedArgs(args[0], len(args))
	if !cmd.Config.Teams.Enabled {
		err := errors.New("integration is disabled in the configuration")
		cmd.diag.Error("cannot send to Teams", err)
		return err
	}

	a, err := alert.LoadFile(args[0])
	if err != nil {
		cmd.diag.Error("failed to load alert", err)
		return err
	}
	cmd.diag.AlertLevel(a.LevelString("N/A"))

	s := teams.NewService(cmd.Config.Teams, cmd.HTTPPost, cmd.Diag.NewTeamsHandler())
	if err := s.Open(); err != nil {
		return err
	}
	defer s.Close()

	channelURL := FindWebhookURL(args[1:])
	if channelURL == "" && s.ChannelURL() == "" {
		err := errors.New("no Teams channel webhook URL")
		cmd.diag.Error("incorrect arguments", err)
		return err
	}

	s.Handler(channelURL).Handle(ctx, a)
	return nil
}

// FindWebhookURL returns the first of args that is an absolute http or
// https URL, or "" if there is none.
func FindWebhookURL(args []string) string {
	for _, arg := range args {
		u, err := url.Parse(arg)
		if err != nil {
			continue
		}
		if (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
			return arg
		}
	}
	return ""
}
