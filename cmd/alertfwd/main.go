package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/secmon/alertfwd/cmd/alertfwd/run"
	"github.com/urfave/cli/v2"
)

// These variables are populated via the Go linker.
var (
	version string
	commit  string
	branch  string
)

func init() {
	// If commit or branch are not set, make that clear.
	if commit == "" {
		commit = "unknown"
	}
	if branch == "" {
		branch = "unknown"
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		var ue *run.UsageError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr, ue.Usage)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to the configuration file",
			EnvVars: []string{"ALERTFWD_CONFIG_PATH"},
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Write logs to this file, STDERR or STDOUT",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "One of DEBUG, INFO, WARN or ERROR",
		},
	}
}

func options(ctx *cli.Context) run.Options {
	return run.Options{
		ConfigPath: ctx.String("config"),
		LogFile:    ctx.String("log-file"),
		LogLevel:   ctx.String("log-level"),
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "alertfwd",
		Usage:     "Forward manager alerts to Teams and Jira",
		UsageText: "alertfwd [global options] command [arguments...]",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			{
				Name:            "teams",
				Usage:           "Post the last alert of an alert file to a Teams channel",
				ArgsUsage:       "<alert_file> [args...]",
				SkipFlagParsing: true,
				Action: func(ctx *cli.Context) error {
					cmd := run.NewTeamsCommand()
					cmd.Stdout, cmd.Stderr = stdout, stderr
					cmd.Options = options(ctx)
					return cmd.Run(ctx.Context, ctx.Args().Slice()...)
				},
			},
			{
				Name:            "jira",
				Usage:           "Create a Jira ticket from the last alert of an alert file",
				ArgsUsage:       "<alert_file> <api_key> <hook_url> <options>",
				SkipFlagParsing: true,
				Action: func(ctx *cli.Context) error {
					cmd := run.NewJiraCommand()
					cmd.Stdout, cmd.Stderr = stdout, stderr
					cmd.Options = options(ctx)
					return cmd.Run(ctx.Context, ctx.Args().Slice()...)
				},
			},
			{
				Name:      "flatten",
				Usage:     "Write one JSON record per array element of a nested report",
				ArgsUsage: "<in> <out> [depth]",
				Action: func(ctx *cli.Context) error {
					cmd := run.NewFlattenCommand()
					cmd.Stdout, cmd.Stderr = stdout, stderr
					cmd.Options = options(ctx)
					return cmd.Run(ctx.Args().Slice()...)
				},
			},
			{
				Name:  "config",
				Usage: "Print the effective configuration as TOML",
				Action: func(ctx *cli.Context) error {
					cmd := run.NewPrintConfigCommand()
					cmd.Stdout, cmd.Stderr = stdout, stderr
					return cmd.Run(ctx.String("config"))
				},
			},
			{
				Name:  "version",
				Usage: "Display the version",
				Action: func(ctx *cli.Context) error {
					fmt.Fprintf(stdout, "alertfwd version %s (git: %s %s)\n", version, branch, commit)
					return nil
				},
			},
		},
	}
}
