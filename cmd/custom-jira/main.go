// Command custom-jira is the integration script the manager runs to open a
// Jira ticket: custom-jira <alert_file> <api_key> <hook_url> <options>.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/secmon/alertfwd/cmd/alertfwd/run"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := run.NewJiraCommand()
	if err := cmd.Run(ctx, os.Args[1:]...); err != nil {
		var ue *run.UsageError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr, ue.Usage)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
