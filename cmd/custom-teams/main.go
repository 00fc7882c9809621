// Command custom-teams is the integration script the manager runs to post
// an alert to a Teams channel: custom-teams <alert_file> [args...].
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

	cmd := run.NewTeamsCommand()
	if err := cmd.Run(ctx, os.Args[1:]...); err != nil {
		var ue *run.UsageError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr, ue.Usage)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
