package run

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// PrintConfigCommand represents the command executed by "alertfwd config".
type PrintConfigCommand struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewPrintConfigCommand return a new instance of PrintConfigCommand.
func NewPrintConfigCommand() *PrintConfigCommand {
	return &PrintConfigCommand{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run parses and prints the current config loaded.
func (cmd *PrintConfigCommand) Run(configPath string) error {
	config, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("%s. To generate a valid configuration file run `alertfwd config > alertfwd.generated.conf`.", err)
	}

	if err := toml.NewEncoder(cmd.Stdout).Encode(config); err != nil {
		return err
	}
	fmt.Fprint(cmd.Stdout, "\n")
	return nil
}
