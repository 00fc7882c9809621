package run

import (
	"strconv"

	"github.com/secmon/alertfwd/flatten"
)

const flattenUsage = `Multiplies a nested JSON report into one record per array element.

Usage: alertfwd flatten <in> <out> [depth]

    depth bounds how many levels of nested objects are expanded, a
    negative depth expands all of them. Defaults to -1.
`

// FlattenCommand represents the command writing the records of a nested
// JSON report as newline delimited JSON.
type FlattenCommand struct {
	Command
}

func NewFlattenCommand() *FlattenCommand {
	return &FlattenCommand{Command: newCommand("flatten")}
}

// Usage returns the usage text of the command.
func (cmd *FlattenCommand) Usage() string {
	return flattenUsage
}

// Run flattens args[0] into args[1].
func (cmd *FlattenCommand) Run(args ...string) error {
	if err := cmd.open(); err != nil {
		return err
	}
	defer cmd.close()

	if len(args) != 2 && len(args) != 3 {
		err := newUsageError(flattenUsage, "expected 2 or 3 arguments, got %d", len(args))
		cmd.diag.Error("incorrect arguments", err)
		return err
	}
	depth := -1
	if len(args) == 3 {
		d, err := strconv.Atoi(args[2])
		if err != nil {
			err := newUsageError(flattenUsage, "invalid depth %q", args[2])
			cmd.diag.Error("incorrect arguments", err)
			return err
		}
		depth = d
	}

	h := cmd.Diag.NewFlattenHandler()
	n, err := flatten.File(args[0], args[1], depth)
	if err != nil {
		h.Error("failed to flatten report", err)
		return err
	}
	h.Flattened(args[0], args[1], n)
	return nil
}
