package base

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command holds what every subcommand shares.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// NewCommand creates a Command.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Command{
		Log: log,
		UI:  ui,
	}
}
