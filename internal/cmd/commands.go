package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/sprintctl/internal/cmd/base"
	"github.com/hashicorp-forge/sprintctl/internal/cmd/commands/renumber"
	"github.com/hashicorp-forge/sprintctl/internal/cmd/commands/resync"
	"github.com/hashicorp-forge/sprintctl/internal/cmd/commands/scaffold"
	"github.com/hashicorp-forge/sprintctl/internal/cmd/commands/shareimage"
	"github.com/hashicorp-forge/sprintctl/internal/cmd/commands/status"
	"github.com/hashicorp-forge/sprintctl/internal/cmd/commands/version"
)

// Commands returns the subcommands of sprintctl.
func Commands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	b := base.NewCommand(log, ui)

	return map[string]cli.CommandFactory{
		"renumber": func() (cli.Command, error) {
			return &renumber.Command{Command: b}, nil
		},
		"resync": func() (cli.Command, error) {
			return &resync.Command{Command: b}, nil
		},
		"status": func() (cli.Command, error) {
			return &status.Command{Command: b}, nil
		},
		"scaffold": func() (cli.Command, error) {
			return &scaffold.Command{Command: b}, nil
		},
		"share-image": func() (cli.Command, error) {
			return &shareimage.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
