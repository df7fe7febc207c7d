package version

import (
	"github.com/hashicorp-forge/sprintctl/internal/cmd/base"
	"github.com/hashicorp-forge/sprintctl/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the sprintctl version"
}

func (c *Command) Help() string {
	return `Usage: sprintctl version

  Prints the version of sprintctl.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
