package shareimage

import (
	"errors"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/sprintctl/internal/cmd/base"
	"github.com/hashicorp-forge/sprintctl/pkg/filewriter"
	"github.com/hashicorp-forge/sprintctl/pkg/shareimage"
)

type Command struct {
	*base.Command

	flagOut    string
	flagNumber int
}

func (c *Command) Synopsis() string {
	return "Render the social share image"
}

func (c *Command) Help() string {
	return `Usage: sprintctl share-image -out <file.png> [options]

  Renders the 1200x630 social share card as a PNG.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("share-image", flag.ContinueOnError))

	f.StringVar(
		&c.flagOut, "out", "",
		"(Required) Output PNG path.",
	)
	f.IntVar(
		&c.flagNumber, "number", -1,
		"Sprint number drawn on the card. Omitted when negative.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli.RunResultHelp
		}
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagOut == "" {
		ui.Error("out flag is required")
		return 1
	}

	opts := shareimage.DefaultOptions()
	opts.Number = c.flagNumber

	data, err := shareimage.Render(opts)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	n, err := filewriter.Write(afero.NewOsFs(), c.flagOut, data)
	if err != nil {
		ui.Error(fmt.Sprintf("error writing %s: %v", c.flagOut, err))
		return 1
	}
	ui.Output(fmt.Sprintf("Wrote %s (%d bytes)", c.flagOut, n))

	return 0
}
