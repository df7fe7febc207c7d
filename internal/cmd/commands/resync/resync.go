package resync

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/sprintctl/internal/cmd/base"
	"github.com/hashicorp-forge/sprintctl/pkg/headersync"
)

type Command struct {
	*base.Command

	configFlags base.ConfigFlags
	flagDryRun  bool
}

func (c *Command) Synopsis() string {
	return "Rewrite document headers to match their filenames"
}

func (c *Command) Help() string {
	return `Usage: sprintctl resync [options]

  Rewrites the number in the header line of every sprint document so it
  matches the number in the document's filename. No files are renamed.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("resync", flag.ContinueOnError))

	c.configFlags.AddConfigFlags(f)
	f.BoolVar(
		&c.flagDryRun, "dry-run", false,
		"Only print what would be done without making changes.",
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

	cfg, err := c.LoadConfig(c.configFlags)
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing config: %v", err))
		return 1
	}

	r := headersync.New(afero.NewOsFs(), cfg.Convention(), c.Log)
	r.DryRun = c.flagDryRun

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := r.Resync(ctx, cfg.Documents.Dir)
	if err != nil {
		ui.Error(fmt.Sprintf("resync failed: %v", err))
		return 1
	}

	verb := "updated"
	if c.flagDryRun {
		verb = "would update"
	}
	for _, name := range result.Updated {
		ui.Output(fmt.Sprintf("  %s %s", verb, name))
	}
	if result.Warnings != nil {
		for _, w := range result.Warnings.Errors {
			ui.Warn(fmt.Sprintf("warning: %v", w))
		}
	}
	ui.Info(fmt.Sprintf("Headers %s: %d, unchanged: %d", verb, len(result.Updated), len(result.Unchanged)))

	return 0
}
