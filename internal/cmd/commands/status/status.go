package status

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/sprintctl/internal/cmd/base"
	"github.com/hashicorp-forge/sprintctl/pkg/docname"
	"github.com/hashicorp-forge/sprintctl/pkg/headersync"
	"github.com/hashicorp-forge/sprintctl/pkg/journal"
)

type Command struct {
	*base.Command

	configFlags base.ConfigFlags
}

func (c *Command) Synopsis() string {
	return "Show sprint documents, leftover staging files and the journal"
}

func (c *Command) Help() string {
	return `Usage: sprintctl status [options]

  Lists the sprint documents of the documents directory with the number in
  their header line, any staging files left by an interrupted renumber run,
  and the state of the last run.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("status", flag.ContinueOnError))

	c.configFlags.AddConfigFlags(f)

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
	conv := cfg.Convention()
	dir := cfg.Documents.Dir
	fs := afero.NewOsFs()

	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		ui.Error(fmt.Sprintf("error reading documents directory: %v", err))
		return 1
	}

	var staged []string
	documents, outOfSync := 0, 0
	ui.Info(fmt.Sprintf("Documents in %s:", dir))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if docname.IsStaging(info.Name()) {
			staged = append(staged, info.Name())
			continue
		}
		name, err := conv.Parse(info.Name())
		if err != nil {
			continue
		}
		documents++

		content, err := afero.ReadFile(fs, filepath.Join(dir, info.Name()))
		if err != nil {
			ui.Error(fmt.Sprintf("error reading %s: %v", info.Name(), err))
			return 1
		}

		header, ok := headersync.FindHeader(content, conv.HeaderLabel())
		switch {
		case !ok:
			ui.Output(fmt.Sprintf("  %s  (no header line)", info.Name()))
		case header.ID != name.ID:
			outOfSync++
			ui.Output(fmt.Sprintf("  %s  header %s, out of sync", info.Name(), header.Token))
		default:
			ui.Output(fmt.Sprintf("  %s  header %s", info.Name(), header.Token))
		}
	}
	ui.Info(fmt.Sprintf("%d documents, %d with out-of-sync headers", documents, outOfSync))

	if len(staged) > 0 {
		ui.Warn(fmt.Sprintf("%d staging files left by an interrupted run:", len(staged)))
		for _, name := range staged {
			target, _ := docname.FromStaging(name)
			ui.Warn(fmt.Sprintf("  %s -> %s", name, target))
		}
	}

	entry, err := journal.New(fs, dir).Load()
	if err != nil {
		ui.Error(fmt.Sprintf("error reading journal: %v", err))
		return 1
	}
	if entry == nil {
		ui.Info("No renumber runs recorded")
	} else {
		ui.Info(fmt.Sprintf("Last run %s: %s, %d mappings, updated %s",
			entry.RunID, entry.State, entry.Mappings, entry.UpdatedAt.Format("2006-01-02 15:04:05")))
	}

	return 0
}
