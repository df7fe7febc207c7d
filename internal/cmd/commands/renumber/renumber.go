package renumber

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
	"github.com/hashicorp-forge/sprintctl/pkg/mapping"
	pipeline "github.com/hashicorp-forge/sprintctl/pkg/renumber"
	"github.com/hashicorp-forge/sprintctl/pkg/renumber/commands"
)

type Command struct {
	*base.Command

	configFlags base.ConfigFlags
	flagMapping string
	flagDryRun  bool
	flagForce   bool
}

func (c *Command) Synopsis() string {
	return "Renumber sprint documents according to a mapping"
}

func (c *Command) Help() string {
	return `Usage: sprintctl renumber [options]

  Renames sprint documents according to a mapping of old to new names and
  rewrites the number in each document's header to match its new name.

  Renames go through a staging name first, so mappings that swap or rotate
  numbers are safe. Collisions are detected before any file is touched.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("renumber", flag.ContinueOnError))

	c.configFlags.AddConfigFlags(f)
	f.StringVar(
		&c.flagMapping, "mapping", "",
		"Path to an HCL or YAML mapping file. Defaults to the mapping blocks of the config file.",
	)
	f.BoolVar(
		&c.flagDryRun, "dry-run", false,
		"Only print what would be done without making changes.",
	)
	f.BoolVar(
		&c.flagForce, "force", false,
		"Ignore the journal of previous runs.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	logger, ui := c.Log, c.UI

	// Parse flags.
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli.RunResultHelp
		}
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	// Parse configuration.
	cfg, err := c.LoadConfig(c.configFlags)
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing config: %v", err))
		return 1
	}
	conv := cfg.Convention()

	// Load the mapping.
	var table *mapping.Table
	if c.flagMapping != "" {
		table, err = mapping.LoadFile(c.flagMapping, conv)
	} else {
		table, err = cfg.Table()
	}
	if err != nil {
		ui.Error(fmt.Sprintf("error loading mapping: %v", err))
		return 1
	}
	if table == nil {
		ui.Error("no mapping given: use -mapping or add mapping blocks to the config file")
		return 1
	}

	orch, err := pipeline.NewOrchestrator(
		pipeline.WithFs(afero.NewOsFs()),
		pipeline.WithLogger(logger),
		pipeline.WithConvention(conv),
		pipeline.WithPipeline(commands.DefaultPipeline()),
		pipeline.WithDryRun(c.flagDryRun),
		pipeline.WithForce(c.flagForce),
	)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing renumber pipeline: %v", err))
		return 1
	}

	if c.flagDryRun {
		ui.Warn("DRY RUN mode enabled - no changes will be made")
	}
	ui.Info(fmt.Sprintf("Applying %d mappings in %s", table.Len(), cfg.Documents.Dir))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, runErr := orch.Run(ctx, cfg.Documents.Dir, table)
	if summary != nil {
		printSummary(ui, summary, table)
	}
	if runErr != nil {
		ui.Error(fmt.Sprintf("renumber failed: %v", runErr))
		return 1
	}

	switch {
	case summary.AlreadyApplied:
		ui.Info("Mapping was already applied; nothing to do (use -force to apply it again)")
	case c.flagDryRun:
		ui.Warn("DRY RUN completed - no changes were made")
	default:
		ui.Info("Renumbering completed successfully")
	}

	return 0
}

func printSummary(ui cli.Ui, s *pipeline.Summary, table *mapping.Table) {
	renamedLabel, updatedLabel := "Renamed", "Headers updated"
	if s.DryRun {
		renamedLabel, updatedLabel = "Would rename", "Would update headers"
	}

	resumed := make(map[string]bool, len(s.Resumed))
	for _, old := range s.Resumed {
		resumed[old] = true
	}

	ui.Info("")
	ui.Info("=== Summary ===")
	for _, old := range s.Renamed {
		newName, _ := table.Lookup(old)
		line := fmt.Sprintf("  %s -> %s", old, newName)
		if resumed[old] {
			line += " (resumed)"
		}
		ui.Output(line)
	}
	if s.RenamesCompleted {
		ui.Output("  renames finished by an interrupted run; not renamed again")
	}
	ui.Info(fmt.Sprintf("%s: %d", renamedLabel, len(s.Renamed)))
	for _, old := range s.Skipped {
		ui.Output("  " + old)
	}
	ui.Info(fmt.Sprintf("Skipped (missing source): %d", len(s.Skipped)))
	for _, name := range s.Updated {
		ui.Output("  " + name)
	}
	ui.Info(fmt.Sprintf("%s: %d", updatedLabel, len(s.Updated)))
	ui.Info(fmt.Sprintf("Headers unchanged: %d", len(s.Unchanged)))

	if s.Warnings != nil {
		for _, w := range s.Warnings.Errors {
			ui.Warn(fmt.Sprintf("warning: %v", w))
		}
	}
}
