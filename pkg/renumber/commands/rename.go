package commands

import (
	"context"

	"github.com/hashicorp-forge/sprintctl/pkg/renamer"
	"github.com/hashicorp-forge/sprintctl/pkg/renumber"
)

// RenameCommand moves every mapped document to its new name through the
// staging namespace.
type RenameCommand struct{}

// Name returns the command name.
func (c *RenameCommand) Name() string {
	return "rename"
}

// Execute applies the mapping table and records in the journal that every
// rename finished.
func (c *RenameCommand) Execute(ctx context.Context, run *renumber.RunContext) error {
	if run.RenamesCompleted {
		run.Logger.Named(c.Name()).Info("renames already completed, skipping")
		return nil
	}

	r := renamer.New(run.Fs, run.Logger)
	r.DryRun = run.DryRun

	result, err := r.Apply(ctx, run.Table, run.Dir)
	if result != nil {
		run.Summary.Renamed = append(run.Summary.Renamed, result.Renamed...)
		run.Summary.Skipped = append(run.Summary.Skipped, result.Skipped...)
		run.Summary.Resumed = append(run.Summary.Resumed, result.Resumed...)
		run.AddWarnings(result.Warnings)

		if !run.DryRun {
			for _, old := range result.Renamed {
				if doc, ok := run.ByOld(old); ok {
					doc.Advance(renumber.StateRenamed)
				}
			}
		}
	}
	if err != nil {
		return err
	}

	if !run.DryRun && run.Journal != nil && run.JournalEntry != nil {
		if err := run.Journal.MarkRenamed(run.JournalEntry); err != nil {
			return err
		}
	}

	return nil
}
