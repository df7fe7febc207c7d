package commands

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
	"github.com/hashicorp-forge/sprintctl/pkg/journal"
	"github.com/hashicorp-forge/sprintctl/pkg/renumber"
)

// CheckJournalCommand compares the mapping with the journal of the last
// run and records the start of this one.
//
//   - same mapping, committed: the run stops; applying a cyclic mapping a
//     second time would undo it.
//   - same mapping, staging: the previous run was interrupted and is resumed.
//   - same mapping, renamed: the previous run was interrupted after every
//     rename; renaming again would undo a cyclic mapping, so only the
//     steps after the rename run.
//   - other mapping, unfinished: refused while staging files remain, since
//     the directory holds a half-finished run of a mapping not being
//     supplied.
//
// Force skips all of these checks.
type CheckJournalCommand struct{}

// Name returns the command name.
func (c *CheckJournalCommand) Name() string {
	return "check-journal"
}

// Execute checks the journal.
func (c *CheckJournalCommand) Execute(ctx context.Context, run *renumber.RunContext) error {
	if run.Journal == nil {
		return nil
	}
	logger := run.Logger.Named(c.Name())
	fingerprint := run.Table.Fingerprint()

	prev, err := run.Journal.Load()
	if err != nil {
		return err
	}

	if prev != nil && !run.Force {
		switch {
		case prev.State == journal.StateCommitted && prev.Fingerprint == fingerprint:
			logger.Info("mapping already applied", "run_id", prev.RunID, "at", prev.UpdatedAt)
			run.Summary.AlreadyApplied = true
			run.Done = true
			return nil
		case prev.State != journal.StateCommitted && prev.Fingerprint != fingerprint:
			staged, err := stagedFiles(run)
			if err != nil {
				return err
			}
			if len(staged) == 0 {
				logger.Info("previous run left nothing staged, starting over", "run_id", prev.RunID)
				break
			}
			return fmt.Errorf(
				"directory holds %d staged documents from unfinished run %s of a different mapping; re-run it with the original mapping or use -force",
				len(staged), prev.RunID)
		case prev.State == journal.StateRenamed:
			logger.Info("resuming interrupted run after its renames", "run_id", prev.RunID)
			run.RenamesCompleted = true
			run.Summary.RenamesCompleted = true
		case prev.State == journal.StateStaging:
			logger.Info("resuming interrupted run", "run_id", prev.RunID)
		}
	}

	if run.DryRun {
		return nil
	}

	entry, err := run.Journal.Begin(fingerprint, run.Table.Len())
	if err != nil {
		return err
	}
	run.JournalEntry = entry
	logger.Debug("recorded run start", "run_id", entry.RunID)

	return nil
}

// CommitJournalCommand marks the run as committed.
type CommitJournalCommand struct{}

// Name returns the command name.
func (c *CommitJournalCommand) Name() string {
	return "commit-journal"
}

// Execute commits the journal entry started by CheckJournalCommand.
func (c *CommitJournalCommand) Execute(ctx context.Context, run *renumber.RunContext) error {
	if run.Journal == nil || run.JournalEntry == nil || run.DryRun {
		return nil
	}
	if err := run.Journal.Commit(run.JournalEntry); err != nil {
		return err
	}
	run.Logger.Named(c.Name()).Debug("committed run", "run_id", run.JournalEntry.RunID)
	return nil
}

func stagedFiles(run *renumber.RunContext) ([]string, error) {
	infos, err := afero.ReadDir(run.Fs, run.Dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", run.Dir, err)
	}
	var staged []string
	for _, info := range infos {
		if !info.IsDir() && docname.IsStaging(info.Name()) {
			staged = append(staged, info.Name())
		}
	}
	return staged, nil
}
