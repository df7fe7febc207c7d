package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
	"github.com/hashicorp-forge/sprintctl/pkg/headersync"
	"github.com/hashicorp-forge/sprintctl/pkg/renumber"
)

// ResyncCommand rewrites header ids from the now-final filenames.
type ResyncCommand struct{}

// Name returns the command name.
func (c *ResyncCommand) Name() string {
	return "resync"
}

// Execute resynchronizes headers of every document in the directory. In a
// dry run nothing has moved yet, so the header change each renamed
// document would receive is predicted from its current file, unless an
// earlier run already finished the renames.
func (c *ResyncCommand) Execute(ctx context.Context, run *renumber.RunContext) error {
	if run.DryRun && !run.RenamesCompleted {
		return c.predict(run)
	}

	r := headersync.New(run.Fs, run.Convention, run.Logger)
	r.DryRun = run.DryRun
	result, err := r.Resync(ctx, run.Dir)
	if result != nil {
		run.Summary.Updated = append(run.Summary.Updated, result.Updated...)
		run.Summary.Unchanged = append(run.Summary.Unchanged, result.Unchanged...)
		run.AddWarnings(result.Warnings)

		mismatched := make(map[string]bool)
		if result.Warnings != nil {
			for _, w := range result.Warnings.Errors {
				if m, ok := w.(*headersync.PatternMismatchError); ok {
					mismatched[m.File] = true
				}
			}
		}
		for _, doc := range run.Documents {
			if doc.State == renumber.StateRenamed && !mismatched[doc.Entry.New] {
				doc.Advance(renumber.StateHeaderSynced)
			}
		}
	}

	return err
}

func (c *ResyncCommand) predict(run *renumber.RunContext) error {
	logger := run.Logger.Named(c.Name())
	label := run.Convention.HeaderLabel()

	for _, old := range run.Summary.Renamed {
		doc, ok := run.ByOld(old)
		if !ok {
			continue
		}
		name, err := run.Convention.Parse(doc.Entry.New)
		if err != nil {
			return err
		}

		path := filepath.Join(run.Dir, old)
		if doc.State == renumber.StateStaged {
			path = filepath.Join(run.Dir, docname.StagingName(doc.Entry.New))
		}
		content, err := afero.ReadFile(run.Fs, path)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", filepath.Base(path), err)
		}

		header, found := headersync.FindHeader(content, label)
		switch {
		case !found:
			run.Summary.Unchanged = append(run.Summary.Unchanged, doc.Entry.New)
		case header.Token != header.FormatID(name.ID):
			logger.Info("would update header", "file", doc.Entry.New, "from", header.ID, "to", name.ID)
			run.Summary.Updated = append(run.Summary.Updated, doc.Entry.New)
		default:
			run.Summary.Unchanged = append(run.Summary.Unchanged, doc.Entry.New)
		}
	}

	return nil
}
