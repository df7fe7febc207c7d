// Package renamer applies a mapping table to a directory of documents
// without ever overwriting a document that is still waiting to be moved.
//
// Every move goes through two phases. Phase 1 moves each existing source to
// its staging name; phase 2 moves each staging name to its final name. After
// phase 1 no old name of a touched document remains and no new name has been
// produced yet, so phase 2 has no ordering dependency even when the mapping
// contains cycles (A->B, B->A).
package renamer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
	"github.com/hashicorp-forge/sprintctl/pkg/mapping"
)

// Renamer moves documents according to a mapping table.
type Renamer struct {
	Fs     afero.Fs
	Logger hclog.Logger

	// DryRun plans the moves and reports them without renaming anything.
	DryRun bool
}

// New creates a Renamer operating on fs.
func New(fs afero.Fs, logger hclog.Logger) *Renamer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Renamer{
		Fs:     fs,
		Logger: logger.Named("renamer"),
	}
}

// Result lists entries by their old name.
type Result struct {
	// Renamed entries now exist under their new name.
	Renamed []string

	// Skipped entries had no source in the directory.
	Skipped []string

	// Resumed entries were found under their staging name, left behind by
	// an interrupted run, and were completed. They also appear in Renamed.
	Resumed []string

	// Warnings holds the non-fatal MissingSourceErrors.
	Warnings *multierror.Error
}

type sourceState int

const (
	statePending sourceState = iota
	stateResumed
	stateSkipped

	// stateInPlace is an identity entry whose document already has its
	// final name.
	stateInPlace
)

type move struct {
	entry   mapping.Entry
	state   sourceState
	oldPath string
	stgPath string
	newPath string
}

// Apply renames every mapped document in dir. Missing sources are skipped.
// Collisions and filesystem failures are fatal: Apply returns at once and
// leaves the directory as it is, which a re-run with the same table completes.
func (r *Renamer) Apply(ctx context.Context, table *mapping.Table, dir string) (*Result, error) {
	if r.Logger == nil {
		r.Logger = hclog.NewNullLogger()
	}

	moves, result, err := r.plan(table, dir)
	if err != nil {
		return result, err
	}

	if r.DryRun {
		for _, m := range moves {
			if m.state == stateSkipped {
				continue
			}
			r.Logger.Info("would rename", "old", m.entry.Old, "new", m.entry.New)
			result.Renamed = append(result.Renamed, m.entry.Old)
			if m.state == stateResumed {
				result.Resumed = append(result.Resumed, m.entry.Old)
			}
		}
		return result, nil
	}

	// Phase 1: old -> staging.
	for _, m := range moves {
		if m.state != statePending {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := r.Fs.Rename(m.oldPath, m.stgPath); err != nil {
			return result, &IOError{Op: "rename", Path: m.oldPath, Err: err}
		}
		r.Logger.Debug("staged document", "old", m.entry.Old, "staging", filepath.Base(m.stgPath))
	}

	// Phase 2: staging -> new.
	for _, m := range moves {
		if m.state == stateSkipped {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if m.state == stateInPlace {
			result.Renamed = append(result.Renamed, m.entry.Old)
			continue
		}

		staged, err := afero.Exists(r.Fs, m.stgPath)
		if err != nil {
			return result, &IOError{Op: "stat", Path: m.stgPath, Err: err}
		}
		if !staged {
			missing := &MissingSourceError{Entry: m.entry, Name: filepath.Base(m.stgPath)}
			r.Logger.Warn("staged document disappeared", "old", m.entry.Old, "staging", missing.Name)
			result.Skipped = append(result.Skipped, m.entry.Old)
			result.Warnings = multierror.Append(result.Warnings, missing)
			continue
		}

		occupied, err := afero.Exists(r.Fs, m.newPath)
		if err != nil {
			return result, &IOError{Op: "stat", Path: m.newPath, Err: err}
		}
		if occupied {
			return result, &CollisionError{Entry: m.entry, Name: m.entry.New, Reason: "appeared during the run"}
		}

		if err := r.Fs.Rename(m.stgPath, m.newPath); err != nil {
			return result, &IOError{Op: "rename", Path: m.stgPath, Err: err}
		}

		r.Logger.Info("renamed document", "old", m.entry.Old, "new", m.entry.New)
		result.Renamed = append(result.Renamed, m.entry.Old)
		if m.state == stateResumed {
			result.Resumed = append(result.Resumed, m.entry.Old)
		}
	}

	r.Logger.Info("rename complete",
		"renamed", len(result.Renamed),
		"skipped", len(result.Skipped),
		"resumed", len(result.Resumed),
	)

	return result, nil
}

// plan classifies every entry and rejects the run if any target is
// occupied by a file that will not have been staged away by phase 1.
func (r *Renamer) plan(table *mapping.Table, dir string) ([]move, *Result, error) {
	result := &Result{}
	entries := table.Entries()
	moves := make([]move, 0, len(entries))
	pending := make(map[string]bool, len(entries))

	var collisions *multierror.Error
	for _, e := range entries {
		m := move{
			entry:   e,
			oldPath: filepath.Join(dir, e.Old),
			stgPath: filepath.Join(dir, docname.StagingName(e.New)),
			newPath: filepath.Join(dir, e.New),
		}

		hasOld, err := afero.Exists(r.Fs, m.oldPath)
		if err != nil {
			return nil, result, &IOError{Op: "stat", Path: m.oldPath, Err: err}
		}
		hasStaged, err := afero.Exists(r.Fs, m.stgPath)
		if err != nil {
			return nil, result, &IOError{Op: "stat", Path: m.stgPath, Err: err}
		}

		// A crash during phase 2 of a cycle or chain can leave another
		// entry's committed target under this entry's old name while this
		// entry is still staged.
		if hasOld && hasStaged {
			refilled, err := r.refilledByOtherEntry(table, dir, e)
			if err != nil {
				return nil, result, err
			}
			if refilled {
				hasOld = false
			}
		}

		switch {
		case hasOld && hasStaged:
			collisions = multierror.Append(collisions, &CollisionError{
				Entry:  e,
				Name:   docname.StagingName(e.New),
				Reason: "already exists while the source is unstaged",
			})
			continue
		case hasOld && e.IsIdentity():
			m.state = stateInPlace
		case hasOld:
			m.state = statePending
			pending[e.Old] = true
		case hasStaged:
			m.state = stateResumed
			r.Logger.Info("resuming interrupted rename", "old", e.Old, "staging", docname.StagingName(e.New))
		default:
			m.state = stateSkipped
			missing := &MissingSourceError{Entry: e, Name: e.Old}
			r.Logger.Warn("source document not found", "old", e.Old)
			result.Skipped = append(result.Skipped, e.Old)
			result.Warnings = multierror.Append(result.Warnings, missing)
		}
		moves = append(moves, m)
	}

	for _, m := range moves {
		if m.state == stateSkipped || m.state == stateInPlace || pending[m.entry.New] {
			continue
		}
		occupied, err := afero.Exists(r.Fs, m.newPath)
		if err != nil {
			return nil, result, &IOError{Op: "stat", Path: m.newPath, Err: err}
		}
		if occupied {
			collisions = multierror.Append(collisions, &CollisionError{
				Entry:  m.entry,
				Name:   m.entry.New,
				Reason: "already exists and is not moved by this mapping",
			})
		}
	}

	if err := collisions.ErrorOrNil(); err != nil {
		r.Logger.Error("refusing to rename", "error", err)
		return nil, result, fmt.Errorf("rename aborted before any change: %w", err)
	}

	return moves, result, nil
}

// refilledByOtherEntry reports whether the file at e.Old is the committed
// target of the entry that maps onto e.Old: that entry has neither its old
// name nor its staging name left.
func (r *Renamer) refilledByOtherEntry(table *mapping.Table, dir string, e mapping.Entry) (bool, error) {
	if e.IsIdentity() {
		return false, nil
	}
	source, ok := table.Source(e.Old)
	if !ok {
		return false, nil
	}
	for _, name := range []string{source, docname.StagingName(e.Old)} {
		path := filepath.Join(dir, name)
		exists, err := afero.Exists(r.Fs, path)
		if err != nil {
			return false, &IOError{Op: "stat", Path: path, Err: err}
		}
		if exists {
			return false, nil
		}
	}
	return true, nil
}
