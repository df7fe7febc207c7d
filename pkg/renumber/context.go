package renumber

import (
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
	"github.com/hashicorp-forge/sprintctl/pkg/journal"
	"github.com/hashicorp-forge/sprintctl/pkg/mapping"
)

// DocumentState is the position of a document in the renumbering lifecycle.
// A document only ever moves forward.
type DocumentState int

const (
	StateOriginal DocumentState = iota
	StateStaged
	StateRenamed
	StateHeaderSynced
)

func (s DocumentState) String() string {
	switch s {
	case StateOriginal:
		return "original"
	case StateStaged:
		return "staged"
	case StateRenamed:
		return "renamed"
	case StateHeaderSynced:
		return "header-synced"
	default:
		return "unknown"
	}
}

// DocumentContext tracks one mapping entry through the pipeline.
type DocumentContext struct {
	Entry mapping.Entry
	State DocumentState

	// ContentHash is the SHA-256 of the content with the header id masked,
	// taken before any rename. Empty when the document was not found.
	ContentHash string
}

// Advance moves the document to state if that is a forward transition.
func (dc *DocumentContext) Advance(state DocumentState) {
	if state > dc.State {
		dc.State = state
	}
}

// Summary is the user-visible outcome of a run.
type Summary struct {
	Renamed   []string
	Skipped   []string
	Resumed   []string
	Updated   []string
	Unchanged []string

	// Warnings collects the non-fatal problems of every step.
	Warnings *multierror.Error

	// AlreadyApplied is set when the journal shows this exact mapping was
	// committed before and nothing was done.
	AlreadyApplied bool

	// RenamesCompleted is set when an interrupted run of this mapping had
	// already renamed every document; only the later steps ran.
	RenamesCompleted bool

	DryRun bool
}

// RunContext holds everything a pipeline run needs. The directory is part
// of the run, never global state, so independent runs can target
// independent directories.
type RunContext struct {
	Dir        string
	Fs         afero.Fs
	Logger     hclog.Logger
	Convention docname.Convention
	Table      *mapping.Table

	DryRun bool
	Force  bool

	// Journal is nil when journaling is disabled.
	Journal      *journal.Journal
	JournalEntry *journal.Entry

	Documents []*DocumentContext
	Summary   Summary
	StartTime time.Time

	// RenamesCompleted skips the rename step: the journal shows an earlier
	// run of this mapping finished it.
	RenamesCompleted bool

	// Done stops the pipeline after the current command without error.
	Done bool

	byOld map[string]*DocumentContext
	byNew map[string]*DocumentContext
}

// NewRunContext builds the run state for table over dir.
func NewRunContext(dir string, table *mapping.Table) *RunContext {
	entries := table.Entries()
	run := &RunContext{
		Dir:       dir,
		Table:     table,
		Documents: make([]*DocumentContext, 0, len(entries)),
		StartTime: time.Now(),
		byOld:     make(map[string]*DocumentContext, len(entries)),
		byNew:     make(map[string]*DocumentContext, len(entries)),
	}
	for _, e := range entries {
		dc := &DocumentContext{Entry: e}
		run.Documents = append(run.Documents, dc)
		run.byOld[e.Old] = dc
		run.byNew[e.New] = dc
	}
	return run
}

// ByOld returns the document mapped from old.
func (r *RunContext) ByOld(old string) (*DocumentContext, bool) {
	dc, ok := r.byOld[old]
	return dc, ok
}

// ByNew returns the document mapped to newName.
func (r *RunContext) ByNew(newName string) (*DocumentContext, bool) {
	dc, ok := r.byNew[newName]
	return dc, ok
}

// AddWarnings appends non-fatal errors to the summary.
func (r *RunContext) AddWarnings(errs *multierror.Error) {
	if errs == nil {
		return
	}
	r.Summary.Warnings = multierror.Append(r.Summary.Warnings, errs.Errors...)
}
