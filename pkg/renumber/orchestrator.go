package renumber

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
	"github.com/hashicorp-forge/sprintctl/pkg/journal"
	"github.com/hashicorp-forge/sprintctl/pkg/mapping"
)

// Orchestrator runs a renumbering pipeline against a directory.
type Orchestrator struct {
	fs         afero.Fs
	logger     hclog.Logger
	convention docname.Convention
	pipeline   *Pipeline
	dryRun     bool
	force      bool
	journal    bool
}

// Option is a functional option for creating an Orchestrator.
type Option func(*Orchestrator)

// WithFs sets the filesystem the documents live on.
func WithFs(fs afero.Fs) Option {
	return func(o *Orchestrator) {
		o.fs = fs
	}
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithConvention sets the document naming convention.
func WithConvention(conv docname.Convention) Option {
	return func(o *Orchestrator) {
		o.convention = conv
	}
}

// WithPipeline sets the pipeline to execute.
func WithPipeline(p *Pipeline) Option {
	return func(o *Orchestrator) {
		o.pipeline = p
	}
}

// WithDryRun enables or disables dry-run mode.
func WithDryRun(dryRun bool) Option {
	return func(o *Orchestrator) {
		o.dryRun = dryRun
	}
}

// WithForce makes the run ignore the journal's record of earlier runs.
func WithForce(force bool) Option {
	return func(o *Orchestrator) {
		o.force = force
	}
}

// WithJournal enables or disables the run journal. Enabled by default.
func WithJournal(enabled bool) Option {
	return func(o *Orchestrator) {
		o.journal = enabled
	}
}

// NewOrchestrator creates a new renumbering orchestrator.
func NewOrchestrator(opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		convention: docname.DefaultConvention(),
		journal:    true,
		logger: hclog.New(&hclog.LoggerOptions{
			Name: "renumber",
		}),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.fs == nil {
		return nil, fmt.Errorf("filesystem is required")
	}
	if o.pipeline == nil {
		return nil, fmt.Errorf("pipeline is required")
	}
	if err := o.convention.Validate(); err != nil {
		return nil, fmt.Errorf("invalid naming convention: %w", err)
	}
	if o.pipeline.Logger == nil {
		o.pipeline.Logger = o.logger.Named("pipeline").Named(o.pipeline.Name)
	}

	return o, nil
}

// Run applies table to the documents directly inside dir. The returned
// summary is populated even when err is non-nil, up to the failing step.
func (o *Orchestrator) Run(ctx context.Context, dir string, table *mapping.Table) (*Summary, error) {
	if dir == "" {
		return nil, fmt.Errorf("documents directory is required")
	}
	if table == nil {
		return nil, fmt.Errorf("mapping table is required")
	}

	isDir, err := afero.IsDir(o.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("error reading documents directory: %w", err)
	}
	if !isDir {
		return nil, fmt.Errorf("documents path %s is not a directory", dir)
	}

	run := NewRunContext(dir, table)
	run.Fs = o.fs
	run.Logger = o.logger
	run.Convention = o.convention
	run.DryRun = o.dryRun
	run.Force = o.force
	run.Summary.DryRun = o.dryRun
	if o.journal {
		run.Journal = journal.New(o.fs, dir)
	}

	err = o.pipeline.Execute(ctx, run)
	return &run.Summary, err
}
