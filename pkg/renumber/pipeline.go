package renumber

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Pipeline executes a sequence of commands over one run.
type Pipeline struct {
	Name        string
	Description string
	Commands    []Command
	Logger      hclog.Logger
}

// Execute runs every command in order. The first failing command aborts
// the run; the directory is left as that command left it.
func (p *Pipeline) Execute(ctx context.Context, run *RunContext) error {
	logger := p.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	logger.Info("starting pipeline",
		"name", p.Name,
		"dir", run.Dir,
		"mappings", len(run.Documents),
		"dry_run", run.DryRun,
	)

	for _, cmd := range p.Commands {
		logger.Debug("executing command", "name", cmd.Name())

		if err := cmd.Execute(ctx, run); err != nil {
			logger.Error("command failed", "name", cmd.Name(), "error", err)
			return fmt.Errorf("command %s failed: %w", cmd.Name(), err)
		}

		if run.Done {
			logger.Info("pipeline stopped early", "after", cmd.Name())
			break
		}
	}

	logger.Info("pipeline completed",
		"name", p.Name,
		"renamed", len(run.Summary.Renamed),
		"skipped", len(run.Summary.Skipped),
		"headers_updated", len(run.Summary.Updated),
		"duration", time.Since(run.StartTime),
	)

	return nil
}
