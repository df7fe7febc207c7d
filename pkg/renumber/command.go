package renumber

import "context"

// Command is a single step of a renumbering pipeline. Commands run strictly
// one after another and share state through the RunContext.
type Command interface {
	// Execute performs the step. A returned error aborts the run.
	Execute(ctx context.Context, run *RunContext) error

	// Name returns the command name for logging and debugging.
	Name() string
}
