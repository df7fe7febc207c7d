package renamer

import (
	"fmt"

	"github.com/hashicorp-forge/sprintctl/pkg/mapping"
)

// MissingSourceError reports an entry whose source (old or staging name)
// was absent. It is never fatal.
type MissingSourceError struct {
	Entry mapping.Entry
	Name  string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("skipping %s: %s does not exist", e.Entry, e.Name)
}

// CollisionError reports a rename target that is occupied by a file the
// operation does not own. It aborts the run before anything is overwritten.
type CollisionError struct {
	Entry  mapping.Entry
	Name   string
	Reason string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("collision for %s: %s %s", e.Entry, e.Name, e.Reason)
}

// IOError wraps any other filesystem failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
