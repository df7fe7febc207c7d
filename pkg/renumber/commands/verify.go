package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/sprintctl/pkg/renumber"
)

// VerifyCommand checks that every checksum taken before the rename is found
// again under the document's new name.
type VerifyCommand struct{}

// Name returns the command name.
func (c *VerifyCommand) Name() string {
	return "verify"
}

// Execute compares content hashes. Any mismatch means a document was lost
// or overwritten and is fatal.
func (c *VerifyCommand) Execute(ctx context.Context, run *renumber.RunContext) error {
	if run.DryRun {
		return nil
	}
	logger := run.Logger.Named(c.Name())
	label := run.Convention.HeaderLabel()

	var result *multierror.Error
	verified := 0
	for _, doc := range run.Documents {
		if doc.ContentHash == "" || doc.State < renumber.StateRenamed {
			continue
		}

		hash, err := contentHash(run.Fs, filepath.Join(run.Dir, doc.Entry.New), label)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if hash != doc.ContentHash {
			result = multierror.Append(result, fmt.Errorf(
				"content of %s did not arrive at %s (checksum %s, found %s)",
				doc.Entry.Old, doc.Entry.New, doc.ContentHash, hash))
			continue
		}
		verified++
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	logger.Debug("verified document contents", "documents", verified)
	return nil
}
