package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
	"github.com/hashicorp-forge/sprintctl/pkg/headersync"
	"github.com/hashicorp-forge/sprintctl/pkg/renumber"
)

// ChecksumCommand records a SHA-256 of every mapped document before it is
// moved. The header id is masked so the checksum survives the header
// rewrite; every other byte counts.
type ChecksumCommand struct{}

// Name returns the command name.
func (c *ChecksumCommand) Name() string {
	return "checksum"
}

// Execute hashes each document where it currently is: under its staging
// name when resuming an interrupted run, under its new name when an
// interrupted run already finished renaming, otherwise under its old name.
func (c *ChecksumCommand) Execute(ctx context.Context, run *renumber.RunContext) error {
	logger := run.Logger.Named(c.Name())
	label := run.Convention.HeaderLabel()

	for _, doc := range run.Documents {
		path, state, found, err := locate(run, doc)
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		doc.Advance(state)

		hash, err := contentHash(run.Fs, path, label)
		if err != nil {
			return err
		}
		doc.ContentHash = hash

		logger.Trace("calculated content hash", "file", filepath.Base(path), "hash", hash)
	}

	return nil
}

func contentHash(fs afero.Fs, path, label string) (string, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}
	sum := sha256.Sum256(headersync.Mask(content, label))
	return hex.EncodeToString(sum[:]), nil
}

type location struct {
	name  string
	state renumber.DocumentState
}

// locate finds the current file of doc. A staging file wins over the old
// name, which may already hold another entry's committed document.
func locate(run *renumber.RunContext, doc *renumber.DocumentContext) (string, renumber.DocumentState, bool, error) {
	candidates := []location{
		{docname.StagingName(doc.Entry.New), renumber.StateStaged},
		{doc.Entry.Old, renumber.StateOriginal},
	}
	if run.RenamesCompleted {
		candidates = []location{{doc.Entry.New, renumber.StateRenamed}}
	}

	for _, c := range candidates {
		path := filepath.Join(run.Dir, c.name)
		found, err := afero.Exists(run.Fs, path)
		if err != nil {
			return "", 0, false, fmt.Errorf("error checking %s: %w", path, err)
		}
		if found {
			return path, c.state, true, nil
		}
	}
	return "", 0, false, nil
}
