package commands

import "github.com/hashicorp-forge/sprintctl/pkg/renumber"

// DefaultPipeline returns the full renumbering pipeline: journal check,
// checksums, two-phase rename, header resync, verification and journal
// commit.
func DefaultPipeline() *renumber.Pipeline {
	return &renumber.Pipeline{
		Name:        "renumber",
		Description: "Rename documents by mapping and resynchronize their headers",
		Commands: []renumber.Command{
			&CheckJournalCommand{},
			&ChecksumCommand{},
			&RenameCommand{},
			&ResyncCommand{},
			&VerifyCommand{},
			&CommitJournalCommand{},
		},
	}
}
