// Package mapping holds the enumerated old-name to new-name pairs that
// describe a renumbering.
package mapping

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
)

// Entry maps one existing document name to its new name.
type Entry struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// IsIdentity reports whether the entry leaves the document where it is.
func (e Entry) IsIdentity() bool {
	return e.Old == e.New
}

func (e Entry) String() string {
	return e.Old + " -> " + e.New
}

// Table is a validated, immutable mapping. Both sides are injective.
type Table struct {
	entries []Entry
	byOld   map[string]int
	byNew   map[string]int
}

// New validates entries against the naming convention and builds a Table.
// All problems are reported together.
func New(conv docname.Convention, entries ...Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byOld:   make(map[string]int, len(entries)),
		byNew:   make(map[string]int, len(entries)),
	}

	var result *multierror.Error
	for i, e := range entries {
		if err := validateEntry(conv, e); err != nil {
			result = multierror.Append(result, fmt.Errorf("entry %d (%s): %w", i, e, err))
			continue
		}
		if j, ok := t.byOld[e.Old]; ok {
			result = multierror.Append(result,
				fmt.Errorf("entry %d (%s): old name already mapped by entry %d", i, e, j))
			continue
		}
		if j, ok := t.byNew[e.New]; ok {
			result = multierror.Append(result,
				fmt.Errorf("entry %d (%s): new name already targeted by entry %d", i, e, j))
			continue
		}

		t.byOld[e.Old] = len(t.entries)
		t.byNew[e.New] = len(t.entries)
		t.entries = append(t.entries, e)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("invalid mapping: %w", err)
	}
	return t, nil
}

func validateEntry(conv docname.Convention, e Entry) error {
	conforms := validation.By(func(value interface{}) error {
		name, _ := value.(string)
		_, err := conv.Parse(name)
		return err
	})
	return validation.ValidateStruct(&e,
		validation.Field(&e.Old, validation.Required, conforms),
		validation.Field(&e.New, validation.Required, conforms),
	)
}

// Lookup returns the new name for old.
func (t *Table) Lookup(old string) (string, bool) {
	i, ok := t.byOld[old]
	if !ok {
		return "", false
	}
	return t.entries[i].New, true
}

// Source returns the old name that maps onto newName.
func (t *Table) Source(newName string) (string, bool) {
	i, ok := t.byNew[newName]
	if !ok {
		return "", false
	}
	return t.entries[i].Old, true
}

// Entries returns a copy of the entries in definition order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Fingerprint identifies the mapping content. Two tables with the same
// entries in the same order have the same fingerprint.
func (t *Table) Fingerprint() string {
	h := sha256.New()
	for _, e := range t.entries {
		fmt.Fprintf(h, "%s\x00%s\n", e.Old, e.New)
	}
	return hex.EncodeToString(h.Sum(nil))
}
