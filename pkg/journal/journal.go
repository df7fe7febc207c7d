// Package journal records the last renumbering run in the documents
// directory so that an interrupted run can be recognized and a completed
// one is not applied twice.
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/sprintctl/pkg/filewriter"
)

// Filename is the journal file name inside the documents directory. It does
// not match any document naming convention.
const Filename = ".sprintctl-journal.yaml"

// State is the phase the last run reached.
type State string

const (
	// StateStaging means the run started moving documents and has not
	// confirmed completion.
	StateStaging State = "staging"

	// StateRenamed means every document has its new name; header resync
	// and verification have not confirmed completion.
	StateRenamed State = "renamed"

	// StateCommitted means every phase finished.
	StateCommitted State = "committed"
)

// Entry describes one run.
type Entry struct {
	RunID       uuid.UUID `yaml:"run_id"`
	Fingerprint string    `yaml:"fingerprint"`
	State       State     `yaml:"state"`
	StartedAt   time.Time `yaml:"started_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`
	Mappings    int       `yaml:"mappings"`
}

// Journal reads and writes the journal file of one directory.
type Journal struct {
	fs   afero.Fs
	path string
	now  func() time.Time
}

// New returns the journal for dir.
func New(fs afero.Fs, dir string) *Journal {
	return &Journal{
		fs:   fs,
		path: filepath.Join(dir, Filename),
		now:  time.Now,
	}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Load returns the recorded entry, or nil if no run was recorded.
func (j *Journal) Load() (*Entry, error) {
	data, err := afero.ReadFile(j.fs, j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading journal: %w", err)
	}

	var e Entry
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("error parsing journal %s: %w", j.path, err)
	}
	return &e, nil
}

// Begin records the start of a run for the mapping with fingerprint. An
// unfinished entry with the same fingerprint is reused so that a resumed
// run keeps its id and the phase it reached.
func (j *Journal) Begin(fingerprint string, mappings int) (*Entry, error) {
	prev, err := j.Load()
	if err != nil {
		return nil, err
	}

	now := j.now().UTC()
	e := &Entry{
		RunID:       uuid.New(),
		Fingerprint: fingerprint,
		State:       StateStaging,
		StartedAt:   now,
		UpdatedAt:   now,
		Mappings:    mappings,
	}
	if prev != nil && prev.State != StateCommitted && prev.Fingerprint == fingerprint {
		e.RunID = prev.RunID
		e.StartedAt = prev.StartedAt
		e.State = prev.State
	}

	return e, j.save(e)
}

// MarkRenamed records that every rename of e finished.
func (j *Journal) MarkRenamed(e *Entry) error {
	e.State = StateRenamed
	e.UpdatedAt = j.now().UTC()
	return j.save(e)
}

// Commit marks e as completed.
func (j *Journal) Commit(e *Entry) error {
	e.State = StateCommitted
	e.UpdatedAt = j.now().UTC()
	return j.save(e)
}

// Remove deletes the journal file, if any.
func (j *Journal) Remove() error {
	err := j.fs.Remove(j.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing journal: %w", err)
	}
	return nil
}

func (j *Journal) save(e *Entry) error {
	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("error encoding journal: %w", err)
	}
	if _, err := filewriter.Write(j.fs, j.path, data); err != nil {
		return fmt.Errorf("error writing journal: %w", err)
	}
	return nil
}
