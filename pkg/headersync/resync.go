// Package headersync rewrites the id in each document's header line so that
// it agrees with the id carried by the document's filename.
package headersync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
	"github.com/hashicorp-forge/sprintctl/pkg/filewriter"
)

// PatternMismatchError reports a document without a usable header line.
// The document is left untouched; the error is never fatal.
type PatternMismatchError struct {
	File  string
	Label string
}

func (e *PatternMismatchError) Error() string {
	return fmt.Sprintf("%s: no %q header line found", e.File, "# "+e.Label+" <id>:")
}

// Resynchronizer rewrites header ids of every conforming document in a
// directory.
type Resynchronizer struct {
	Fs         afero.Fs
	Logger     hclog.Logger
	Convention docname.Convention

	// DryRun reports what would change without writing.
	DryRun bool
}

// New creates a Resynchronizer.
func New(fs afero.Fs, conv docname.Convention, logger hclog.Logger) *Resynchronizer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Resynchronizer{
		Fs:         fs,
		Logger:     logger.Named("headersync"),
		Convention: conv,
	}
}

// Result lists documents by filename.
type Result struct {
	Updated   []string
	Unchanged []string

	// Warnings holds a PatternMismatchError for each document without a
	// header line.
	Warnings *multierror.Error
}

// Resync processes the conforming documents directly inside dir in name
// order. Staging files and names outside the convention are ignored.
func (r *Resynchronizer) Resync(ctx context.Context, dir string) (*Result, error) {
	if r.Logger == nil {
		r.Logger = hclog.NewNullLogger()
	}

	infos, err := afero.ReadDir(r.Fs, dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	result := &Result{}
	for _, info := range infos {
		if info.IsDir() || docname.IsStaging(info.Name()) {
			continue
		}
		name, err := r.Convention.Parse(info.Name())
		if err != nil {
			r.Logger.Trace("ignoring file", "file", info.Name())
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		changed, err := r.SyncFile(filepath.Join(dir, info.Name()), name.ID)
		if err != nil {
			var mismatch *PatternMismatchError
			if errors.As(err, &mismatch) {
				r.Logger.Warn("document has no header line", "file", info.Name())
				result.Unchanged = append(result.Unchanged, info.Name())
				result.Warnings = multierror.Append(result.Warnings, mismatch)
				continue
			}
			return result, err
		}

		if changed {
			result.Updated = append(result.Updated, info.Name())
		} else {
			result.Unchanged = append(result.Unchanged, info.Name())
		}
	}

	r.Logger.Info("header resync complete",
		"updated", len(result.Updated),
		"unchanged", len(result.Unchanged),
	)

	return result, nil
}

// SyncFile rewrites the header id of a single document to id and reports
// whether the file changed.
func (r *Resynchronizer) SyncFile(path string, id int) (bool, error) {
	content, err := afero.ReadFile(r.Fs, path)
	if err != nil {
		return false, fmt.Errorf("error reading %s: %w", path, err)
	}

	label := r.Convention.HeaderLabel()
	header, ok := FindHeader(content, label)
	if !ok {
		return false, &PatternMismatchError{File: filepath.Base(path), Label: label}
	}
	if header.Token == header.FormatID(id) {
		return false, nil
	}

	r.Logger.Info("updating header",
		"file", filepath.Base(path),
		"line", header.Line,
		"from", header.ID,
		"to", id,
	)
	if r.DryRun {
		return true, nil
	}

	if _, err := filewriter.Write(r.Fs, path, header.Replace(content, id)); err != nil {
		return false, err
	}
	return true, nil
}
