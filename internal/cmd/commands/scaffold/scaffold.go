package scaffold

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/sprintctl/internal/cmd/base"
	"github.com/hashicorp-forge/sprintctl/pkg/filewriter"
)

// Manifest lists the files to write.
type Manifest struct {
	Files []File `yaml:"files"`
}

// File is one manifest entry. Path is relative to the output root.
type File struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
}

type Command struct {
	*base.Command

	flagManifest string
	flagRoot     string
}

func (c *Command) Synopsis() string {
	return "Write boilerplate files listed in a manifest"
}

func (c *Command) Help() string {
	return `Usage: sprintctl scaffold -manifest <file> [options]

  Writes every file listed in a YAML manifest, creating parent directories
  and overwriting existing files:

      files:
        - path: docs/sprints/sprint-45-motion.md
          content: |
            # Sprint 45: Motion` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("scaffold", flag.ContinueOnError))

	f.StringVar(
		&c.flagManifest, "manifest", "",
		"(Required) Path to the YAML manifest.",
	)
	f.StringVar(
		&c.flagRoot, "root", ".",
		"Directory the manifest paths are relative to.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli.RunResultHelp
		}
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagManifest == "" {
		ui.Error("manifest flag is required")
		return 1
	}

	fs := afero.NewOsFs()
	m, err := readManifest(fs, c.flagManifest)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	for _, f := range m.Files {
		n, err := filewriter.WriteString(fs, filepath.Join(c.flagRoot, f.Path), f.Content)
		if err != nil {
			ui.Error(fmt.Sprintf("error writing %s: %v", f.Path, err))
			return 1
		}
		c.Log.Debug("wrote file", "path", f.Path, "bytes", n)
		ui.Output(fmt.Sprintf("Wrote %s (%d bytes)", f.Path, n))
	}

	return 0
}

func readManifest(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("error parsing manifest: %w", err)
	}
	if len(m.Files) == 0 {
		return nil, fmt.Errorf("manifest %s lists no files", path)
	}

	for i, f := range m.Files {
		clean := filepath.Clean(f.Path)
		if f.Path == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("manifest entry %d: path %q must be relative to the root", i, f.Path)
		}
	}

	return &m, nil
}
