package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
)

// Block is the HCL form of an entry:
//
//	mapping "sprint-03-dashboard-data.md" {
//	  to = "sprint-07-dashboard-data.md"
//	}
type Block struct {
	Old string `hcl:"old,label"`
	To  string `hcl:"to"`
}

// FromBlocks converts decoded HCL blocks to entries.
func FromBlocks(blocks []Block) []Entry {
	entries := make([]Entry, len(blocks))
	for i, b := range blocks {
		entries[i] = Entry{Old: b.Old, New: b.To}
	}
	return entries
}

type hclFile struct {
	Mappings []Block `hcl:"mapping,block"`
}

type yamlFile struct {
	Mappings []Entry `yaml:"mappings"`
}

// LoadFile reads a mapping from an HCL (.hcl) or YAML (.yaml, .yml) file
// and validates it against conv.
func LoadFile(filename string, conv docname.Convention) (*Table, error) {
	if filename == "" {
		return nil, fmt.Errorf("mapping file path is required")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("mapping file not found: %s", filename)
	}

	var entries []Entry
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".hcl":
		var f hclFile
		if err := hclsimple.DecodeFile(filename, nil, &f); err != nil {
			return nil, fmt.Errorf("failed to parse mapping file: %w", err)
		}
		entries = FromBlocks(f.Mappings)

	case ".yaml", ".yml":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read mapping file: %w", err)
		}
		var f yamlFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse mapping file: %w", err)
		}
		entries = f.Mappings

	default:
		return nil, fmt.Errorf("unsupported mapping file extension %q (valid: .hcl, .yaml, .yml)", ext)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("mapping file %s defines no mappings", filename)
	}

	return New(conv, entries...)
}
